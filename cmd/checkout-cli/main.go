package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	checkout "github.com/goliatone/go-checkout"
	"github.com/goliatone/go-checkout/internal/config"
	"github.com/goliatone/go-checkout/internal/logging"
	"github.com/goliatone/go-checkout/pkg/render"
	"github.com/goliatone/go-checkout/pkg/session"
	"github.com/goliatone/go-checkout/pkg/transport"
)

var Version = "dev"

// errAlerted marks failures whose alert was already printed.
var errAlerted = errors.New("checkout: session failed")

type app struct {
	configPath string
	logLevel   string

	cfg      *config.Config
	logger   *slog.Logger
	prompter prompter
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{prompter: surveyPrompter{}}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errAlerted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "checkout",
		Short:         "Load and inspect payment sessions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./checkout.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(loadCmd(a))
	root.AddCommand(detectCmd(a))
	root.AddCommand(serveCmd(a))
	return root
}

func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(logOut, logging.LevelFromString(cfg.Logging.Level), logging.ParseFormat(cfg.Logging.Format))
	return nil
}

func (a *app) loader() *session.Loader {
	opts := []transport.Option{
		transport.WithTimeout(a.cfg.Transport.Timeout),
		transport.WithUserAgent(a.cfg.Transport.UserAgent),
		transport.WithLogger(a.logger),
	}
	for key, value := range a.cfg.Transport.Headers {
		opts = append(opts, transport.WithHeader(key, value))
	}

	return checkout.NewLoader(
		session.WithTransport(checkout.NewTransport(opts...)),
		session.WithLogger(a.logger),
		session.WithSupportedNetworks(a.cfg.Session.SupportedNetworks...),
		session.WithSharedLocalizationFile(a.cfg.Session.SharedLocalizationFile),
	)
}

// loadSession resolves the session URL from args or the config and loads it.
// Failures are printed as an alert and reported as errAlerted.
func (a *app) loadSession(ctx context.Context, out io.Writer, engine *render.Engine, args []string) (*checkout.Session, error) {
	sessionURL := a.cfg.Session.URL
	if len(args) > 0 {
		sessionURL = args[0]
	}
	if sessionURL == "" {
		return nil, errors.New("a session URL is required, pass it as an argument or set session.url")
	}

	s, err := a.loader().Load(ctx, sessionURL)
	if err != nil {
		a.logger.Error("load session", "url", sessionURL, "error", err)
		if _, rerr := engine.Alert(checkout.Present(err, nil), out); rerr != nil {
			return nil, rerr
		}
		return nil, errAlerted
	}
	return s, nil
}
