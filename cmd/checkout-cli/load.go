package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	checkout "github.com/goliatone/go-checkout"
	"github.com/goliatone/go-checkout/pkg/input"
	"github.com/goliatone/go-checkout/pkg/render"
	"github.com/goliatone/go-checkout/pkg/rules"
)

func loadCmd(a *app) *cobra.Command {
	var (
		network string
		logos   bool
	)
	cmd := &cobra.Command{
		Use:   "load [session-url]",
		Short: "Load a session and print its payment methods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			engine, err := render.New()
			if err != nil {
				return err
			}

			s, err := a.loadSession(cmd.Context(), out, engine, args)
			if err != nil {
				return err
			}
			if logos || a.cfg.Session.LoadLogos {
				a.loader().LoadLogos(cmd.Context(), s)
				defer printLogos(out, s)
			}

			repo, err := rules.Default()
			if err != nil {
				a.logger.Warn("grouping rules unavailable", "error", err)
			}
			if _, err := engine.Session(s, repo, out); err != nil {
				return err
			}

			if network == "" {
				return nil
			}
			for _, form := range checkout.Forms(s, input.WithRules(repo), input.WithLogger(a.logger)) {
				if form.Code == network {
					_, err := engine.Network(form, out)
					return err
				}
			}
			return fmt.Errorf("network %s is not part of the session", network)
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", "", "also print the form of this network code")
	cmd.Flags().BoolVar(&logos, "logos", false, "download network and account logos")
	return cmd
}

func printLogos(out io.Writer, s *checkout.Session) {
	loaded := 0
	for _, n := range s.Networks {
		if len(n.Logo()) > 0 {
			loaded++
		}
	}
	for _, acc := range s.Accounts {
		if len(acc.Logo()) > 0 {
			loaded++
		}
	}
	fmt.Fprintf(out, "logos: %d/%d\n", loaded, len(s.Networks)+len(s.Accounts))
}
