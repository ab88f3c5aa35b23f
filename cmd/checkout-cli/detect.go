package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	checkout "github.com/goliatone/go-checkout"
	"github.com/goliatone/go-checkout/pkg/input"
	"github.com/goliatone/go-checkout/pkg/render"
	"github.com/goliatone/go-checkout/pkg/smartswitch"
	"github.com/goliatone/go-checkout/pkg/validation"
)

func detectCmd(a *app) *cobra.Command {
	var fill bool
	cmd := &cobra.Command{
		Use:   "detect [session-url]",
		Short: "Detect the card network of an account number",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			engine, err := render.New()
			if err != nil {
				return err
			}

			s, err := a.loadSession(ctx, out, engine, args)
			if err != nil {
				return err
			}
			forms := checkout.Forms(s, input.WithLogger(a.logger))
			selector, detach, err := checkout.NewSelector(forms)
			if err != nil {
				return err
			}
			defer detach()

			number, err := a.prompter.Input(ctx, "Account number", "", nil)
			if err != nil {
				return err
			}
			detected, err := replay(selector, number, func(d smartswitch.Detected) error {
				_, err := engine.Detected(d, out)
				return err
			})
			if err != nil {
				return err
			}
			if !fill {
				return nil
			}

			form := detected.Network()
			if detected.Generic() {
				candidates := detected.Networks()
				labels := make([]string, 0, len(candidates))
				for _, n := range candidates {
					labels = append(labels, n.Label)
				}
				idx, err := a.prompter.Select(ctx, "Payment method", labels)
				if err != nil {
					return err
				}
				form = candidates[idx]
			}
			if f, ok := form.Field(input.ElementNumber); ok {
				f.SetValue(f.Filter(number))
			}
			return a.fill(ctx, out, engine, form)
		},
	}
	cmd.Flags().BoolVar(&fill, "fill", false, "prompt for the remaining fields and validate them")
	return cmd
}

// replay feeds number to the selector one character at a time, the way it
// arrives while typing, and reports a selection only when it differs from
// the previous one. The final selection is always reported once.
func replay(selector *smartswitch.Selector, number string, changed func(smartswitch.Detected) error) (smartswitch.Detected, error) {
	prev := selector.Selected()
	reported := false
	runes := []rune(number)
	for i := range runes {
		next := selector.Select(string(runes[:i+1]))
		if !prev.Equal(next) {
			if err := changed(next); err != nil {
				return next, err
			}
			reported = true
		}
		prev = next
	}
	if !reported {
		return prev, changed(prev)
	}
	return prev, nil
}

// fill prompts for every visible field of form, validates the result and
// prints the form.
func (a *app) fill(ctx context.Context, out io.Writer, engine *render.Engine, form *checkout.Form) error {
	for _, f := range form.Fields {
		if f.IsHidden() || f.Value() != "" {
			continue
		}
		value, err := a.ask(ctx, f)
		if err != nil {
			return err
		}
		f.SetValue(f.Filter(value))
	}
	for _, box := range form.Checkboxes {
		if box.IsHidden() || !box.IsEnabled() {
			continue
		}
		on, err := a.prompter.Confirm(ctx, box.Label(), box.IsOn())
		if err != nil {
			return err
		}
		box.SetOn(on)
	}

	verr := form.Validate(validation.FullCheck)
	if _, err := engine.Network(form, out); err != nil {
		return err
	}
	if verr != nil {
		return errors.Join(errAlerted, verr)
	}
	values, err := form.Values()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ready: %d values for %s\n", len(values), form.OperationURL)
	return nil
}

func (a *app) ask(ctx context.Context, f *input.Field) (string, error) {
	if opts := f.Options(); len(opts) > 0 {
		labels := make([]string, 0, len(opts))
		for _, o := range opts {
			label := o.Label
			if label == "" {
				label = o.Value
			}
			labels = append(labels, label)
		}
		idx, err := a.prompter.Select(ctx, f.Label(), labels)
		if err != nil {
			return "", err
		}
		return opts[idx].Value, nil
	}
	if f.Kind() == input.KindVerificationCode {
		return a.prompter.Password(ctx, f.Label())
	}
	return a.prompter.Input(ctx, f.Label(), "", nil)
}
