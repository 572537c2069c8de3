package main

import (
	"errors"
	"os"

	"github.com/couchcryptid/thermal-comfort-service/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("form needs an interactive terminal; use assess instead")

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive comfort form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}

			s, err := a.buildStack(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close(a)

			return tui.Run(cmd.Context(), s.service, os.Stdin, os.Stdout)
		},
	}
}
