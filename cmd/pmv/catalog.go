package main

import (
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/render"
	"github.com/spf13/cobra"
)

func newCatalogCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the clothing items and activities with their CLO and MET values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render.WriteCatalog(cmd.OutOrStdout(), domain.DefaultCatalog())
		},
	}
}
