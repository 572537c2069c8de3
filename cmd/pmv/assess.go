package main

import (
	"fmt"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/render"
	"github.com/spf13/cobra"
)

type assessOptions struct {
	temperature float64
	humidity    float64
	clothing    []string
	activity    string
	output      string
}

func newAssessCmd(a *app) *cobra.Command {
	opts := assessOptions{}
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Predict the comfort level for one set of conditions",
		Example: `  pmv assess --temperature 28 --humidity 60 --clothing Shirt --clothing "Full Cotton Pant" --activity "Seated, quiet"
  pmv assess -t 18 -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !render.ValidOutput(opts.output) {
				return fmt.Errorf("unknown output %q (want %s or %s)", opts.output, render.TextOut, render.JSONOut)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.buildStack(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close(a)

			assessment, err := s.service.Assess(cmd.Context(), domain.Selection{
				Temperature: opts.temperature,
				Humidity:    opts.humidity,
				Clothing:    opts.clothing,
				Activity:    opts.activity,
			})
			if err != nil {
				return err
			}
			return render.WriteAssessment(cmd.OutOrStdout(), assessment, opts.output)
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&opts.temperature, "temperature", "t", domain.DefaultTemperature, "air temperature in °C")
	flags.Float64VarP(&opts.humidity, "humidity", "H", domain.DefaultHumidity, "relative humidity in %")
	flags.StringArrayVarP(&opts.clothing, "clothing", "c", nil, "garment worn; repeat for each item")
	flags.StringVarP(&opts.activity, "activity", "a", domain.DefaultCatalog().DefaultActivity().Name(), "activity name")
	flags.StringVarP(&opts.output, "output", "o", render.TextOut, "output format: text or json")
	return cmd
}
