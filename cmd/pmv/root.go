package main

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries state shared by every subcommand once the root has resolved
// configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger

	newMetrics func() *observability.Metrics
}

func newApp() *app {
	return &app{v: viper.New(), newMetrics: observability.NewMetrics}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "pmv",
		Short:             "Predict thermal comfort (PMV) from room conditions, clothing and activity",
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json or text")
	flags.String("model", "", "path to the model artifact (default "+config.DefaultModelPath+")")
	flags.String("model-url", "", "base URL of a remote model server; overrides --model")
	flags.String("model-timeout", "", "remote model request timeout")
	flags.Int("cache-size", 0, "prediction cache entries (0 disables)")

	a.bind(flags, map[string]string{
		"log-level":     config.KeyLogLevel,
		"log-format":    config.KeyLogFormat,
		"model":         config.KeyModelPath,
		"model-url":     config.KeyModelURL,
		"model-timeout": config.KeyModelTimeout,
		"cache-size":    config.KeyPredictionCacheSize,
	})

	root.AddCommand(
		newServeCmd(a),
		newAssessCmd(a),
		newCatalogCmd(a),
		newFormCmd(a),
		newVersionCmd(),
	)
	return root
}

// bind maps flag names to config keys on the app's viper instance. A flag
// only overrides the environment when it is set explicitly.
func (a *app) bind(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func (a *app) loadConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	cfg, err := config.LoadWith(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg)
	return nil
}
