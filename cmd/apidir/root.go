package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"apidir/internal/app"
	"apidir/internal/domain"
	"apidir/internal/infra/browser"
	"apidir/internal/infra/config"
	"apidir/internal/infra/render"
)

type cliOptions struct {
	configPath    string
	baseURL       string
	output        string
	logLevel      string
	metricsListen string
	metricsDump   bool
	overrides     config.Overrides
	format        render.Format
	logger        *zap.Logger
	app           *app.Application

	// opener replaces the application's link opener when set.
	opener browser.Opener
}

func newRootCommand() *cobra.Command {
	return buildRootCommand(&cliOptions{})
}

func buildRootCommand(opts *cliOptions) *cobra.Command {
	if opts.output == "" {
		opts.output = domain.DefaultOutputFormat
	}
	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}

	root := &cobra.Command{
		Use:           "apidir",
		Short:         "Browse the providers of a public web API directory",
		Version:       app.Version + " (" + app.Build + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyRootFlagBindings(cmd, opts)
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.metricsDump && opts.app != nil {
				_ = opts.app.DumpMetrics(cmd.ErrOrStderr())
			}
			_ = opts.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (optional)")
	flags.StringVar(&opts.baseURL, "base-url", domain.DefaultBaseURL, "directory base URL")
	flags.StringVarP(&opts.output, "output", "o", opts.output, "output format: text, json, yaml or toml")
	flags.StringVar(&opts.logLevel, "log-level", domain.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&opts.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address")
	flags.Lookup("metrics-listen").NoOptDefVal = domain.DefaultMetricsListenAddress
	flags.BoolVar(&opts.metricsDump, "metrics-dump", false, "write collected metrics to stderr on exit")

	root.AddCommand(
		newProvidersCmd(opts),
		newShowCmd(opts),
		newRouteCmd(opts),
		newBrowseCmd(opts),
		newMCPCmd(opts),
		newConfigCmd(opts),
	)

	return root
}

// applyRootFlagBindings turns the flags the user actually set into config
// overrides, leaving the rest to the environment and the config file.
func applyRootFlagBindings(cmd *cobra.Command, opts *cliOptions) {
	flags := cmd.Flags()
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			opts.configPath, _ = flags.GetString("config")
		case "base-url":
			value, _ := flags.GetString("base-url")
			opts.overrides.BaseURL = &value
		case "output":
			opts.output, _ = flags.GetString("output")
		case "log-level":
			value, _ := flags.GetString("log-level")
			opts.overrides.LogLevel = &value
		case "metrics-listen":
			value, _ := flags.GetString("metrics-listen")
			opts.overrides.MetricsListenAddress = &value
		case "metrics-dump":
			opts.metricsDump, _ = flags.GetBool("metrics-dump")
		}
	})
}

func (o *cliOptions) setup(cmd *cobra.Command) error {
	format, err := render.ParseFormat(o.output)
	if err != nil {
		return asExitError(err)
	}
	o.format = format

	cfg, err := config.NewLoader(nil).Load(cmd.Context(), strings.TrimSpace(o.configPath), o.overrides)
	if err != nil {
		return asExitError(err)
	}

	application, err := app.InitializeApplication(cmd.Context(), app.Settings{
		Config:     cfg,
		ConfigPath: strings.TrimSpace(o.configPath),
		Overrides:  o.overrides,
	}, app.LoggingConfig{Output: os.Stderr})
	if err != nil {
		return asExitError(err)
	}
	o.app = application
	o.logger = application.Logger()
	application.StartMetrics(cmd.Context())
	return nil
}

func (o *cliOptions) linkOpener() browser.Opener {
	if o.opener != nil {
		return o.opener
	}
	return o.app.Opener()
}
