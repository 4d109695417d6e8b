package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benbjohnson/cssselect/internal/config"
	"github.com/benbjohnson/cssselect/internal/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:          "cssselect [flags] [selector ...]",
		Short:        "Parse CSS3 selectors groups and print their syntax tree",
		Long:         "Parse each argument, or each non-blank line of stdin when no arguments are given, as a CSS3 selectors group.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			defer func() { _ = logger.Sync() }()

			inputs := args
			if len(inputs) == 0 {
				if inputs, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return run(cfg, inputs, cmd.OutOrStdout(), logger)
		},
	}

	configPath string
	flags      = config.Default()
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "output format: text, tree, json or yaml")
	rootCmd.Flags().IntVar(&flags.MaxDepth, "max-depth", flags.MaxDepth, "maximum :not() nesting depth")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn or error")
}

// loadConfig reads the config file, if any, and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := flags
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = flags.Format
		}
		if cmd.Flags().Changed("max-depth") {
			cfg.MaxDepth = flags.MaxDepth
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flags.LogLevel
		}
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
