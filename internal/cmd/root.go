// Package cmd provides the openimis-config command.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openimis/fe-config/internal/config"
	"github.com/openimis/fe-config/internal/output"
	"github.com/openimis/fe-config/internal/pipeline"
)

// rootOptions holds the flags of one command instance.
type rootOptions struct {
	verbose    bool
	timestamps bool
	dryRun     bool
	format     string

	loader *config.Loader
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{loader: config.NewLoader()}
	defaults := config.DefaultSettings()

	rootCmd := &cobra.Command{
		Use:   "openimis-config [config-file]",
		Short: "Generate the openIMIS front-end module and locale registry",
		Long: `openimis-config reads the openIMIS front-end configuration and generates
src/locales.js and src/modules.js, then rewrites the @openimis/ dependencies
of package.json to match the configured modules.

The configuration is taken from the first available source:
  1. the config-file argument
  2. the ` + config.EnvConfJSON + ` environment variable
  3. ./` + config.DefaultConfigFile,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&opts.timestamps, "timestamps", true, "Show timestamps in log output")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the plan and the package.json diff without writing files")
	flags.StringVarP(&opts.format, "output", "o", "yaml", "Dry-run plan format: "+strings.Join(output.ValidFormats(), ", "))

	flags.String(config.KeyDir, defaults.Dir, "Project directory (env: OPENIMIS_DIR)")
	flags.String(config.KeyManifest, defaults.Manifest, "Dependency manifest (env: OPENIMIS_MANIFEST)")
	flags.String(config.KeyLocalesOut, defaults.LocalesOut, "Generated locale registry (env: OPENIMIS_LOCALES_OUT)")
	flags.String(config.KeyModulesOut, defaults.ModulesOut, "Generated module loader (env: OPENIMIS_MODULES_OUT)")
	flags.String(config.KeyOrgPrefix, defaults.OrgPrefix, "Prefix of generator-owned dependencies (env: OPENIMIS_ORG_PREFIX)")
	flags.String(config.KeyEnvFile, defaults.EnvFile, "Dotenv file loaded before resolving the configuration, empty to disable (env: OPENIMIS_ENV_FILE)")

	return rootCmd
}

// initialize sets up logging and binds the settings flags.
func (o *rootOptions) initialize(cmd *cobra.Command) error {
	logCfg := output.LogConfig{
		Verbose: o.verbose,
		Writer:  cmd.OutOrStdout(),
	}
	// stdout carries the plan on a dry run
	if o.dryRun {
		logCfg.Writer = cmd.ErrOrStderr()
	}
	// nil leaves SetupLogging's default (on)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(o.timestamps)
	}
	output.SetupLogging(logCfg)

	if !output.OutputFormat(strings.ToLower(o.format)).IsValid() {
		return NewExitError(
			fmt.Errorf("invalid output format %q (valid: %s)", o.format, strings.Join(output.ValidFormats(), ", ")),
			ExitValidationError,
		)
	}

	if err := o.loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := o.loader.LoadDotenv(); err != nil {
		return err
	}

	if o.verbose {
		s := o.loader.Settings()
		output.Debug("initializing",
			"dir", s.Dir,
			"manifest", s.Manifest,
			"locales-out", s.LocalesOut,
			"modules-out", s.ModulesOut,
			"org-prefix", s.OrgPrefix,
			"env-file", s.EnvFile,
		)
	}
	return nil
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Loader: o.loader,
		Arg:    arg,
		DryRun: o.dryRun,
	})
	if err != nil {
		return err
	}

	if o.dryRun {
		return writeDryRun(cmd.OutOrStdout(), res, output.ParseOutputFormat(o.format))
	}

	output.Info(output.FormatCheckmark(output.StyleSummary.Render(fmt.Sprintf("%d modules configured", len(res.Modules)))))
	return nil
}
