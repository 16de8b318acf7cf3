package cmd

import (
	"github.com/elewis787/boa"
	"github.com/spf13/cobra"

	"github.com/cloudposse/tswig/pkg/config"
	"github.com/cloudposse/tswig/pkg/logger"
)

var (
	// settings are loaded before any subcommand runs.
	settings *config.Settings
	// cmdLogger is the logger built from settings; Cleanup closes it.
	cmdLogger = logger.Discard()
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tswig",
		Short: "Convert a TypeScript configuration into an SWC configuration",
		Long: `tswig reads a project's tsconfig.json, follows its 'extends' chain and translates the
compiler options into an equivalent .swcrc for the SWC compiler. Overrides from a file
or the command line are merged on top of the generated configuration.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Log what tswig does (env TSWIG_VERBOSE)")
	flags.String("logs-level", "", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Error, Off. Overrides --verbose")
	flags.String("logs-file", "/dev/stderr", "The file to write logs to, including '/dev/stdout' and '/dev/stderr'")
	flags.String("config", "", "Path to a tswig.yaml settings file")

	root.AddCommand(newConvertCmd(), newFilesCmd(), newVersionCmd())

	b := boa.New(boa.WithStyles(boa.DefaultStyles()))
	root.SetUsageFunc(b.UsageFunc)
	root.SetHelpFunc(b.HelpFunc)

	return root
}

// setup loads settings and installs the logger they describe.
func setup(cmd *cobra.Command, _ []string) error {
	settingsFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	s, err := config.Load(config.LoadOptions{SettingsFile: settingsFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	l, err := logger.New(s.LoggerConfig())
	if err != nil {
		return err
	}

	Cleanup()
	settings = s
	cmdLogger = l
	logger.SetDefault(l)

	if s.SettingsFile != "" {
		l.Debug("Loaded settings", "file", s.SettingsFile)
	}
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

// Cleanup releases resources held by the last command run, such as the log file.
func Cleanup() {
	if cmdLogger != nil {
		_ = cmdLogger.Close()
	}
	cmdLogger = logger.Discard()
	logger.SetDefault(cmdLogger)
}
