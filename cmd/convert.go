package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/merge"
	"github.com/cloudposse/tswig/pkg/tswig"
)

func newConvertCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "convert [tsconfig]",
		Short: "Print the SWC configuration for a TypeScript project",
		Long: `This command converts a tsconfig.json (or the tsconfig.json of a project directory)
into an .swcrc. Without a path it converts the tsconfig configured in tswig.yaml,
'tsconfig.json' by default.`,
		Example: `tswig convert
tswig convert packages/api --output packages/api/.swcrc
tswig convert --overrides swc.overrides.yaml --set jsc.minify.compress=true`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConvert,
	}

	c.Flags().String("overrides", "", "YAML or JSON file merged into the generated configuration")
	c.Flags().StringP("output", "o", "", "Write the configuration to this file instead of stdout")
	c.Flags().StringArray("set", nil, "Override one value by path, e.g. --set jsc.target=es2022 (repeatable)")
	c.Flags().Bool("validate", false, "Check the result against the .swcrc schema before printing it")

	return c
}

func runConvert(cmd *cobra.Command, args []string) error {
	tsconfigPath := settings.Convert.Tsconfig
	if len(args) == 1 {
		tsconfigPath = args[0]
	}

	overrides := map[string]any{}
	if settings.Convert.Overrides != "" {
		loaded, err := tswig.LoadOverrides(settings.Convert.Overrides)
		if err != nil {
			return err
		}
		overrides = loaded
	}

	sets, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return err
	}
	for _, s := range sets {
		override, err := parseSet(s)
		if err != nil {
			return err
		}
		overrides = merge.MergeMaps(overrides, override)
	}

	cmdLogger.Debug("Converting TypeScript configuration", "tsconfig", tsconfigPath, "overrides", len(overrides))
	b, err := tswig.Convert(tsconfigPath, overrides, tswig.WithLogger(cmdLogger))
	if err != nil {
		return err
	}

	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return err
	}
	if validate {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	if output := settings.Convert.Output; output != "" {
		if err := b.WriteFile(output); err != nil {
			return err
		}
		cmdLogger.Info("Wrote SWC configuration", "path", output)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), b.String())
	return err
}

// parseSet turns "a.b.c=value" into {"a": {"b": {"c": value}}}. The value is
// read as a YAML scalar, so "true" and "3" become a bool and a number.
func parseSet(s string) (map[string]any, error) {
	path, raw, found := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !found || path == "" || strings.Contains(path, "..") || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return nil, errUtils.Build(errUtils.ErrInvalidSetFlag).
			WithContext("value", s).
			WithHint("Use --set path.to.key=value, for example --set jsc.target=es2022").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	var value any = raw
	var parsed any
	if err := yaml.Unmarshal([]byte(raw), &parsed); err == nil && parsed != nil {
		value = parsed
	}
	return merge.FromPath(path, value), nil
}
