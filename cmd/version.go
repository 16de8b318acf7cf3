package cmd

import (
	"fmt"

	goyaml "github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/version"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "version",
		Short:   "Print the tswig version",
		Long:    `This command prints the version of tswig and the platform it was built for.`,
		Example: "tswig version\ntswig version --format json",
		Args:    cobra.NoArgs,
		RunE:    runVersion,
	}

	c.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")

	return c
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	info := version.Get()
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		_, err = fmt.Fprintf(out, "tswig %s on %s/%s\n", info.Version, info.OS, info.Arch)
	case "json":
		var data []byte
		data, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(info, "", "  ")
		if err == nil {
			_, err = fmt.Fprintln(out, string(data))
		}
	case "yaml":
		var data []byte
		data, err = goyaml.Marshal(info)
		if err == nil {
			_, err = out.Write(data)
		}
	default:
		return errUtils.Build(errUtils.ErrInvalidFormat).
			WithContext("format", format).
			WithHint("Supported formats are text, json and yaml").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	return err
}
