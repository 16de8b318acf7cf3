package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudposse/tswig/pkg/tsconfig"
)

func newFilesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "files [tsconfig]",
		Short: "List the source files of a TypeScript project",
		Long: `This command prints the files a TypeScript project compiles, one per line: the 'files'
entries plus everything matched by 'include' and not by 'exclude'.`,
		Example: `tswig files
tswig files packages/api --relative`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFiles,
	}

	c.Flags().Bool("relative", false, "Print paths relative to the project directory")

	return c
}

func runFiles(cmd *cobra.Command, args []string) error {
	tsconfigPath := settings.Convert.Tsconfig
	if len(args) == 1 {
		tsconfigPath = args[0]
	}

	relative, err := cmd.Flags().GetBool("relative")
	if err != nil {
		return err
	}

	cfg, err := tsconfig.Load(tsconfigPath, tsconfig.WithLogger(cmdLogger))
	if err != nil {
		return err
	}

	files, err := cfg.ResolveFiles(cmd.Context())
	if err != nil {
		return err
	}
	cmdLogger.Debug("Resolved project files", "tsconfig", cfg.Path, "count", len(files))

	out := cmd.OutOrStdout()
	for _, f := range files {
		if relative {
			if rel, err := filepath.Rel(cfg.Dir, filepath.FromSlash(f)); err == nil {
				f = filepath.ToSlash(rel)
			}
		}
		if _, err := fmt.Fprintln(out, f); err != nil {
			return err
		}
	}
	return nil
}
