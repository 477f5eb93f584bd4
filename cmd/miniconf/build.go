package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"impractical.co/miniconf/internal/build"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the site out as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			static, err := a.staticFS()
			if err != nil {
				return err
			}
			report, err := build.Run(cmd.Context(), build.Options{
				Data:        a.dataFS(),
				Templates:   a.templateFS(),
				Static:      static,
				OutputDir:   a.cfg.OutputDir,
				Precompress: a.cfg.Precompress,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages, %d documents, and %d assets into %s.\n",
				report.Pages, report.Documents, report.Assets, a.cfg.OutputDir)
			return nil
		},
	}
	cmd.Flags().String("output-dir", "", "directory to write the site to")
	cmd.Flags().Bool("precompress", false, "also write gzip and zstd compressed copies of text files")
	return cmd
}
