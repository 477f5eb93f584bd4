package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"impractical.co/miniconf/internal/sitedata"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the site data, reporting any errors, and summarise it",
		Long: `validate loads the site data the same way build and serve do, and
prints a fingerprint of it along with how many records of each kind were
loaded. Two data directories with the same fingerprint produce the same site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := sitedata.Load(cmd.Context(), a.dataFS())
			if err != nil {
				return err
			}
			fingerprint, err := data.Fingerprint()
			if err != nil {
				return err
			}
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(out, "fingerprint\t%s\n", fingerprint)
			fmt.Fprintf(out, "papers\t%d\n", len(data.Papers))
			fmt.Fprintf(out, "plenary sessions\t%d\n", len(data.PlenarySessions))
			fmt.Fprintf(out, "tutorials\t%d\n", len(data.Tutorials))
			fmt.Fprintf(out, "workshops\t%d\n", len(data.Workshops))
			fmt.Fprintf(out, "sessions\t%d\n", len(data.Sessions))
			fmt.Fprintf(out, "socials\t%d\n", len(data.Socials))
			fmt.Fprintf(out, "sponsors\t%d\n", len(data.Sponsors))
			fmt.Fprintf(out, "committee members\t%d\n", len(data.Committee))
			fmt.Fprintf(out, "pages\t%d\n", len(data.Pages))
			fmt.Fprintf(out, "calendar events\t%d\n", len(data.Calendar))
			return out.Flush()
		},
	}
}
