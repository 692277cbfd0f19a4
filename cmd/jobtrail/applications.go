package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Show tracked job applications",
	}

	cmd.AddCommand(applicationsListCmd())

	return cmd
}

func applicationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked applications, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			apps, err := db.ListApplications(ctx)
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				fmt.Println("no applications tracked yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tSTATUS\tSOURCE\tAPPLIED")
			for _, app := range apps {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					app.ID, app.Company, app.Role, app.Status, app.Source,
					app.AppliedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}
