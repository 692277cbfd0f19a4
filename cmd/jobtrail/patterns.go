package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/patternstore"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern"},
		Short:   "Manage the extraction pattern library",
	}

	cmd.AddCommand(patternsListCmd())
	cmd.AddCommand(patternsSeedCmd())

	return cmd
}

func patternsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List extraction rules with their learned statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			store := initPatternStore()
			library, err := store.Load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tCONFIDENCE\tOK\tFAIL\tREGEX")
			for _, kind := range []model.RuleKind{model.RuleKindCompany, model.RuleKindRole} {
				for _, rule := range library.Rules(kind) {
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
						kind, rule.Confidence, rule.SuccessCount, rule.FailCount, rule.Regex)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d known sender domains\n", len(library.Company.DomainToCompany))

			var names []string
			for _, status := range library.Status.Rules() {
				names = append(names, fmt.Sprintf("%s (weight %d, %d keywords)",
					status.Name, status.Weight, len(status.Keywords)))
			}
			fmt.Printf("statuses: %s\n", strings.Join(names, ", "))

			return nil
		},
	}
}

func patternsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default pattern library",
		Long: `Seed writes the built-in pattern library to the configured patterns path.
It refuses to overwrite an existing document; edit that file directly or
remove it first.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			store := initPatternStore()
			if err := store.Initialize(patternstore.DefaultLibrary()); err != nil {
				return err
			}
			fmt.Println("pattern library seeded")
			return nil
		},
	}
}
