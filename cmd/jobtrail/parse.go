package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/mailfile"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/nlp"
	"github.com/jobtrail/jobtrail/internal/parser"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse one email into a structured application record",
		Long: `Parse classifies a single email, given either as flags or as a raw .eml
file, and prints the structured result. Unless --dry-run is set, the parse is
stored so it can later receive feedback by record ID.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			file, _ := cmd.Flags().GetString("file")
			subject, _ := cmd.Flags().GetString("subject")
			sender, _ := cmd.Flags().GetString("sender")
			body, _ := cmd.Flags().GetString("body")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if file != "" {
				msg, err := mailfile.Read(file)
				if err != nil {
					return err
				}
				subject, sender, body = msg.Subject, msg.Sender, msg.Body
			}
			if subject == "" && sender == "" && body == "" {
				return errors.New("nothing to parse: provide --file or --subject/--sender/--body")
			}

			store := initPatternStore()
			p := parser.New(store, nlp.NewProseRecognizer())

			result, err := p.ParseEmail(subject, sender, body)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Println(string(out))

			if dryRun {
				return nil
			}

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			record := &model.ParsedEmailRecord{
				Subject:     subject,
				Sender:      sender,
				BodySnippet: snippet(body),
				Result:      result,
			}
			if err := db.SaveParsedEmail(ctx, record); err != nil {
				return err
			}

			if result.Company != "" {
				if _, err := db.UpsertApplication(ctx, result); err != nil {
					slog.Warn("failed to update application", "company", result.Company, "error", err)
				}
			}

			fmt.Printf("stored as record %d (use `jobtrail feedback %d` to confirm or correct)\n",
				record.ID, record.ID)
			return nil
		},
	}

	cmd.Flags().String("file", "", "path to a raw .eml file")
	cmd.Flags().String("subject", "", "email subject")
	cmd.Flags().String("sender", "", "email From header")
	cmd.Flags().String("body", "", "email body text")
	cmd.Flags().Bool("dry-run", false, "print the result without storing it")

	return cmd
}
