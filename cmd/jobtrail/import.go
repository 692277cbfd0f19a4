package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/mailfile"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/nlp"
	"github.com/jobtrail/jobtrail/internal/parser"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <directory>",
		Short: "Import and classify a directory of .eml files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths, err := mailfile.List(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println("no .eml files found")
				return nil
			}

			store := initPatternStore()
			p := parser.New(store, nlp.NewProseRecognizer())

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			bar := progressbar.Default(int64(len(paths)), "importing")

			imported, failed := 0, 0
			for _, path := range paths {
				if err := ctx.Err(); err != nil {
					return err
				}

				msg, readErr := mailfile.Read(path)
				if readErr != nil {
					slog.Warn("skipping unreadable message", "path", path, "error", readErr)
					failed++
					_ = bar.Add(1)
					continue
				}

				result, parseErr := p.ParseEmail(msg.Subject, msg.Sender, msg.Body)
				if parseErr != nil {
					return parseErr
				}

				record := &model.ParsedEmailRecord{
					EmailID:     path,
					Subject:     msg.Subject,
					Sender:      msg.Sender,
					BodySnippet: snippet(msg.Body),
					Result:      result,
				}
				if saveErr := db.SaveParsedEmail(ctx, record); saveErr != nil {
					slog.Warn("failed to store parse", "path", path, "error", saveErr)
					failed++
					_ = bar.Add(1)
					continue
				}

				if result.Company != "" {
					if _, upsertErr := db.UpsertApplication(ctx, result); upsertErr != nil {
						slog.Warn("failed to update application",
							"company", result.Company, "error", upsertErr)
					}
				}

				imported++
				_ = bar.Add(1)
			}

			fmt.Printf("imported %d message(s), %d failed\n", imported, failed)
			return nil
		},
	}
}
