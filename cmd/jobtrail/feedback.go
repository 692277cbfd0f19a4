package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/feedback"
	"github.com/jobtrail/jobtrail/internal/model"
)

func feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <record-id>",
		Short: "Confirm or correct a stored parse result",
		Long: `Feedback marks a previously stored parse as correct or incorrect. The
regex rules that produced it are reinforced or penalized accordingly, and any
corrected values are kept on the record for later analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recordID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record ID %q: %w", args[0], err)
			}

			correct, _ := cmd.Flags().GetBool("correct")
			incorrect, _ := cmd.Flags().GetBool("incorrect")
			if correct == incorrect {
				return errors.New("exactly one of --correct or --incorrect is required")
			}

			company, _ := cmd.Flags().GetString("company")
			role, _ := cmd.Flags().GetString("role")
			status, _ := cmd.Flags().GetString("status")

			var corrections *model.Corrections
			if company != "" || role != "" || status != "" {
				corrections = &model.Corrections{
					Company: company,
					Role:    role,
					Status:  status,
				}
			}

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			record, err := db.GetParsedEmail(ctx, recordID)
			if err != nil {
				return err
			}

			processor := feedback.New(initPatternStore())
			if err := processor.Apply(record.Result, correct, corrections); err != nil {
				return err
			}

			correction := model.Correction{IsCorrect: correct}
			if corrections != nil {
				correction.Company = corrections.Company
				correction.Role = corrections.Role
				correction.Status = corrections.Status
			}
			if err := db.SaveCorrection(ctx, recordID, correction); err != nil {
				return err
			}

			fmt.Println("feedback recorded")
			return nil
		},
	}

	cmd.Flags().Bool("correct", false, "the parse was correct")
	cmd.Flags().Bool("incorrect", false, "the parse was incorrect")
	cmd.Flags().String("company", "", "corrected company name")
	cmd.Flags().String("role", "", "corrected role title")
	cmd.Flags().String("status", "", "corrected application status")

	return cmd
}
