package cli

import (
	"fmt"

	"review-lifecycle-api/internal/entity"

	"github.com/spf13/cobra"
)

func newContactCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Triage contact form submissions",
	}

	cmd.AddCommand(
		newContactListCmd(opts),
		newContactSetStatusCmd(opts),
	)

	return cmd
}

func newContactListCmd(opts *rootOptions) *cobra.Command {
	var (
		status string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contact submissions by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			if limit < 0 || offset < 0 {
				return fmt.Errorf("limit and offset must not be negative")
			}

			return opts.withDeps(func(deps *Deps) error {
				pg := entity.NewPaginationInput(limit, offset)
				submissions, err := deps.Services.Contact.GetContactSubmissions(cmd.Context(), entity.ContactStatus(status), pg, session)
				if err != nil {
					return err
				}

				if opts.isJSON() {
					return printJSON(cmd.OutOrStdout(), submissions)
				}
				return printContactTable(cmd.OutOrStdout(), submissions)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(entity.ContactNew), "submission status to list")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of submissions")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of submissions to skip")

	return cmd
}

func newContactSetStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <submission-id> <new|in_progress|responded>",
		Short: "Move a contact submission through triage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			id, err := parseId("submission", args[0])
			if err != nil {
				return err
			}
			status := entity.ContactStatus(args[1])

			return opts.withDeps(func(deps *Deps) error {
				if err := deps.Services.Contact.SetContactStatus(cmd.Context(), id, status, session); err != nil {
					return err
				}

				if opts.isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]string{"id": id.String(), "status": string(status)})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Submission %s is now %s\n", id, status)
				return err
			})
		},
	}
}
