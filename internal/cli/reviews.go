package cli

import (
	"fmt"

	"review-lifecycle-api/internal/entity"

	"github.com/spf13/cobra"
)

func newReviewsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Moderate reviews",
	}

	cmd.AddCommand(
		newReviewsQueueCmd(opts),
		newReviewShowCmd(opts),
		newReviewDecisionCmd(opts, "approve", entity.ReviewApproved),
		newReviewDecisionCmd(opts, "reject", entity.ReviewRejected),
		newReviewSetStatusCmd(opts),
	)

	return cmd
}

func newReviewsQueueCmd(opts *rootOptions) *cobra.Command {
	var (
		status string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List reviews waiting for a decision",
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
				reviews, err := deps.Services.Review.GetModerationQueue(cmd.Context(), entity.ReviewStatus(status), pg, session)
				if err != nil {
					return err
				}

				if opts.isJSON() {
					return printJSON(cmd.OutOrStdout(), reviews)
				}
				return printReviewTable(cmd.OutOrStdout(), reviews)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(entity.ReviewPending), "review status to list")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reviews")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of reviews to skip")

	return cmd
}

func newReviewShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <review-id>",
		Short: "Show a review in any status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			id, err := parseId("review", args[0])
			if err != nil {
				return err
			}

			return opts.withDeps(func(deps *Deps) error {
				review, err := deps.Services.Review.GetReview(cmd.Context(), id, session)
				if err != nil {
					return err
				}

				if opts.isJSON() {
					return printJSON(cmd.OutOrStdout(), review)
				}
				return printReviewDetail(cmd.OutOrStdout(), review)
			})
		},
	}
}

func newReviewDecisionCmd(opts *rootOptions, verb string, status entity.ReviewStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <review-id>",
		Short: fmt.Sprintf("Mark a review as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setReviewStatus(cmd, opts, args[0], status)
		},
	}
}

func newReviewSetStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <review-id> <status>",
		Short: "Put a review into any status, including back to pending",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setReviewStatus(cmd, opts, args[0], entity.ReviewStatus(args[1]))
		},
	}
}

func setReviewStatus(cmd *cobra.Command, opts *rootOptions, rawId string, status entity.ReviewStatus) error {
	session, err := opts.session()
	if err != nil {
		return err
	}
	id, err := parseId("review", rawId)
	if err != nil {
		return err
	}

	return opts.withDeps(func(deps *Deps) error {
		if err := deps.Services.Review.SetReviewStatus(cmd.Context(), id, status, session); err != nil {
			return err
		}

		if opts.isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{"id": id.String(), "status": string(status)})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Review %s is now %s\n", id, status)
		return err
	})
}
