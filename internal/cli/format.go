package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"review-lifecycle-api/internal/entity"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReviewTable(w io.Writer, reviews []entity.ReviewOutputModel) error {
	if len(reviews) == 0 {
		_, err := fmt.Fprintln(w, "No reviews found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUBJECT\tRATING\tAUTHOR\tCREATED\tCONTENT")
	for _, r := range reviews {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", r.Id, r.SubjectId, r.Rating, r.Author.DisplayName, r.CreatedAt, truncate(r.Content, 40))
	}

	return tw.Flush()
}

func printReviewDetail(w io.Writer, r *entity.ReviewOutputModel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.Id)
	fmt.Fprintf(tw, "Subject:\t%s\n", r.SubjectId)
	fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
	fmt.Fprintf(tw, "Rating:\t%d\n", r.Rating)
	fmt.Fprintf(tw, "Author:\t%s\n", r.Author.DisplayName)
	fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt)
	if r.RespondedAt != "" {
		fmt.Fprintf(tw, "Responded:\t%s\n", r.RespondedAt)
	}
	if r.Title != "" {
		fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", r.Content)
	return err
}

func printContactTable(w io.Writer, submissions []entity.ContactOutputModel) error {
	if len(submissions) == 0 {
		_, err := fmt.Fprintln(w, "No contact submissions found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tEMAIL\tTOPIC\tCREATED")
	for _, c := range submissions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Id, c.Status, c.Name, c.Email, c.Topic, c.CreatedAt)
	}

	return tw.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-3]) + "..."
}
