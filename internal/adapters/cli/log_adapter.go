package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/formbuilder/internal/ports/primary"
)

// LogAdapter translates CLI operations to LogService and CacheService calls.
type LogAdapter struct {
	logs  primary.LogService
	cache primary.CacheService
	out   io.Writer
}

// NewLogAdapter creates a new LogAdapter.
func NewLogAdapter(logs primary.LogService, cache primary.CacheService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		logs:  logs,
		cache: cache,
		out:   out,
	}
}

// List prints recent submissions.
func (a *LogAdapter) List(ctx context.Context, filters primary.SubmissionFilters) ([]*primary.Submission, error) {
	submissions, err := a.logs.ListSubmissions(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		fmt.Fprintln(a.out, "No submissions found.")
		return submissions, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tACTOR\tQUESTION\tTYPE\tFORM\tOUTCOME")
	fmt.Fprintln(w, "--\t----\t-----\t--------\t----\t----\t-------")

	for _, s := range submissions {
		form := "-"
		if s.Created {
			form = s.Form
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.CreatedAt,
			s.ActorID,
			s.Slug,
			s.Kind,
			form,
			outcomeColor(s.Outcome).Sprint(s.Outcome),
		)
	}

	w.Flush()
	return submissions, nil
}

// ClearCache empties the local query cache.
func (a *LogAdapter) ClearCache(ctx context.Context) (int64, error) {
	n, err := a.cache.ClearCache(ctx)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ Cleared %d cached queries\n", n)
	return n, nil
}

func outcomeColor(outcome string) *color.Color {
	if outcome == "failed" {
		return color.New(color.FgRed)
	}
	return color.New(color.FgGreen)
}
