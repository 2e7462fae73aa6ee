package contentgen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/question"
)

// FetchError reports the categories whose batch could not be generated.
type FetchError struct {
	Categories []question.Category
	Errs       []error
}

func (e *FetchError) Error() string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = c.DisplayName()
	}
	return fmt.Sprintf("failed to fetch questions for the following categories: %s", strings.Join(names, ", "))
}

// Unwrap exposes the per-category causes to errors.Is and errors.As.
func (e *FetchError) Unwrap() []error {
	return e.Errs
}

// GeneratePool fetches every category concurrently. The pool is returned
// only when all categories succeed; otherwise the result is a *FetchError
// and no partial pool.
func GeneratePool(ctx context.Context, gen Generator, level difficulty.Level, grade int) (question.Pool, error) {
	cats := question.Categories()
	results := make([][]question.Question, len(cats))
	errs := make([]error, len(cats))

	// Every category runs to the end so a failure can name all of them.
	var g errgroup.Group
	for i, cat := range cats {
		g.Go(func() error {
			qs, err := gen.GenerateQuestions(ctx, cat, level, grade)
			if err != nil {
				errs[i] = err
				return fmt.Errorf("%s: %w", cat, err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		failure := &FetchError{}
		for i, cat := range cats {
			if errs[i] == nil {
				continue
			}
			logging.FromContext(ctx).Warn().Err(errs[i]).Str("category", string(cat)).Msg("question fetch failed")
			failure.Categories = append(failure.Categories, cat)
			failure.Errs = append(failure.Errs, errs[i])
		}
		return nil, failure
	}

	pool := make(question.Pool, len(cats))
	for i, cat := range cats {
		pool[cat] = results[i]
	}
	return pool, nil
}
