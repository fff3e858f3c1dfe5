// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// AuthorSeparator is the literal delimiter between names in a raw author string.
// A name containing it cannot be represented.
const AuthorSeparator = ", "

// SplitAuthors splits a raw author string into canonical names.
//
// Names are NFC-normalized so equivalent spellings share one author row.
// Empty segments and repeats are dropped; first-occurrence order is kept.
func SplitAuthors(raw string) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, segment := range strings.Split(raw, AuthorSeparator) {
		name := norm.NFC.String(segment)
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// AuthorLinker is the storage surface needed to attach authors to a book.
type AuthorLinker interface {
	UpsertAuthor(ctx context.Context, name string) (int64, error)
	LinkAuthor(ctx context.Context, isbn, authorID int64) error
}

// LinkReport tells which authors of an insert were linked and which failed.
type LinkReport struct {
	Linked []AuthorRef
	Failed []AuthorFailure
}

// Names returns the linked author names in alphabetical order.
func (r LinkReport) Names() []string {
	names := make([]string, len(r.Linked))
	for i, ref := range r.Linked {
		names[i] = ref.Name
	}
	slices.Sort(names)
	return names
}

// FailedNames returns the names that could not be linked.
func (r LinkReport) FailedNames() []string {
	names := make([]string, len(r.Failed))
	for i, failure := range r.Failed {
		names[i] = failure.Name
	}
	return names
}

// Normalizer upserts authors and links them to a book.
type Normalizer struct {
	limit  int
	logger *slog.Logger
}

// NewNormalizer returns a Normalizer running at most limit author steps at once.
func NewNormalizer(limit int, logger *slog.Logger) *Normalizer {
	if limit < 1 {
		limit = 1
	}
	return &Normalizer{limit: limit, logger: logger}
}

// Normalize links every name to isbn, best effort.
//
// Per-author steps run concurrently and complete in no defined order. A failed
// upsert or link is logged and reported; it never aborts the others.
func (n *Normalizer) Normalize(ctx context.Context, linker AuthorLinker, isbn int64, names []string) LinkReport {
	var (
		mu     sync.Mutex
		report LinkReport
		group  errgroup.Group
	)
	group.SetLimit(n.limit)

	for _, name := range names {
		group.Go(func() error {
			ref, err := n.linkOne(ctx, linker, isbn, name)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				n.logger.WarnContext(ctx, "author_link_failed",
					slog.Int64("isbn13", isbn),
					slog.String("author", name),
					slog.String("error", err.Error()),
				)
				report.Failed = append(report.Failed, AuthorFailure{Name: name, Err: err})
				return nil
			}
			report.Linked = append(report.Linked, ref)
			return nil
		})
	}

	// Workers never return an error; failures live in the report.
	_ = group.Wait()

	sortReport(&report)
	return report
}

// NormalizeStrict links every name to isbn in input order and stops at the
// first failure. It is used inside a transaction where one failure rolls
// back the whole insert.
func (n *Normalizer) NormalizeStrict(ctx context.Context, linker AuthorLinker, isbn int64, names []string) (LinkReport, error) {
	var report LinkReport

	for _, name := range names {
		ref, err := n.linkOne(ctx, linker, isbn, name)
		if err != nil {
			return report, err
		}
		report.Linked = append(report.Linked, ref)
	}

	sortReport(&report)
	return report, nil
}

func (n *Normalizer) linkOne(ctx context.Context, linker AuthorLinker, isbn int64, name string) (AuthorRef, error) {
	authorID, err := linker.UpsertAuthor(ctx, name)
	if err != nil {
		return AuthorRef{}, fmt.Errorf("upsert author %q: %w", name, err)
	}

	if err := linker.LinkAuthor(ctx, isbn, authorID); err != nil {
		return AuthorRef{}, fmt.Errorf("link author %q: %w", name, err)
	}

	return AuthorRef{ID: authorID, Name: name}, nil
}

func sortReport(report *LinkReport) {
	slices.SortFunc(report.Linked, func(a, b AuthorRef) int {
		return strings.Compare(a.Name, b.Name)
	})
	slices.SortFunc(report.Failed, func(a, b AuthorFailure) int {
		return strings.Compare(a.Name, b.Name)
	})
}
