// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

// Options tunes the write path of a [Service].
type Options struct {
	// AtomicInsert runs each insert in one transaction: authors are linked
	// sequentially and any failure rolls the book back.
	AtomicInsert bool

	// AuthorLinkConcurrency bounds concurrent author steps in best-effort mode.
	AuthorLinkConcurrency int

	// Cache holds by-ISBN views. Nil disables caching.
	Cache ViewCache
}

// Service coordinates catalog reads and multi-step writes.
type Service struct {
	repo       Repository
	normalizer *Normalizer
	cache      ViewCache
	atomic     bool
	logger     *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger, opts Options) *Service {
	cache := opts.Cache
	if cache == nil {
		cache = NopCache{}
	}

	return &Service{
		repo:       repo,
		normalizer: NewNormalizer(opts.AuthorLinkConcurrency, logger),
		cache:      cache,
		atomic:     opts.AtomicInsert,
		logger:     logger,
	}
}

// # Reads

// GetByISBN returns one book view, read through the cache.
func (service *Service) GetByISBN(ctx context.Context, isbn int64) (*Book, error) {
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}

	if cached, ok, err := service.cache.Get(ctx, isbn); err != nil {
		service.logCacheError(ctx, "cache_get_failed", err)
	} else if ok {
		return cached, nil
	}

	book, err := service.loadByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(ctx, book); err != nil {
		service.logCacheError(ctx, "cache_set_failed", err)
	}
	return book, nil
}

// FindByTitle returns books whose title matches exactly.
func (service *Service) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	if err := (&validate.Validator{}).Required(FieldTitle, title).Err(); err != nil {
		return nil, err
	}

	return nonEmpty(service.repo.FindByTitle(ctx, title))
}

// FindByAuthor returns books linked to the exactly named author.
func (service *Service) FindByAuthor(ctx context.Context, name string) ([]Book, error) {
	if err := (&validate.Validator{}).Required(FieldAuthors, name).Err(); err != nil {
		return nil, err
	}

	return nonEmpty(service.repo.FindByAuthor(ctx, name))
}

// FindByRating returns books inside the range. An empty result is not an error.
func (service *Service) FindByRating(ctx context.Context, rng RatingRange) ([]Book, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	books, err := service.repo.FindByRating(ctx, rng)
	if err != nil {
		return nil, err
	}
	return orEmpty(books), nil
}

// ListPage returns one page and a total-count snapshot taken by a second query.
func (service *Service) ListPage(ctx context.Context, params pagination.Params) ([]Book, pagination.Meta, error) {
	books, err := service.repo.ListPage(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.CountBooks(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return orEmpty(books), pagination.NewMeta(params, total), nil
}

// # Writes

// CreateBook validates and inserts a book, then links its authors.
//
// In best-effort mode the book row is committed before authors are linked and
// per-author failures only appear in the report. In atomic mode everything
// happens in one transaction.
func (service *Service) CreateBook(ctx context.Context, input CreateBookInput) (*CreateResult, error) {
	book, names, err := buildBook(input)
	if err != nil {
		return nil, err
	}

	var report LinkReport
	if service.atomic {
		err = service.repo.WithinTx(ctx, func(tx Repository) error {
			if insertErr := tx.InsertBook(ctx, book); insertErr != nil {
				return insertErr
			}
			linked, linkErr := service.normalizer.NormalizeStrict(ctx, tx, book.ISBN13, names)
			report = linked
			return linkErr
		})
	} else {
		if err = service.repo.InsertBook(ctx, book); err == nil {
			report = service.normalizer.Normalize(ctx, service.repo, book.ISBN13, names)
		}
	}
	if err != nil {
		return nil, err
	}

	book.Authors = strings.Join(report.Names(), AuthorSeparator)

	service.logger.InfoContext(ctx, "book_created",
		slog.Int64("isbn13", book.ISBN13),
		slog.Int("authors_linked", len(report.Linked)),
		slog.Int("authors_failed", len(report.Failed)),
	)
	return &CreateResult{Book: book, Report: report}, nil
}

// UpdateRatings fully replaces the rating aggregate of one book and returns
// the refreshed view.
func (service *Service) UpdateRatings(ctx context.Context, isbn int64, input *RatingsInput) (*Book, error) {
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}

	ratings, err := ValidateRatings(input)
	if err != nil {
		return nil, err
	}

	found, err := service.repo.UpdateRatings(ctx, isbn, ratings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound(resourceBook)
	}

	service.invalidate(ctx, isbn)
	service.logger.InfoContext(ctx, "book_ratings_updated", slog.Int64("isbn13", isbn))

	return service.loadByISBN(ctx, isbn)
}

// DeleteByISBN removes one book and returns its pre-image.
func (service *Service) DeleteByISBN(ctx context.Context, isbn int64) (*Book, error) {
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}

	removed, err := nonEmpty(service.repo.DeleteByISBN(ctx, isbn))
	if err != nil {
		return nil, err
	}

	service.afterDelete(ctx, removed)
	return &removed[0], nil
}

// DeleteByTitle removes every book with the exact title.
func (service *Service) DeleteByTitle(ctx context.Context, title string) ([]Book, error) {
	if err := (&validate.Validator{}).Required(FieldTitle, title).Err(); err != nil {
		return nil, err
	}

	removed, err := nonEmpty(service.repo.DeleteByTitle(ctx, title))
	if err != nil {
		return nil, err
	}

	service.afterDelete(ctx, removed)
	return removed, nil
}

// DeleteByAuthor removes every book linked to the exactly named author.
func (service *Service) DeleteByAuthor(ctx context.Context, name string) ([]Book, error) {
	if err := (&validate.Validator{}).Required(FieldAuthors, name).Err(); err != nil {
		return nil, err
	}

	removed, err := nonEmpty(service.repo.DeleteByAuthor(ctx, name))
	if err != nil {
		return nil, err
	}

	service.afterDelete(ctx, removed)
	return removed, nil
}

// # Helpers

// loadByISBN reads one view row from storage, bypassing the cache.
func (service *Service) loadByISBN(ctx context.Context, isbn int64) (*Book, error) {
	books, err := service.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	switch len(books) {
	case 0:
		return nil, apperr.NotFound(resourceBook)
	case 1:
		return &books[0], nil
	default:
		return nil, apperr.Integrity(fmt.Errorf("isbn13 %d matched %d rows", isbn, len(books)))
	}
}

func (service *Service) afterDelete(ctx context.Context, removed []Book) {
	isbns := make([]int64, len(removed))
	for i, book := range removed {
		isbns[i] = book.ISBN13
	}

	service.invalidate(ctx, isbns...)
	service.logger.WarnContext(ctx, "books_deleted",
		slog.Int("count", len(removed)),
		slog.Any("isbn13", isbns),
	)
}

func (service *Service) invalidate(ctx context.Context, isbns ...int64) {
	if err := service.cache.Invalidate(ctx, isbns...); err != nil {
		service.logCacheError(ctx, "cache_invalidate_failed", err)
	}
}

func (service *Service) logCacheError(ctx context.Context, event string, err error) {
	service.logger.WarnContext(ctx, event, slog.String("error", err.Error()))
}

// buildBook shape-checks a create payload and returns the row to insert and
// the author names to link.
func buildBook(input CreateBookInput) (*Book, []string, error) {
	if input.ISBN13 == nil {
		return nil, nil, apperr.Invalid(apperr.CodeMissingField, "isbn13 is required")
	}
	if err := validateISBN(*input.ISBN13); err != nil {
		return nil, nil, err
	}

	if !validate.IsStringProvided(input.Title) {
		return nil, nil, apperr.Invalid(apperr.CodeMissingField, "title is required")
	}
	if !validate.IsStringProvided(input.Authors) {
		return nil, nil, apperr.Invalid(apperr.CodeMissingField, "authors is required")
	}
	names := SplitAuthors(*input.Authors)
	if len(names) == 0 {
		return nil, nil, apperr.ValidationError("authors must name at least one author")
	}

	if input.Publication == nil {
		return nil, nil, apperr.Invalid(apperr.CodeMissingField, "publication is required")
	}
	if *input.Publication < 0 {
		return nil, nil, apperr.Invalid(apperr.CodeRange, "publication must not be negative")
	}
	if *input.Publication > MaxCount {
		return nil, nil, apperr.Invalid(apperr.CodeRange, "publication must be at most 2147483647")
	}

	ratings, err := ValidateRatings(input.Ratings)
	if err != nil {
		return nil, nil, err
	}

	if input.Icons == nil || !validate.IsStringProvided(input.Icons.Large) || !validate.IsStringProvided(input.Icons.Small) {
		return nil, nil, apperr.Invalid(apperr.CodeMissingField, "icons.large and icons.small are required")
	}

	originalTitle := *input.Title
	if validate.IsStringProvided(input.OriginalTitle) {
		originalTitle = *input.OriginalTitle
	}

	return &Book{
		ISBN13:        *input.ISBN13,
		Publication:   *input.Publication,
		OriginalTitle: originalTitle,
		Title:         *input.Title,
		Ratings:       ratings,
		Icons:         Icons{Large: *input.Icons.Large, Small: *input.Icons.Small},
	}, names, nil
}

func validateISBN(isbn int64) error {
	if isbn < 0 || isbn >= MaxISBN13 {
		return apperr.Invalid(apperr.CodeRange, "isbn13 must be a non-negative integer of at most 13 digits")
	}
	return nil
}

// nonEmpty turns a zero-row result into NotFound.
func nonEmpty(books []Book, err error) ([]Book, error) {
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperr.NotFound(resourceBook)
	}
	return books, nil
}

func orEmpty(books []Book) []Book {
	if books == nil {
		return []Book{}
	}
	return books
}
