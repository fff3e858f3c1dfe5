// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Repository is the storage surface of the catalog.
//
// Find methods return every matching view row; interpreting zero or many rows
// is left to the [Service].
type Repository interface {
	AuthorLinker

	FindByISBN(ctx context.Context, isbn int64) ([]Book, error)
	FindByTitle(ctx context.Context, title string) ([]Book, error)
	FindByAuthor(ctx context.Context, name string) ([]Book, error)
	FindByRating(ctx context.Context, rng RatingRange) ([]Book, error)
	ListPage(ctx context.Context, limit, offset int) ([]Book, error)
	CountBooks(ctx context.Context) (int, error)

	InsertBook(ctx context.Context, book *Book) error
	// UpdateRatings reports whether a row matched isbn.
	UpdateRatings(ctx context.Context, isbn int64, ratings Ratings) (bool, error)

	DeleteByISBN(ctx context.Context, isbn int64) ([]Book, error)
	DeleteByTitle(ctx context.Context, title string) ([]Book, error)
	DeleteByAuthor(ctx context.Context, name string) ([]Book, error)

	// WithinTx runs fn against a Repository bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}
