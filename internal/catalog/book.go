// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog manages book records, their author links and rating aggregates.

It validates incoming mutations, keeps books and authors referentially
consistent, and serves the denormalized book view: one row per book with all
of its author names flattened into a single comma-joined string.

Core Responsibility:

  - Normalization: Splits raw author strings and upserts authors idempotently.
  - Validation: Enforces completeness and range rules on rating aggregates.
  - Queries: Builds the parameterized SQL for every read and write shape.
  - Coordination: Orchestrates multi-step inserts and pre-image returning deletes.
*/
package catalog

// MaxISBN13 is the exclusive upper bound of a 13-digit ISBN.
const MaxISBN13 int64 = 10_000_000_000_000

// # Domain Entities

// Ratings is the rating aggregate stored with every book.
//
// Count is not checked against the star counts; aggregates are computed
// upstream and stored verbatim.
type Ratings struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
	Rating1 int64   `json:"rating_1"`
	Rating2 int64   `json:"rating_2"`
	Rating3 int64   `json:"rating_3"`
	Rating4 int64   `json:"rating_4"`
	Rating5 int64   `json:"rating_5"`
}

// Icons is the cover image pair of a book.
type Icons struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

// Book is the denormalized view of a book joined with its authors.
type Book struct {
	ISBN13        int64   `json:"isbn13"`
	Authors       string  `json:"authors"`
	Publication   int64   `json:"publication"`
	OriginalTitle string  `json:"original_title"`
	Title         string  `json:"title"`
	Ratings       Ratings `json:"ratings"`
	Icons         Icons   `json:"icons"`
}

// AuthorRef identifies an author row that a book has been linked to.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorFailure records an author that could not be upserted or linked.
type AuthorFailure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// # Inputs

// RatingsInput is the client payload for a rating aggregate.
// Nil fields are reported as missing.
type RatingsInput struct {
	Average *float64 `json:"average"`
	Count   *int64   `json:"count"`
	Rating1 *int64   `json:"rating_1"`
	Rating2 *int64   `json:"rating_2"`
	Rating3 *int64   `json:"rating_3"`
	Rating4 *int64   `json:"rating_4"`
	Rating5 *int64   `json:"rating_5"`
}

// IconsInput is the client payload for the cover image pair.
type IconsInput struct {
	Large *string `json:"large"`
	Small *string `json:"small"`
}

// CreateBookInput is the client payload for a new book.
type CreateBookInput struct {
	ISBN13        *int64        `json:"isbn13"`
	Authors       *string       `json:"authors"`
	Publication   *int64        `json:"publication"`
	OriginalTitle *string       `json:"original_title"`
	Title         *string       `json:"title"`
	Ratings       *RatingsInput `json:"ratings"`
	Icons         *IconsInput   `json:"icons"`
}

// CreateResult is the outcome of a book insert.
type CreateResult struct {
	Book   *Book
	Report LinkReport
}

// Global field names for validation
const (
	FieldISBN13        = "isbn13"
	FieldAuthors       = "authors"
	FieldPublication   = "publication"
	FieldOriginalTitle = "original_title"
	FieldTitle         = "title"
	FieldRatings       = "ratings"
	FieldIcons         = "icons"
	FieldIconLarge     = "icons.large"
	FieldIconSmall     = "icons.small"
	FieldMin           = "min"
	FieldMax           = "max"
	FieldOrder         = "order"
)
