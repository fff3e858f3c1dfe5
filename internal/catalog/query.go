// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
)

// Query is a parameterized SQL statement and its ordered bind values.
type Query struct {
	SQL  string
	Args []any
}

// # Rating Range

// Order is the sort direction of a rating range query.
type Order string

const (
	// OrderMinFirst sorts by ascending average. It is the default.
	OrderMinFirst Order = "min-first"

	// OrderMaxFirst sorts by descending average.
	OrderMaxFirst Order = "max-first"
)

// ParseOrder maps a raw query value to an [Order]. Empty means [OrderMinFirst].
func ParseOrder(raw string) (Order, error) {
	switch Order(raw) {
	case "", OrderMinFirst:
		return OrderMinFirst, nil
	case OrderMaxFirst:
		return OrderMaxFirst, nil
	}
	return "", apperr.ValidationError("order must be min-first or max-first")
}

func (o Order) sql() string {
	if o == OrderMaxFirst {
		return "DESC"
	}
	return "ASC"
}

// RatingRange selects books whose average lies in [Min, Max].
type RatingRange struct {
	Min   float64
	Max   float64
	Order Order
}

// Validate rejects a range before any query runs.
func (r RatingRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return apperr.Invalid(apperr.CodeRange, "min and max must be numbers")
	}
	if r.Min <= 0 {
		return apperr.Invalid(apperr.CodeRange, "min must be greater than 0")
	}
	if r.Min > r.Max {
		return apperr.Invalid(apperr.CodeRange, "min must not be greater than max")
	}
	return nil
}

// # View Queries

var (
	tblBooks   = schema.Books
	tblAuthors = schema.Authors
	tblLinks   = schema.BookAuthors
)

// bookColumns returns every books column qualified with the "b" alias.
func bookColumns() []string {
	columns := tblBooks.Columns()
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = "b." + column
	}
	return qualified
}

// viewSQL renders the aggregate view: books inner-joined to their authors,
// grouped per book, authors flattened alphabetically.
//
// Select order matches [scanBook].
func viewSQL(where, orderBy string) string {
	grouped := strings.Join(bookColumns(), ", ")

	return fmt.Sprintf(`
		SELECT b.%s,
		       STRING_AGG(a.%s, ', ' ORDER BY a.%s) AS authors,
		       b.%s, b.%s, b.%s,
		       b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       b.%s, b.%s
		FROM %s b
		JOIN %s ba ON ba.%s = b.%s
		JOIN %s a ON a.%s = ba.%s
		WHERE %s
		GROUP BY %s
		ORDER BY %s`,
		tblBooks.ISBN13,
		tblAuthors.Name, tblAuthors.Name,
		tblBooks.PublicationYear, tblBooks.OriginalTitle, tblBooks.Title,
		tblBooks.RatingAvg, tblBooks.RatingCount, tblBooks.Rating1, tblBooks.Rating2, tblBooks.Rating3, tblBooks.Rating4, tblBooks.Rating5,
		tblBooks.ImageURL, tblBooks.ImageSmallURL,
		tblBooks.Table,
		tblLinks.Table, tblLinks.ISBN13, tblBooks.ISBN13,
		tblAuthors.Table, tblAuthors.ID, tblLinks.AuthorID,
		where,
		grouped,
		orderBy,
	)
}

func byISBNOrder() string {
	return "b." + tblBooks.ISBN13 + " ASC"
}

// authorFilter matches books linked to the named author without narrowing
// the aggregated author string to that one name.
func authorFilter(placeholder string) string {
	return fmt.Sprintf(`b.%s IN (
			SELECT ba2.%s FROM %s ba2
			JOIN %s a2 ON a2.%s = ba2.%s
			WHERE a2.%s = %s)`,
		tblBooks.ISBN13,
		tblLinks.ISBN13, tblLinks.Table,
		tblAuthors.Table, tblAuthors.ID, tblLinks.AuthorID,
		tblAuthors.Name, placeholder,
	)
}

// SelectByISBN returns the view of one book. More than one row is an integrity fault.
func SelectByISBN(isbn int64) Query {
	return Query{
		SQL:  viewSQL("b."+tblBooks.ISBN13+" = $1", byISBNOrder()),
		Args: []any{isbn},
	}
}

// SelectByTitle returns books whose title equals title exactly.
func SelectByTitle(title string) Query {
	return Query{
		SQL:  viewSQL("b."+tblBooks.Title+" = $1", byISBNOrder()),
		Args: []any{title},
	}
}

// SelectByAuthor returns books linked to an author whose name equals name exactly.
func SelectByAuthor(name string) Query {
	return Query{
		SQL:  viewSQL(authorFilter("$1"), byISBNOrder()),
		Args: []any{name},
	}
}

// SelectByRating returns books with min <= average <= max in the range's order.
// Ties are broken by ascending ISBN.
func SelectByRating(rng RatingRange) Query {
	where := fmt.Sprintf("b.%s BETWEEN $1 AND $2", tblBooks.RatingAvg)
	orderBy := fmt.Sprintf("b.%s %s, %s", tblBooks.RatingAvg, rng.Order.sql(), byISBNOrder())

	return Query{
		SQL:  viewSQL(where, orderBy),
		Args: []any{rng.Min, rng.Max},
	}
}

// SelectPage returns one page of the unconditional scan ordered by ISBN.
func SelectPage(limit, offset int) Query {
	return Query{
		SQL:  viewSQL("TRUE", byISBNOrder()) + "\n\t\tLIMIT $1 OFFSET $2",
		Args: []any{limit, offset},
	}
}

// CountBooks counts every book row. It runs as a separate round trip from
// [SelectPage], so the total is a snapshot.
func CountBooks() Query {
	return Query{SQL: fmt.Sprintf(`SELECT COUNT(*) FROM %s`, tblBooks.Table)}
}

// # Write Queries

// InsertBook inserts the primary book row. A duplicate ISBN fails with a unique violation.
func InsertBook(book *Book) Query {
	columns := tblBooks.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return Query{
		SQL: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			tblBooks.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		),
		Args: []any{
			book.ISBN13, book.Title, book.OriginalTitle, book.Publication,
			book.Ratings.Average, book.Ratings.Count,
			book.Ratings.Rating1, book.Ratings.Rating2, book.Ratings.Rating3, book.Ratings.Rating4, book.Ratings.Rating5,
			book.Icons.Large, book.Icons.Small,
		},
	}
}

// UpsertAuthor inserts an author or reuses the existing row with the same name.
//
// The no-op update makes RETURNING yield the id in both cases, so a concurrent
// creator of the same name is not an error.
func UpsertAuthor(name string) Query {
	return Query{
		SQL: fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s`,
			tblAuthors.Table, tblAuthors.Name,
			tblAuthors.Name, tblAuthors.Name, tblAuthors.Name,
			tblAuthors.ID,
		),
		Args: []any{name},
	}
}

// LinkAuthor links a book to an author. Re-adding an existing pair is a no-op.
func LinkAuthor(isbn, authorID int64) Query {
	return Query{
		SQL: fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			tblLinks.Table, tblLinks.ISBN13, tblLinks.AuthorID,
		),
		Args: []any{isbn, authorID},
	}
}

// UpdateRatings replaces all seven rating fields of one book.
func UpdateRatings(isbn int64, ratings Ratings) Query {
	columns := tblBooks.RatingColumns()
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	return Query{
		SQL: fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
			tblBooks.Table, strings.Join(assignments, ", "), tblBooks.ISBN13,
		),
		Args: []any{
			isbn, ratings.Average, ratings.Count,
			ratings.Rating1, ratings.Rating2, ratings.Rating3, ratings.Rating4, ratings.Rating5,
		},
	}
}

// deleteSQL captures the view of the matched books, removes their links and
// rows in the same statement, and returns the captured pre-images.
func deleteSQL(where string) string {
	return fmt.Sprintf(`
		WITH doomed AS (%s
		),
		unlinked AS (
			DELETE FROM %s WHERE %s IN (SELECT %s FROM doomed)
		),
		removed AS (
			DELETE FROM %s WHERE %s IN (SELECT %s FROM doomed)
			RETURNING %s
		)
		SELECT doomed.* FROM doomed
		JOIN removed USING (%s)
		ORDER BY %s ASC`,
		viewSQL(where, byISBNOrder()),
		tblLinks.Table, tblLinks.ISBN13, tblBooks.ISBN13,
		tblBooks.Table, tblBooks.ISBN13, tblBooks.ISBN13,
		tblBooks.ISBN13,
		tblBooks.ISBN13,
		tblBooks.ISBN13,
	)
}

// DeleteByISBN deletes one book and returns its pre-image.
func DeleteByISBN(isbn int64) Query {
	return Query{SQL: deleteSQL("b." + tblBooks.ISBN13 + " = $1"), Args: []any{isbn}}
}

// DeleteByTitle deletes every book with the exact title and returns the pre-images.
func DeleteByTitle(title string) Query {
	return Query{SQL: deleteSQL("b." + tblBooks.Title + " = $1"), Args: []any{title}}
}

// DeleteByAuthor deletes every book linked to the named author and returns the pre-images.
func DeleteByAuthor(name string) Query {
	return Query{SQL: deleteSQL(authorFilter("$1")), Args: []any{name}}
}
