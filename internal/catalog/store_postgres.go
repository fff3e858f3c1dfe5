// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/bookshelf/internal/platform/dberr"
	"github.com/taibuivan/bookshelf/internal/platform/postgres"
)

const (
	resourceBook   = "Book"
	resourceAuthor = "Author"
)

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db postgres.TxStarter
}

// NewPostgresRepository binds the repository to a pool, connection or transaction.
func NewPostgresRepository(db postgres.TxStarter) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Reads

func (repository *PostgresRepository) FindByISBN(ctx context.Context, isbn int64) ([]Book, error) {
	return repository.view(ctx, SelectByISBN(isbn), "find_book_by_isbn")
}

func (repository *PostgresRepository) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return repository.view(ctx, SelectByTitle(title), "find_books_by_title")
}

func (repository *PostgresRepository) FindByAuthor(ctx context.Context, name string) ([]Book, error) {
	return repository.view(ctx, SelectByAuthor(name), "find_books_by_author")
}

func (repository *PostgresRepository) FindByRating(ctx context.Context, rng RatingRange) ([]Book, error) {
	return repository.view(ctx, SelectByRating(rng), "find_books_by_rating")
}

func (repository *PostgresRepository) ListPage(ctx context.Context, limit, offset int) ([]Book, error) {
	return repository.view(ctx, SelectPage(limit, offset), "list_books")
}

func (repository *PostgresRepository) CountBooks(ctx context.Context) (int, error) {
	query := CountBooks()

	var total int
	if err := repository.db.QueryRow(ctx, query.SQL, query.Args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceBook, "count_books")
	}
	return total, nil
}

// # Writes

func (repository *PostgresRepository) InsertBook(ctx context.Context, book *Book) error {
	query := InsertBook(book)

	_, err := repository.db.Exec(ctx, query.SQL, query.Args...)
	return dberr.Wrap(err, resourceBook, "insert_book")
}

func (repository *PostgresRepository) UpsertAuthor(ctx context.Context, name string) (int64, error) {
	query := UpsertAuthor(name)

	var authorID int64
	if err := repository.db.QueryRow(ctx, query.SQL, query.Args...).Scan(&authorID); err != nil {
		return 0, dberr.Wrap(err, resourceAuthor, "upsert_author")
	}
	return authorID, nil
}

func (repository *PostgresRepository) LinkAuthor(ctx context.Context, isbn, authorID int64) error {
	query := LinkAuthor(isbn, authorID)

	_, err := repository.db.Exec(ctx, query.SQL, query.Args...)
	return dberr.Wrap(err, resourceAuthor, "link_author")
}

func (repository *PostgresRepository) UpdateRatings(ctx context.Context, isbn int64, ratings Ratings) (bool, error) {
	query := UpdateRatings(isbn, ratings)

	cmd, err := repository.db.Exec(ctx, query.SQL, query.Args...)
	if err != nil {
		return false, dberr.Wrap(err, resourceBook, "update_ratings")
	}
	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) DeleteByISBN(ctx context.Context, isbn int64) ([]Book, error) {
	return repository.view(ctx, DeleteByISBN(isbn), "delete_book_by_isbn")
}

func (repository *PostgresRepository) DeleteByTitle(ctx context.Context, title string) ([]Book, error) {
	return repository.view(ctx, DeleteByTitle(title), "delete_books_by_title")
}

func (repository *PostgresRepository) DeleteByAuthor(ctx context.Context, name string) ([]Book, error) {
	return repository.view(ctx, DeleteByAuthor(name), "delete_books_by_author")
}

// # Transactions

func (repository *PostgresRepository) WithinTx(ctx context.Context, fn func(tx Repository) error) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		return fn(&PostgresRepository{db: tx})
	})
	return dberr.Wrap(err, resourceBook, "catalog_tx")
}

// # Helpers

// view runs a query returning aggregate view rows.
func (repository *PostgresRepository) view(ctx context.Context, query Query, action string) ([]Book, error) {
	rows, err := repository.db.Query(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, action)
	}

	result, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, action)
	}
	return result, nil
}

// scanBook reads one row in the column order produced by viewSQL.
func scanBook(row pgx.CollectableRow) (Book, error) {
	var book Book
	err := row.Scan(
		&book.ISBN13,
		&book.Authors,
		&book.Publication,
		&book.OriginalTitle,
		&book.Title,
		&book.Ratings.Average,
		&book.Ratings.Count,
		&book.Ratings.Rating1,
		&book.Ratings.Rating2,
		&book.Ratings.Rating3,
		&book.Ratings.Rating4,
		&book.Ratings.Rating5,
		&book.Icons.Large,
		&book.Icons.Small,
	)
	return book, err
}
