// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

// memRepo is an in-memory catalog.Repository with the same view semantics as
// the SQL: books without links are invisible, authors are sorted and joined.
type memRepo struct {
	mu       sync.Mutex
	books    map[int64]catalog.Book
	authors  map[string]int64
	links    map[int64]map[int64]struct{}
	nextID   int64
	failLink map[string]bool

	// dupView makes FindByISBN return the row twice.
	dupView bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		books:    make(map[int64]catalog.Book),
		authors:  make(map[string]int64),
		links:    make(map[int64]map[int64]struct{}),
		failLink: make(map[string]bool),
	}
}

func (repo *memRepo) authorCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.authors)
}

func (repo *memRepo) linkCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	total := 0
	for _, set := range repo.links {
		total += len(set)
	}
	return total
}

func (repo *memRepo) nameOf(id int64) string {
	for name, candidate := range repo.authors {
		if candidate == id {
			return name
		}
	}
	return ""
}

// viewLocked renders a book the way the aggregate view does.
func (repo *memRepo) viewLocked(isbn int64) (catalog.Book, bool) {
	book, ok := repo.books[isbn]
	if !ok || len(repo.links[isbn]) == 0 {
		return catalog.Book{}, false
	}

	var names []string
	for id := range repo.links[isbn] {
		names = append(names, repo.nameOf(id))
	}
	slices.Sort(names)
	book.Authors = strings.Join(names, ", ")
	return book, true
}

func (repo *memRepo) selectLocked(match func(isbn int64, book catalog.Book) bool) []catalog.Book {
	var isbns []int64
	for isbn := range repo.books {
		isbns = append(isbns, isbn)
	}
	slices.Sort(isbns)

	var result []catalog.Book
	for _, isbn := range isbns {
		view, ok := repo.viewLocked(isbn)
		if ok && match(isbn, view) {
			result = append(result, view)
		}
	}
	return result
}

func (repo *memRepo) linkedTo(name string) func(int64, catalog.Book) bool {
	return func(isbn int64, _ catalog.Book) bool {
		id, ok := repo.authors[name]
		if !ok {
			return false
		}
		_, linked := repo.links[isbn][id]
		return linked
	}
}

func (repo *memRepo) FindByISBN(_ context.Context, isbn int64) ([]catalog.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	rows := repo.selectLocked(func(candidate int64, _ catalog.Book) bool { return candidate == isbn })
	if repo.dupView && len(rows) == 1 {
		rows = append(rows, rows[0])
	}
	return rows, nil
}

func (repo *memRepo) FindByTitle(_ context.Context, title string) ([]catalog.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.selectLocked(func(_ int64, book catalog.Book) bool { return book.Title == title }), nil
}

func (repo *memRepo) FindByAuthor(_ context.Context, name string) ([]catalog.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.selectLocked(repo.linkedTo(name)), nil
}

func (repo *memRepo) FindByRating(_ context.Context, rng catalog.RatingRange) ([]catalog.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	rows := repo.selectLocked(func(_ int64, book catalog.Book) bool {
		return book.Ratings.Average >= rng.Min && book.Ratings.Average <= rng.Max
	})
	slices.SortStableFunc(rows, func(a, b catalog.Book) int {
		if a.Ratings.Average == b.Ratings.Average {
			return 0
		}
		less := a.Ratings.Average < b.Ratings.Average
		if rng.Order == catalog.OrderMaxFirst {
			less = !less
		}
		if less {
			return -1
		}
		return 1
	})
	return rows, nil
}

func (repo *memRepo) ListPage(_ context.Context, limit, offset int) ([]catalog.Book, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	rows := repo.selectLocked(func(int64, catalog.Book) bool { return true })
	if offset >= len(rows) {
		return nil, nil
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end], nil
}

func (repo *memRepo) CountBooks(context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.books), nil
}

func (repo *memRepo) InsertBook(_ context.Context, book *catalog.Book) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, exists := repo.books[book.ISBN13]; exists {
		return apperr.Conflict("Book already exists")
	}
	stored := *book
	stored.Authors = ""
	repo.books[book.ISBN13] = stored
	return nil
}

func (repo *memRepo) UpsertAuthor(_ context.Context, name string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if id, ok := repo.authors[name]; ok {
		return id, nil
	}
	repo.nextID++
	repo.authors[name] = repo.nextID
	return repo.nextID, nil
}

func (repo *memRepo) LinkAuthor(_ context.Context, isbn, authorID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failLink[repo.nameOf(authorID)] {
		return apperr.Internal(nil)
	}
	if repo.links[isbn] == nil {
		repo.links[isbn] = make(map[int64]struct{})
	}
	repo.links[isbn][authorID] = struct{}{}
	return nil
}

func (repo *memRepo) UpdateRatings(_ context.Context, isbn int64, ratings catalog.Ratings) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	book, ok := repo.books[isbn]
	if !ok {
		return false, nil
	}
	book.Ratings = ratings
	repo.books[isbn] = book
	return true, nil
}

func (repo *memRepo) deleteWhere(match func(int64, catalog.Book) bool) []catalog.Book {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	removed := repo.selectLocked(match)
	for _, book := range removed {
		delete(repo.books, book.ISBN13)
		delete(repo.links, book.ISBN13)
	}
	return removed
}

func (repo *memRepo) DeleteByISBN(_ context.Context, isbn int64) ([]catalog.Book, error) {
	return repo.deleteWhere(func(candidate int64, _ catalog.Book) bool { return candidate == isbn }), nil
}

func (repo *memRepo) DeleteByTitle(_ context.Context, title string) ([]catalog.Book, error) {
	return repo.deleteWhere(func(_ int64, book catalog.Book) bool { return book.Title == title }), nil
}

func (repo *memRepo) DeleteByAuthor(_ context.Context, name string) ([]catalog.Book, error) {
	// linkedTo reads repo maps; deleteWhere holds the lock while it runs.
	return repo.deleteWhere(repo.linkedTo(name)), nil
}

// WithinTx snapshots the maps and restores them when fn fails.
func (repo *memRepo) WithinTx(ctx context.Context, fn func(tx catalog.Repository) error) error {
	repo.mu.Lock()
	books := cloneMap(repo.books)
	authors := cloneMap(repo.authors)
	links := make(map[int64]map[int64]struct{}, len(repo.links))
	for isbn, set := range repo.links {
		links[isbn] = cloneMap(set)
	}
	nextID := repo.nextID
	repo.mu.Unlock()

	if err := fn(repo); err != nil {
		repo.mu.Lock()
		repo.books, repo.authors, repo.links, repo.nextID = books, authors, links, nextID
		repo.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
