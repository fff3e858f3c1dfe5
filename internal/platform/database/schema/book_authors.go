package schema

// BookAuthorsTable represents the 'book_authors' junction table
type BookAuthorsTable struct {
	Table    string
	ISBN13   string
	AuthorID string
}

// BookAuthors is the schema definition for book_authors
var BookAuthors = BookAuthorsTable{
	Table:    "book_authors",
	ISBN13:   "isbn13",
	AuthorID: "author_id",
}
