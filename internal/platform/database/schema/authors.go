package schema

// AuthorsTable represents the 'authors' table
type AuthorsTable struct {
	Table string
	ID    string
	Name  string
}

// Authors is the schema definition for authors
var Authors = AuthorsTable{
	Table: "authors",
	ID:    "author_id",
	Name:  "author_name",
}
