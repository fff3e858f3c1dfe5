package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table           string
	ISBN13          string
	Title           string
	OriginalTitle   string
	PublicationYear string
	RatingAvg       string
	RatingCount     string
	Rating1         string
	Rating2         string
	Rating3         string
	Rating4         string
	Rating5         string
	ImageURL        string
	ImageSmallURL   string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:           "books",
	ISBN13:          "isbn13",
	Title:           "title",
	OriginalTitle:   "original_title",
	PublicationYear: "publication_year",
	RatingAvg:       "rating_avg",
	RatingCount:     "rating_count",
	Rating1:         "rating_1_star",
	Rating2:         "rating_2_star",
	Rating3:         "rating_3_star",
	Rating4:         "rating_4_star",
	Rating5:         "rating_5_star",
	ImageURL:        "image_url",
	ImageSmallURL:   "image_small_url",
}

// Columns lists every column in view order.
func (t BooksTable) Columns() []string {
	return []string{
		t.ISBN13, t.Title, t.OriginalTitle, t.PublicationYear,
		t.RatingAvg, t.RatingCount, t.Rating1, t.Rating2, t.Rating3, t.Rating4, t.Rating5,
		t.ImageURL, t.ImageSmallURL,
	}
}

// RatingColumns lists the seven aggregate columns replaced by a rating update.
func (t BooksTable) RatingColumns() []string {
	return []string{t.RatingAvg, t.RatingCount, t.Rating1, t.Rating2, t.Rating3, t.Rating4, t.Rating5}
}
