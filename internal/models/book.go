package models

import "fmt"

// Book is a catalog record as returned by the remote store.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publicationYear"`
	Genre           string `json:"genre"`
}

// Draft is the create payload. The store assigns the id.
type Draft struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publicationYear"`
	Genre           string `json:"genre"`
}

// Book turns a draft into a record with the given id.
func (d Draft) Book(id string) Book {
	return Book{
		ID:              id,
		Title:           d.Title,
		Author:          d.Author,
		PublicationYear: d.PublicationYear,
		Genre:           d.Genre,
	}
}

// String is used by the CLI listing.
func (b Book) String() string {
	return fmt.Sprintf("📚 %s (%d)\n   Author: %s\n   Genre: %s\n   ID: %s\n", b.Title, b.PublicationYear, b.Author, b.Genre, b.ID)
}
