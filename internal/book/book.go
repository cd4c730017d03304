package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when no book matches an ISBN.
	ErrNotFound         = errors.New("book not found")
	ErrInvalidISBN      = errors.New("invalid ISBN")
	ErrDuplicateISBN    = errors.New("book already present in library database")
	ErrStoreUnavailable = errors.New("connection error, database couldn't be reached")
)

// Book is a stored catalog record. ID and Rev are assigned by the store.
type Book struct {
	ID       string `json:"_id,omitempty"`
	Rev      string `json:"_rev,omitempty"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	Language string `json:"lang"`
	ISBN     string `json:"isbn"`
}

// Input is the create payload.
type Input struct {
	Author string `json:"author" yaml:"author" validate:"required,max=200"`
	Title  string `json:"title" yaml:"title" validate:"required,max=300"`
	Lang   string `json:"lang" yaml:"lang" validate:"required,max=35"`
	ISBN   string `json:"isbn" yaml:"isbn" validate:"required,isbn13"`
}

func (in Input) Book() Book {
	return Book{
		Author:   in.Author,
		Title:    in.Title,
		Language: in.Lang,
		ISBN:     in.ISBN,
	}
}

// Summary is the listing view of a book.
type Summary struct {
	Author   string `json:"AUTHOR"`
	Title    string `json:"TITLE"`
	Language string `json:"LANGUAGE"`
	ISBN     string `json:"ISBN"`
}

func (b Book) Summary() Summary {
	return Summary{Author: b.Author, Title: b.Title, Language: b.Language, ISBN: b.ISBN}
}

// Confirmation carries the identity and revision the store assigned on save.
type Confirmation struct {
	DocID  string `json:"doc_id"`
	DocRev string `json:"doc_rev"`
}

// AuditReport lists catalog entries that break the ISBN rules.
type AuditReport struct {
	Scanned     int                 `json:"scanned" yaml:"scanned"`
	Duplicates  map[string][]string `json:"duplicates" yaml:"duplicates"`
	InvalidISBN map[string]string   `json:"invalid_isbn" yaml:"invalid_isbn"`
}

func (r AuditReport) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.InvalidISBN) == 0
}
