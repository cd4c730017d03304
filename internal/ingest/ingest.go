// Package ingest imports books by ISBN from Open Library through the creation workflow.
package ingest

import (
	"context"

	"booklibrary/internal/book"
	"booklibrary/internal/platform/openlibrary"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusDuplicate Status = "duplicate"
	StatusNotFound  Status = "not_found"
	StatusInvalid   Status = "invalid"
)

// Result is the outcome for one requested ISBN.
type Result struct {
	ISBN   string `yaml:"isbn"`
	Status Status `yaml:"status"`
	DocID  string `yaml:"doc_id,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// Run summarizes one import invocation.
type Run struct {
	Requested  int      `yaml:"requested"`
	Created    int      `yaml:"created"`
	Duplicates int      `yaml:"duplicates"`
	NotFound   int      `yaml:"not_found"`
	Invalid    int      `yaml:"invalid"`
	Results    []Result `yaml:"results"`
}

func (r *Run) add(res Result) {
	switch res.Status {
	case StatusCreated:
		r.Created++
	case StatusDuplicate:
		r.Duplicates++
	case StatusNotFound:
		r.NotFound++
	case StatusInvalid:
		r.Invalid++
	}
	r.Results = append(r.Results, res)
}

type OpenLibraryClient interface {
	Edition(ctx context.Context, isbn13 string) (*openlibrary.Edition, error)
	Author(ctx context.Context, authorKey string) (*openlibrary.Author, error)
}

// Creator is the book creation workflow.
type Creator interface {
	Create(ctx context.Context, in book.Input) (book.Confirmation, error)
}
