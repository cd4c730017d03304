package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"booklibrary/internal/book"
	"booklibrary/internal/httpx"
	"booklibrary/internal/isbn"
	"booklibrary/internal/platform/openlibrary"
)

type Config struct {
	// used when an edition lists no language
	DefaultLanguage string
}

type Service struct {
	ol      OpenLibraryClient
	creator Creator
	cfg     Config
}

func NewService(ol OpenLibraryClient, creator Creator, cfg Config) *Service {
	return &Service{ol: ol, creator: creator, cfg: cfg}
}

// errRejected marks inputs the catalog rules refuse; the run continues past them.
var errRejected = errors.New("rejected")

// Resolve builds a create request for isbnValue from Open Library metadata.
func (s *Service) Resolve(ctx context.Context, isbnValue string) (book.Input, error) {
	if err := isbn.Check(isbnValue); err != nil {
		return book.Input{}, fmt.Errorf("%w: %v", errRejected, err)
	}

	ed, err := s.ol.Edition(ctx, isbn.Normalize(isbnValue))
	if err != nil {
		return book.Input{}, err
	}

	names := make([]string, 0, len(ed.Authors))
	for _, key := range ed.AuthorKeys() {
		a, err := s.ol.Author(ctx, key)
		if err != nil {
			return book.Input{}, fmt.Errorf("author %s: %w", key, err)
		}
		if a.Name != "" {
			names = append(names, a.Name)
		} else if a.PersonalName != "" {
			names = append(names, a.PersonalName)
		}
	}

	lang := ed.LanguageCode()
	if lang == "" {
		lang = s.cfg.DefaultLanguage
	}

	return book.Input{
		Author: strings.Join(names, "; "),
		Title:  ed.Title,
		Lang:   lang,
		ISBN:   isbnValue,
	}, nil
}

// Import resolves and creates each ISBN in order. Per-ISBN rejections are recorded in
// the run; store failures and unexpected API errors stop it. progress, if set, is
// called once per ISBN.
func (s *Service) Import(ctx context.Context, isbns []string, progress func()) (Run, error) {
	run := Run{Requested: len(isbns)}
	for _, value := range isbns {
		res, err := s.importOne(ctx, value)
		if progress != nil {
			progress()
		}
		if err != nil {
			return run, fmt.Errorf("import %s: %w", value, err)
		}
		run.add(res)
	}
	slog.Info("import finished",
		"requested", run.Requested,
		"created", run.Created,
		"duplicates", run.Duplicates,
		"not_found", run.NotFound,
		"invalid", run.Invalid,
	)
	return run, nil
}

func (s *Service) importOne(ctx context.Context, value string) (Result, error) {
	res := Result{ISBN: value}

	in, err := s.Resolve(ctx, value)
	switch {
	case err == nil:
	case errors.Is(err, errRejected):
		res.Status, res.Reason = StatusInvalid, err.Error()
		return res, nil
	case errors.Is(err, openlibrary.ErrNotFound):
		res.Status = StatusNotFound
		return res, nil
	default:
		return res, err
	}

	if errs := httpx.ValidateStruct(in); len(errs) > 0 {
		res.Status, res.Reason = StatusInvalid, errs[0].Message
		return res, nil
	}

	conf, err := s.creator.Create(ctx, in)
	switch {
	case err == nil:
		res.Status, res.DocID = StatusCreated, conf.DocID
	case errors.Is(err, book.ErrDuplicateISBN):
		res.Status = StatusDuplicate
	case errors.Is(err, book.ErrInvalidISBN):
		res.Status, res.Reason = StatusInvalid, err.Error()
	default:
		return res, err
	}
	return res, nil
}
