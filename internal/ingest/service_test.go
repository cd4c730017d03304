package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"booklibrary/internal/book"
	"booklibrary/internal/platform/openlibrary"
)

type mockOLClient struct {
	mock.Mock
}

func (m *mockOLClient) Edition(ctx context.Context, isbn13 string) (*openlibrary.Edition, error) {
	args := m.Called(ctx, isbn13)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.Edition), args.Error(1)
}

func (m *mockOLClient) Author(ctx context.Context, authorKey string) (*openlibrary.Author, error) {
	args := m.Called(ctx, authorKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.Author), args.Error(1)
}

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) Create(ctx context.Context, in book.Input) (book.Confirmation, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(book.Confirmation), args.Error(1)
}

func thirteenEdition() *openlibrary.Edition {
	return &openlibrary.Edition{
		Title:   "Thirteen",
		Authors: []openlibrary.KeyRef{{Key: "/authors/OL1A"}},
	}
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("maps edition and authors", func(t *testing.T) {
		ol := new(mockOLClient)
		s := NewService(ol, new(mockCreator), Config{DefaultLanguage: "en"})

		ol.On("Edition", ctx, "9783442492152").Return(thirteenEdition(), nil)
		ol.On("Author", ctx, "/authors/OL1A").Return(&openlibrary.Author{Name: "Steve Cavanagh"}, nil)

		in, err := s.Resolve(ctx, "978-3-442-49215-2")
		require.NoError(t, err)
		assert.Equal(t, book.Input{Author: "Steve Cavanagh", Title: "Thirteen", Lang: "en", ISBN: "978-3-442-49215-2"}, in)
		ol.AssertExpectations(t)
	})

	t.Run("invalid isbn never reaches the api", func(t *testing.T) {
		ol := new(mockOLClient)
		s := NewService(ol, new(mockCreator), Config{})

		_, err := s.Resolve(ctx, "9783453435774")
		assert.ErrorIs(t, err, errRejected)
		ol.AssertNotCalled(t, "Edition", mock.Anything, mock.Anything)
	})
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("records each outcome", func(t *testing.T) {
		ol := new(mockOLClient)
		creator := new(mockCreator)
		s := NewService(ol, creator, Config{DefaultLanguage: "de"})

		ol.On("Edition", ctx, "9783442492152").Return(thirteenEdition(), nil)
		ol.On("Edition", ctx, "9780306406157").Return(nil, openlibrary.ErrNotFound)
		ol.On("Edition", ctx, "9783453435773").Return(&openlibrary.Edition{Title: "No Authors"}, nil)
		ol.On("Author", ctx, "/authors/OL1A").Return(&openlibrary.Author{Name: "Steve Cavanagh"}, nil)

		want := book.Input{Author: "Steve Cavanagh", Title: "Thirteen", Lang: "de", ISBN: "9783442492152"}
		creator.On("Create", ctx, want).Return(book.Confirmation{DocID: "doc-1", DocRev: "1-abc"}, nil).Once()
		creator.On("Create", ctx, want).Return(book.Confirmation{}, book.ErrDuplicateISBN).Once()

		calls := 0
		run, err := s.Import(ctx, []string{"9783442492152", "9783442492152", "9780306406157", "9783453435773", "123"}, func() { calls++ })
		require.NoError(t, err)

		assert.Equal(t, 5, calls)
		assert.Equal(t, 5, run.Requested)
		assert.Equal(t, 1, run.Created)
		assert.Equal(t, 1, run.Duplicates)
		assert.Equal(t, 1, run.NotFound)
		assert.Equal(t, 2, run.Invalid)
		assert.Equal(t, "doc-1", run.Results[0].DocID)
		assert.Equal(t, "author is required", run.Results[3].Reason)
		creator.AssertExpectations(t)
	})

	t.Run("store failure stops the run", func(t *testing.T) {
		ol := new(mockOLClient)
		creator := new(mockCreator)
		s := NewService(ol, creator, Config{DefaultLanguage: "de"})

		ol.On("Edition", ctx, "9783442492152").Return(thirteenEdition(), nil)
		ol.On("Author", ctx, "/authors/OL1A").Return(&openlibrary.Author{Name: "Steve Cavanagh"}, nil)
		creator.On("Create", ctx, mock.Anything).Return(book.Confirmation{}, book.ErrStoreUnavailable)

		run, err := s.Import(ctx, []string{"9783442492152", "9780306406157"}, nil)
		assert.ErrorIs(t, err, book.ErrStoreUnavailable)
		assert.Empty(t, run.Results)
		ol.AssertNotCalled(t, "Edition", ctx, "9780306406157")
	})

	t.Run("api error stops the run", func(t *testing.T) {
		ol := new(mockOLClient)
		s := NewService(ol, new(mockCreator), Config{})

		ol.On("Edition", ctx, "9783442492152").Return(nil, errors.New("after 2 retries: unexpected status code: 503"))

		_, err := s.Import(ctx, []string{"9783442492152"}, nil)
		assert.ErrorContains(t, err, "503")
	})
}
