package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"booklibrary/internal/httpx"
)

const (
	msgInvalidISBN      = "Invalid ISBN!"
	msgDuplicate        = "Book already present in library database"
	msgEmptyListing     = "The book listing is empty"
	msgStoreUnavailable = "Connection Error, Database couldnt be reached"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// GetAll handles GET /api/v1/getall
// @Summary List books
// @Description Get every book in the catalog keyed by its position
// @Tags books
// @Produce json
// @Success 200 {object} map[string]Summary
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/v1/getall [get]
func (h *HTTPHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListAll(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if len(summaries) == 0 {
		httpx.JSONInfo(w, http.StatusOK, msgEmptyListing)
		return
	}
	httpx.JSON(w, http.StatusOK, indexedListing{prefix: "", items: summaries})
}

// GetByISBN handles GET /api/v1/get_isbn?isbn=
// @Summary Get book by ISBN
// @Description Look up a single book by its ISBN-13
// @Tags books
// @Produce json
// @Param isbn query string true "Book ISBN-13"
// @Success 200 {object} map[string]Summary
// @Success 202 {object} httpx.InfoResponse
// @Failure 400 {object} httpx.DetailResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/v1/get_isbn [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	if !h.service.Available() {
		h.serverError(w, r, ErrStoreUnavailable)
		return
	}
	isbnValue := r.URL.Query().Get("isbn")

	b, err := h.service.Lookup(r.Context(), isbnValue)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, indexedListing{prefix: "Book ", items: []Summary{b.Summary()}})
	case errors.Is(err, ErrInvalidISBN):
		httpx.JSONDetail(w, http.StatusBadRequest, msgInvalidISBN)
	case errors.Is(err, ErrNotFound):
		httpx.JSONInfo(w, http.StatusAccepted,
			fmt.Sprintf("The book with the isbn number %s is not in our book listing", isbnValue))
	default:
		h.serverError(w, r, err)
	}
}

// Create handles PUT /api/v1/create
// @Summary Create a book
// @Description Save a new book unless its ISBN is invalid or already present
// @Tags books
// @Accept json
// @Produce json
// @Param book body Input true "Book to create"
// @Success 200 {object} map[string]Confirmation
// @Failure 400 {object} httpx.DetailResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/v1/create [put]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.service.Available() {
		h.serverError(w, r, ErrStoreUnavailable)
		return
	}

	var in Input
	if err := httpx.DecodeJSON(r.Body, &in); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.JSONDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		httpx.JSONDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := httpx.ValidateStruct(in); len(errs) > 0 {
		for _, e := range errs {
			if e.Field == "isbn" {
				httpx.JSONDetail(w, http.StatusBadRequest, msgInvalidISBN)
				return
			}
		}
		httpx.JSONDetail(w, http.StatusBadRequest, errs[0].Message)
		return
	}

	conf, err := h.service.Create(r.Context(), in)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, map[string]Confirmation{"SUCCESS": conf})
	case errors.Is(err, ErrInvalidISBN):
		httpx.JSONDetail(w, http.StatusBadRequest, msgInvalidISBN)
	case errors.Is(err, ErrDuplicateISBN):
		httpx.JSONDetail(w, http.StatusBadRequest, msgDuplicate)
	default:
		h.serverError(w, r, err)
	}
}

func (h *HTTPHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStoreUnavailable) {
		httpx.JSONError(w, r, http.StatusInternalServerError, msgStoreUnavailable)
		return
	}
	httpx.JSONError(w, r, http.StatusInternalServerError, "Internal server error")
}

// indexedListing renders items as an object keyed "<prefix><index>:" in slice order.
type indexedListing struct {
	prefix string
	items  []Summary
}

func (l indexedListing) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range l.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.prefix + strconv.Itoa(i) + ":")
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
