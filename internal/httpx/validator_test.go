package httpx

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testBook struct {
	Author string `json:"author" validate:"required,max=20"`
	Lang   string `json:"lang" validate:"required,alpha,min=2,max=3"`
	ISBN   string `json:"isbn" validate:"required,isbn13"`
}

func TestValidateStruct_ValidInput(t *testing.T) {
	s := testBook{Author: "Cavanagh, Steve", Lang: "de", ISBN: "978-3-442-49215-2"}

	if errs := ValidateStruct(s); len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
}

func TestValidateStruct_RequiredFieldsUseJSONNames(t *testing.T) {
	errs := ValidateStruct(testBook{})
	if len(errs) != 3 {
		t.Fatalf("Expected 3 validation errors, got %v", errs)
	}

	seen := map[string]bool{}
	for _, err := range errs {
		if err.Tag != "required" || !strings.Contains(err.Message, "required") {
			t.Errorf("Expected required error, got %+v", err)
		}
		seen[err.Field] = true
	}
	for _, field := range []string{"author", "lang", "isbn"} {
		if !seen[field] {
			t.Errorf("Expected %s required error", field)
		}
	}
}

func TestValidateStruct_ISBN13(t *testing.T) {
	testCases := []struct {
		isbn  string
		valid bool
	}{
		{"9783442492152", true},
		{"978-3-442-49215-2", true},
		{"978 0 306 40615 7", true},
		{"9783453435774", false},
		{"97834424921X2", false},
		{"0306406152", false},
		{"12345", false},
	}

	for _, tc := range testCases {
		errs := ValidateStruct(testBook{Author: "A", Lang: "en", ISBN: tc.isbn})
		hasISBNError := false
		for _, err := range errs {
			if err.Field == "isbn" {
				hasISBNError = true
				break
			}
		}

		if tc.valid && hasISBNError {
			t.Errorf("ISBN %s should be valid but got error: %v", tc.isbn, errs)
		}
		if !tc.valid && !hasISBNError {
			t.Errorf("ISBN %s should be invalid but no error. All errors: %v", tc.isbn, errs)
		}
	}
}

func TestValidateStruct_Lengths(t *testing.T) {
	errs := ValidateStruct(testBook{Author: strings.Repeat("a", 21), Lang: "d", ISBN: "9783442492152"})

	messages := map[string]string{}
	for _, err := range errs {
		messages[err.Field] = err.Message
	}
	if messages["author"] != "author must be at most 20 characters" {
		t.Errorf("Unexpected author message %q", messages["author"])
	}
	if messages["lang"] != "lang must be at least 2 characters" {
		t.Errorf("Unexpected lang message %q", messages["lang"])
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst testBook

	if err := DecodeJSON(strings.NewReader(`{"author":"A","lang":"en","isbn":"x"}`), &dst); err != nil {
		t.Fatalf("Expected decode to succeed, got %v", err)
	}
	if dst.Author != "A" || dst.ISBN != "x" {
		t.Errorf("Unexpected decoded value %+v", dst)
	}

	testCases := map[string]string{
		"":                  "request body is empty",
		"{":                 "not valid JSON",
		`{"author":"A"} {}`: "single JSON object",
		`{"author":1}`:      "not valid JSON",
	}
	for body, want := range testCases {
		err := DecodeJSON(strings.NewReader(body), &testBook{})
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("DecodeJSON(%q) = %v, want error containing %q", body, err, want)
		}
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(`{"author":"`+strings.Repeat("a", 64)+`"}`)), 16)

	err := DecodeJSON(body, &testBook{})
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("Expected ErrBodyTooLarge, got %v", err)
	}
}
