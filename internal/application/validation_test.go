package application

import (
	"errors"
	"fmt"
	"testing"

	"bookmarked/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "Go Docs",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "title",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "https", value: "https://go.dev/doc", wantErr: false},
		{name: "file", value: "file:///home/me/notes.txt", wantErr: false},
		{name: "mailto", value: "mailto:me@example.com", wantErr: false},
		{name: "missing scheme", value: "go.dev", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL("url", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	addr, err := ValidateAddress("to", "/1/4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !addr.Equal(domain.Address{1, 4}) {
		t.Errorf("got %v", addr)
	}

	_, err = ValidateAddress("to", "/x")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Message != `invalid destination address: "/x"` {
		t.Errorf("unexpected message %q", valErr.Message)
	}

	if err := ValidateNotRoot("address", domain.RootAddress()); err == nil {
		t.Error("expected root to be rejected")
	}
}

func TestIsStaleReference(t *testing.T) {
	doc := domain.NewDocument()
	_, err := doc.Resolve(domain.Address{4})

	wrapped := &CommandError{Command: "delete", Address: domain.Address{4}, Err: err}
	if !IsStaleReference(wrapped) {
		t.Errorf("expected %v to be a stale reference", wrapped)
	}
	if IsStaleReference(fmt.Errorf("disk full")) {
		t.Error("unrelated errors are not stale references")
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Title string `json:"title" validate:"required"`
		URL   string `json:"url" validate:"omitempty,url"`
		Kind  string `json:"kind" validate:"omitempty,oneof=folder bookmark separator"`
	}

	if err := ValidateStruct(request{Title: "Go", URL: "https://go.dev"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(request{Title: "Go", URL: "not a url"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Field != "url" {
		t.Errorf("expected field url, got %s", valErr.Field)
	}

	err = ValidateStruct(request{Kind: "folder"})
	if !errors.As(err, &valErr) || valErr.Field != "title" {
		t.Errorf("expected title to be required, got %v", err)
	}
}
