package facility

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{missingField("aggregator", FieldBedsCount), errorslib.CategoryValidation, "missing_field"},
		{NewError(KindValidation, "bad row", nil), errorslib.CategoryValidation, "validation"},
		{NewError(KindProfile, "bad profile", nil), errorslib.CategoryValidation, "profile"},
		{NewError(KindLoad, "open input", fs.ErrNotExist), errorslib.CategoryNotFound, "not_found"},
		{NewError(KindLoad, "read row", errors.New("bare quote")), errorslib.CategoryOperation, "load"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{errors.New("boom"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("%v: expected category %s, got %s", tc.err, tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("%v: expected text code %s, got %s", tc.err, tc.code, mapped.TextCode)
		}
	}
	if AsGoError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestMissingFieldMessage(t *testing.T) {
	err := fmt.Errorf("run: %w", missingField("category mapper", FieldType))

	want := `run: category mapper: field "type": missing required field`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if KindOf(err) != KindMissingField {
		t.Errorf("KindOf = %q", KindOf(err))
	}
}
