package http

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidatorUsesJSONNames(t *testing.T) {
	type P struct {
		Email    string `json:"email" validate:"required,email"`
		College  string `json:"collegeDept" validate:"required"`
		Password string `json:"-" validate:"required"`
		Raw      string `validate:"required"`
	}
	err := NewValidator().Validate(P{Email: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fe := ToFieldErrors(err)
	got := fieldNames(fe)
	want := []string{"email", "collegeDept", "Password", "Raw"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("field names = %v, want %v", got, want)
	}
	if !strings.Contains(fe[0].Message, "email") {
		t.Fatalf("email message = %q", fe[0].Message)
	}
}

func TestSemesterValidation(t *testing.T) {
	type P struct {
		Semester string `json:"semester" validate:"semester"`
	}
	cv := NewValidator()
	for _, s := range []string{"2026-1", "1999-2"} {
		if err := cv.Validate(P{Semester: s}); err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}
	}
	for _, s := range []string{"", "2026-3", "26-1", "2026-1x"} {
		err := cv.Validate(P{Semester: s})
		if err == nil {
			t.Fatalf("%q: expected error", s)
		}
		if fe := ToFieldErrors(err); fe[0].Field != "semester" || !strings.Contains(fe[0].Message, "YYYY-1") {
			t.Fatalf("%q: got %+v", s, fe)
		}
	}
}

func TestToFieldErrorsNonValidator(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if !reflect.DeepEqual(fe, []FieldError{{Field: "_", Message: "boom"}}) {
		t.Fatalf("got %+v", fe)
	}
}

func TestFieldNamesDedup(t *testing.T) {
	got := fieldNames([]FieldError{{Field: "a"}, {Field: "b"}, {Field: "a"}})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}
