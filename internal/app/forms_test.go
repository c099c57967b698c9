package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studentbook/internal/domain"
)

func fieldsOf(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	return fieldErrs
}

func TestRegistrationForm_Boundaries(t *testing.T) {
	noUsers := &mockUserRepo{}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  string // failing field, empty for valid
	}{
		{"username length 3 rejected", "abc", "secret", "username"},
		{"username length 4 accepted", "abcd", "secret", ""},
		{"username length 20 accepted", strings.Repeat("u", 20), "secret", ""},
		{"username length 21 rejected", strings.Repeat("u", 21), "secret", "username"},
		{"username 3 runes multibyte rejected", "日本語", "secret", "username"},
		{"username 4 runes multibyte accepted", "日本語学", "secret", ""},
		{"password length 5 rejected", "alice", "12345", "password"},
		{"password length 6 accepted", "alice", "123456", ""},
		{"empty username rejected", "", "secret", "username"},
		{"empty password rejected", "alice", "", "password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := &RegistrationForm{
				Username:        tc.username,
				Password:        tc.password,
				ConfirmPassword: tc.password,
			}
			err := form.Validate(context.Background(), noUsers)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid form, got %v", err)
				}
				return
			}
			if _, ok := fieldsOf(t, err)[tc.wantErr]; !ok {
				t.Errorf("expected error on %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegistrationForm_ConfirmMismatch(t *testing.T) {
	form := &RegistrationForm{
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	}
	err := form.Validate(context.Background(), &mockUserRepo{})
	if _, ok := fieldsOf(t, err)["confirmPassword"]; !ok {
		t.Errorf("expected confirmPassword error, got %v", err)
	}
}

func TestRegistrationForm_CollectsAllErrors(t *testing.T) {
	form := &RegistrationForm{
		Username:        "abc",
		Password:        "12345",
		ConfirmPassword: "123456",
	}
	fieldErrs := fieldsOf(t, form.Validate(context.Background(), &mockUserRepo{}))
	for _, f := range []string{"username", "password", "confirmPassword"} {
		if _, ok := fieldErrs[f]; !ok {
			t.Errorf("expected error on %q, got only %v", f, fieldErrs)
		}
	}
}

// Username uniqueness is a read against the user store, so validating a
// registration form is not a pure function of its fields.
func TestRegistrationForm_UniquenessReadsStore(t *testing.T) {
	queried := ""
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			queried = username
			return &domain.User{ID: 1, Username: username}, nil
		},
	}

	form := &RegistrationForm{Username: "alice", Password: "secret123", ConfirmPassword: "secret123"}
	err := form.Validate(context.Background(), users)
	if queried != "alice" {
		t.Errorf("expected a uniqueness lookup for %q, got %q", "alice", queried)
	}
	if _, ok := fieldsOf(t, err)["username"]; !ok {
		t.Errorf("expected username taken error, got %v", err)
	}
}

func TestRegistrationForm_StoreFailure(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}
	form := &RegistrationForm{Username: "alice", Password: "secret123", ConfirmPassword: "secret123"}
	err := form.Validate(context.Background(), users)
	var fieldErrs FieldErrors
	if err == nil || errors.As(err, &fieldErrs) {
		t.Fatalf("store failure must not look like a validation failure, got %v", err)
	}
}

func TestLoginForm_RequiresBothFields(t *testing.T) {
	fieldErrs := fieldsOf(t, (&LoginForm{}).Validate())
	if len(fieldErrs) != 2 {
		t.Errorf("expected errors on both fields, got %v", fieldErrs)
	}

	if err := (&LoginForm{Username: "alice", Password: "x"}).Validate(); err != nil {
		t.Errorf("presence is the only login rule, got %v", err)
	}
}

func TestStudentForm_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		form    StudentForm
		wantErr string
	}{
		{"valid", StudentForm{Roll: 101, Name: "Alice", Dept: "CS"}, ""},
		{"zero roll", StudentForm{Roll: 0, Name: "Alice", Dept: "CS"}, "roll"},
		{"negative roll", StudentForm{Roll: -3, Name: "Alice", Dept: "CS"}, "roll"},
		{"name length 1", StudentForm{Roll: 1, Name: "A", Dept: "CS"}, "name"},
		{"name length 2", StudentForm{Roll: 1, Name: "Al", Dept: "CS"}, ""},
		{"name 2 runes multibyte accepted", StudentForm{Roll: 1, Name: "山田", Dept: "CS"}, ""},
		{"dept 1 rune multibyte rejected", StudentForm{Roll: 1, Name: "Alice", Dept: "工"}, "dept"},
		{"name length 100", StudentForm{Roll: 1, Name: strings.Repeat("n", 100), Dept: "CS"}, ""},
		{"name length 101", StudentForm{Roll: 1, Name: strings.Repeat("n", 101), Dept: "CS"}, "name"},
		{"dept length 1", StudentForm{Roll: 1, Name: "Alice", Dept: "C"}, "dept"},
		{"dept length 101", StudentForm{Roll: 1, Name: "Alice", Dept: strings.Repeat("d", 101)}, "dept"},
		{"missing name", StudentForm{Roll: 1, Dept: "CS"}, "name"},
		{"missing dept", StudentForm{Roll: 1, Name: "Alice"}, "dept"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid form, got %v", err)
				}
				return
			}
			if _, ok := fieldsOf(t, err)[tc.wantErr]; !ok {
				t.Errorf("expected error on %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"b": "bad", "a": "worse"}
	msg := err.Error()
	if !strings.Contains(msg, "a: worse") || !strings.Contains(msg, "b: bad") {
		t.Errorf("unexpected message: %q", msg)
	}
}
