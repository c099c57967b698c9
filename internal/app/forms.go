package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"studentbook/internal/domain"
)

// FieldErrors maps a form field name to the message describing why it failed
// validation. All failing fields are collected before the form is rejected so
// the caller can report every problem at once.
type FieldErrors map[string]string

// Error implements the error interface.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		fmt.Fprintf(&b, " %s: %s;", f, e[f])
	}
	return strings.TrimSuffix(b.String(), ";")
}

// RegistrationForm carries the fields submitted when creating an account.
type RegistrationForm struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the registration fields and the username's uniqueness.
// The uniqueness rule requires a read against the user repository, so this
// validation is not a pure function of the form.
func (f *RegistrationForm) Validate(ctx context.Context, users domain.UserRepository) error {
	errs := FieldErrors{}

	switch n := utf8.RuneCountInString(f.Username); {
	case n == 0:
		errs["username"] = "username is required"
	case n < 4 || n > 20:
		errs["username"] = "username must be between 4 and 20 characters"
	}

	switch n := utf8.RuneCountInString(f.Password); {
	case n == 0:
		errs["password"] = "password is required"
	case n < 6:
		errs["password"] = "password must be at least 6 characters"
	}

	if f.ConfirmPassword != f.Password {
		errs["confirmPassword"] = "passwords do not match"
	}

	if _, taken := errs["username"]; !taken {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			errs["username"] = "that username is already taken"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginForm carries the fields submitted at login. Only presence is checked
// here; whether the credentials are actually correct is the auth service's
// call, so a failed login never reveals which field was wrong.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Validate checks that both credential fields were submitted.
func (f *LoginForm) Validate() error {
	errs := FieldErrors{}
	if f.Username == "" {
		errs["username"] = "username is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StudentForm carries the fields submitted when adding or editing a student.
type StudentForm struct {
	Roll int64  `json:"roll"`
	Name string `json:"name"`
	Dept string `json:"dept"`
}

// Validate checks the student fields. Roll uniqueness is not checked here;
// the repository enforces it atomically on insert.
func (f *StudentForm) Validate() error {
	errs := FieldErrors{}

	if f.Roll <= 0 {
		errs["roll"] = "roll number must be a positive integer"
	}

	switch n := utf8.RuneCountInString(f.Name); {
	case n == 0:
		errs["name"] = "name is required"
	case n < 2 || n > 100:
		errs["name"] = "name must be between 2 and 100 characters"
	}

	switch n := utf8.RuneCountInString(f.Dept); {
	case n == 0:
		errs["dept"] = "department is required"
	case n < 2 || n > 100:
		errs["dept"] = "department must be between 2 and 100 characters"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
