package domain

import (
	"context"
	"errors"
	"time"
)

// Student represents a student record. Roll is the caller-supplied primary
// identifier and never changes after creation.
type Student struct {
	Roll      int64     `json:"roll"`
	Name      string    `json:"name"`
	Dept      string    `json:"dept"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	// ErrStudentNotFound indicates that no student exists with the given roll.
	ErrStudentNotFound = errors.New("student not found")
	// ErrRollTaken indicates an insert conflicting with an existing roll.
	ErrRollTaken = errors.New("roll number already exists")
)

// StudentRepository defines the port for student persistence operations.
// Create returns ErrRollTaken on a duplicate roll; Get, Update and Delete
// return ErrStudentNotFound when the roll is absent.
type StudentRepository interface {
	Create(ctx context.Context, roll int64, name, dept string) (*Student, error)
	Get(ctx context.Context, roll int64) (*Student, error)
	List(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, roll int64, name, dept string) (*Student, error)
	Delete(ctx context.Context, roll int64) error
}
