package app

import (
	"context"

	"studentbook/internal/domain"
)

// StudentService encapsulates the student record use cases. Authentication
// is enforced at the HTTP boundary, not here; every method assumes the
// caller has already been admitted.
type StudentService struct {
	repo domain.StudentRepository
}

// NewStudentService creates a StudentService backed by the given repository.
func NewStudentService(repo domain.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// Create validates and inserts a new student. A roll that already exists
// fails with domain.ErrRollTaken; the repository enforces the uniqueness
// atomically so two racing creates cannot both win.
func (s *StudentService) Create(ctx context.Context, form *StudentForm) (*domain.Student, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, form.Roll, form.Name, form.Dept)
}

// List returns all students in roll order.
func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx)
}

// Get returns the student with the given roll, or domain.ErrStudentNotFound.
func (s *StudentService) Get(ctx context.Context, roll int64) (*domain.Student, error) {
	return s.repo.Get(ctx, roll)
}

// Update changes the name and department of an existing student. The roll is
// immutable; it only identifies the record. Fails with
// domain.ErrStudentNotFound when the roll is absent.
func (s *StudentService) Update(ctx context.Context, roll int64, form *StudentForm) (*domain.Student, error) {
	form.Roll = roll
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, roll, form.Name, form.Dept)
}

// Delete removes the student with the given roll. Fails with
// domain.ErrStudentNotFound when the roll is absent; other records are
// never affected.
func (s *StudentService) Delete(ctx context.Context, roll int64) error {
	return s.repo.Delete(ctx, roll)
}
