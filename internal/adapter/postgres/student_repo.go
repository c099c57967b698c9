package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentbook/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// StudentRepo implements student repository operations on DB.
type StudentRepo struct {
	db *DB
}

// NewStudentRepo wraps a DB as a StudentRepository.
func NewStudentRepo(db *DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create inserts a new student. A duplicate roll maps to domain.ErrRollTaken.
func (r *StudentRepo) Create(ctx context.Context, roll int64, name, dept string) (*domain.Student, error) {
	var st domain.Student
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO students (roll, name, dept, created_at) VALUES ($1, $2, $3, $4) RETURNING roll, name, dept, created_at",
		roll, name, dept, time.Now(),
	).Scan(&st.Roll, &st.Name, &st.Dept, &st.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrRollTaken
		}
		return nil, err
	}
	return &st, nil
}

// Get retrieves a student by roll.
func (r *StudentRepo) Get(ctx context.Context, roll int64) (*domain.Student, error) {
	var st domain.Student
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT roll, name, dept, created_at FROM students WHERE roll = $1",
		roll,
	).Scan(&st.Roll, &st.Name, &st.Dept, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns all students in roll order.
func (r *StudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT roll, name, dept, created_at FROM students ORDER BY roll")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Student{}
	for rows.Next() {
		var st domain.Student
		if err := rows.Scan(&st.Roll, &st.Name, &st.Dept, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Update changes name and dept for an existing roll. The roll column itself
// is never written.
func (r *StudentRepo) Update(ctx context.Context, roll int64, name, dept string) (*domain.Student, error) {
	var st domain.Student
	err := r.db.sql.QueryRowContext(ctx,
		"UPDATE students SET name = $2, dept = $3 WHERE roll = $1 RETURNING roll, name, dept, created_at",
		roll, name, dept,
	).Scan(&st.Roll, &st.Name, &st.Dept, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Delete removes a student by roll.
func (r *StudentRepo) Delete(ctx context.Context, roll int64) error {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM students WHERE roll = $1", roll)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}
