// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"studentbook/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session
	students map[int64]*domain.Student

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		students: make(map[int64]*domain.Student),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)
var _ domain.StudentRepository = (*StudentRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, remember bool, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		Remember:  remember,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// --- StudentRepository ---

// StudentRepo implements student persistence.
type StudentRepo struct {
	db *DB
}

// NewStudentRepo creates a new student repository.
func (db *DB) NewStudentRepo() *StudentRepo {
	return &StudentRepo{db: db}
}

// Create inserts a new student, rejecting a roll that already exists.
func (r *StudentRepo) Create(ctx context.Context, roll int64, name, dept string) (*domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.students[roll]; ok {
		return nil, domain.ErrRollTaken
	}

	st := &domain.Student{
		Roll:      roll,
		Name:      name,
		Dept:      dept,
		CreatedAt: time.Now().UTC(),
	}
	r.db.students[roll] = st
	cp := *st
	return &cp, nil
}

// Get retrieves a student by roll.
func (r *StudentRepo) Get(ctx context.Context, roll int64) (*domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	st, ok := r.db.students[roll]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

// List returns all students in roll order.
func (r *StudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Student, 0, len(r.db.students))
	for _, st := range r.db.students {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Roll < out[j].Roll })
	return out, nil
}

// Update changes name and dept for an existing roll.
func (r *StudentRepo) Update(ctx context.Context, roll int64, name, dept string) (*domain.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	st, ok := r.db.students[roll]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	st.Name = name
	st.Dept = dept
	cp := *st
	return &cp, nil
}

// Delete removes a student by roll.
func (r *StudentRepo) Delete(ctx context.Context, roll int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.students[roll]; !ok {
		return domain.ErrStudentNotFound
	}
	delete(r.db.students, roll)
	return nil
}
