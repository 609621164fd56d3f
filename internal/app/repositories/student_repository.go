package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yigit/hostelportal/internal/app/models"
)

// Allocation is the bed a student was given
type Allocation struct {
	HostelID string
	RoomID   string
}

// StudentRecord is everything the backend knows about a student
type StudentRecord struct {
	Student         models.Student
	PasswordHash    string
	Eligible        bool
	HasPaid         bool
	PaymentDate     time.Time
	ApplicationDate time.Time
	Choices         [models.RankCount]string
	Submitted       bool
	Allocation      *Allocation
}

// StudentRepository stores student records keyed by backend ID
type StudentRepository struct {
	mu        sync.RWMutex
	byID      map[string]*StudentRecord
	byLoginID map[string]string
}

// NewStudentRepository creates an empty StudentRepository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byID:      make(map[string]*StudentRecord),
		byLoginID: make(map[string]string),
	}
}

func loginKey(studentID string) string {
	return strings.ToUpper(strings.TrimSpace(studentID))
}

// Create stores a new record. Registration numbers are unique, ignoring case.
func (r *StudentRepository) Create(ctx context.Context, rec StudentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := loginKey(rec.Student.StudentID)
	if _, exists := r.byLoginID[key]; exists {
		return fmt.Errorf("student %s: %w", rec.Student.StudentID, ErrAlreadyExists)
	}
	if _, exists := r.byID[rec.Student.ID]; exists {
		return fmt.Errorf("student id %s: %w", rec.Student.ID, ErrAlreadyExists)
	}

	stored := rec
	r.byID[rec.Student.ID] = &stored
	r.byLoginID[key] = rec.Student.ID
	return nil
}

// FindByID returns a copy of the record with the given backend ID
func (r *StudentRepository) FindByID(ctx context.Context, id string) (StudentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return StudentRecord{}, ErrNotFound
	}
	return copyRecord(rec), nil
}

// FindByStudentID looks a record up by registration number
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (StudentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLoginID[loginKey(studentID)]
	if !ok {
		return StudentRecord{}, ErrNotFound
	}
	return copyRecord(r.byID[id]), nil
}

// Update applies fn to the record while holding the write lock. Changes are
// discarded when fn returns an error.
func (r *StudentRepository) Update(ctx context.Context, id string, fn func(*StudentRecord) error) (StudentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return StudentRecord{}, ErrNotFound
	}

	working := copyRecord(rec)
	if err := fn(&working); err != nil {
		return StudentRecord{}, err
	}
	*rec = working
	return copyRecord(rec), nil
}

func copyRecord(rec *StudentRecord) StudentRecord {
	c := *rec
	if rec.Allocation != nil {
		a := *rec.Allocation
		c.Allocation = &a
	}
	return c
}
