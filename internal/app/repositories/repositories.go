// Package repositories holds the mock backend's in-memory data. Everything
// is lost when the process exits.
package repositories

import "errors"

// Shared repository errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNoBeds        = errors.New("no beds available")
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	HostelRepository  *HostelRepository
}

// NewRepositories initializes all repositories with the default hostel seed
func NewRepositories() *Repositories {
	hostels, rooms := DefaultHostels()
	return &Repositories{
		StudentRepository: NewStudentRepository(),
		HostelRepository:  NewHostelRepository(hostels, rooms),
	}
}
