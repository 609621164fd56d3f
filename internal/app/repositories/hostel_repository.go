package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yigit/hostelportal/internal/app/models"
)

// HostelRepository serves the hostel catalogue and tracks bed occupancy
type HostelRepository struct {
	mu      sync.RWMutex
	hostels []models.Hostel
	rooms   map[string][]models.Room
}

// NewHostelRepository creates a repository over the given catalogue
func NewHostelRepository(hostels []models.Hostel, rooms map[string][]models.Room) *HostelRepository {
	r := &HostelRepository{
		hostels: append([]models.Hostel(nil), hostels...),
		rooms:   make(map[string][]models.Room, len(rooms)),
	}
	for id, list := range rooms {
		r.rooms[id] = append([]models.Room(nil), list...)
	}
	return r
}

// List returns hostels for a gender and campus. Empty filters match all.
func (r *HostelRepository) List(ctx context.Context, gender models.Gender, campus string) []models.Hostel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Hostel, 0, len(r.hostels))
	for _, h := range r.hostels {
		if gender != "" && h.Gender != gender {
			continue
		}
		if campus != "" && !strings.EqualFold(h.Campus, campus) {
			continue
		}
		result = append(result, h)
	}
	return result
}

// FindByID returns a hostel by ID
func (r *HostelRepository) FindByID(ctx context.Context, id string) (models.Hostel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hostels {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hostel{}, ErrNotFound
}

// Rooms returns the rooms of a hostel
func (r *HostelRepository) Rooms(ctx context.Context, hostelID string) ([]models.Room, error) {
	if _, err := r.FindByID(ctx, hostelID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Room{}, r.rooms[hostelID]...), nil
}

// FindRoom returns a single room
func (r *HostelRepository) FindRoom(ctx context.Context, hostelID, roomID string) (models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms[hostelID] {
		if room.ID == roomID {
			return room, nil
		}
	}
	return models.Room{}, ErrNotFound
}

// Stats summarises bed occupancy for a hostel
func (r *HostelRepository) Stats(ctx context.Context, hostelID string) (models.HostelStats, error) {
	rooms, err := r.Rooms(ctx, hostelID)
	if err != nil {
		return models.HostelStats{}, err
	}

	stats := models.HostelStats{HostelID: hostelID, TotalRooms: len(rooms)}
	for _, room := range rooms {
		stats.TotalBeds += room.Capacity
		stats.OccupiedBeds += room.Occupied
	}
	stats.AvailableBeds = stats.TotalBeds - stats.OccupiedBeds
	return stats, nil
}

// ReserveBed takes a bed in the first room of the hostel that has one
func (r *HostelRepository) ReserveBed(ctx context.Context, hostelID string) (models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms, ok := r.rooms[hostelID]
	if !ok {
		return models.Room{}, ErrNotFound
	}
	for i := range rooms {
		if rooms[i].Available() {
			rooms[i].Occupied++
			return rooms[i], nil
		}
	}
	return models.Room{}, fmt.Errorf("hostel %s: %w", hostelID, ErrNoBeds)
}
