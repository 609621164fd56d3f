package services

import (
	"context"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/session"
)

// HostelOverview pairs a hostel with its occupancy
type HostelOverview struct {
	Hostel models.Hostel
	Stats  models.HostelStats
}

// HostelService browses the hostels offered to the logged-in student
type HostelService struct {
	api HostelAPI
}

// NewHostelService creates a new HostelService
func NewHostelService(api HostelAPI) *HostelService {
	return &HostelService{api: api}
}

// List returns the hostels for the student's gender and campus
func (s *HostelService) List(ctx context.Context, sess session.Session) ([]models.Hostel, error) {
	return s.api.ListHostels(ctx, sess.Student.Gender, sess.Student.Campus)
}

// Overview lists the student's hostels with their occupancy
func (s *HostelService) Overview(ctx context.Context, sess session.Session) ([]HostelOverview, error) {
	hostels, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}

	result := make([]HostelOverview, 0, len(hostels))
	for _, h := range hostels {
		stats, err := s.api.GetHostelStats(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, HostelOverview{Hostel: h, Stats: stats})
	}
	return result, nil
}

// Rooms returns a hostel's rooms
func (s *HostelService) Rooms(ctx context.Context, hostelID string) ([]models.Room, error) {
	return s.api.ListRooms(ctx, hostelID)
}

// Stats returns a hostel's occupancy
func (s *HostelService) Stats(ctx context.Context, hostelID string) (models.HostelStats, error) {
	return s.api.GetHostelStats(ctx, hostelID)
}
