package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

// ProgressStep is one milestone of the application
type ProgressStep struct {
	Label     string
	Completed bool
}

// Dashboard is everything the student overview shows
type Dashboard struct {
	Student     models.Student
	Status      models.StudentStatus
	Eligibility models.Eligibility
	Gate        GateDecision
	Room        models.RoomInfo
	Fees        models.FeeSummary
	Steps       []ProgressStep
	// Warnings lists sections that could not be loaded
	Warnings []string
}

// Completed counts finished steps
func (d *Dashboard) Completed() int {
	n := 0
	for _, s := range d.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// DashboardService aggregates status, eligibility and allocation
type DashboardService struct {
	api    ProgressAPI
	fees   models.FeeSummary
	logger zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(api ProgressAPI, fees models.FeeSummary, logger zerolog.Logger) *DashboardService {
	return &DashboardService{api: api, fees: fees, logger: logger}
}

// Load fetches the three sections concurrently. Status and eligibility are
// required; a missing room allocation only adds a warning.
func (s *DashboardService) Load(ctx context.Context, sess session.Session) (*Dashboard, error) {
	d := &Dashboard{Student: sess.Student, Fees: s.fees}
	id := sess.StudentID()

	var roomErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		status, err := s.api.GetStatus(gctx, id)
		if err != nil {
			return err
		}
		d.Status = status
		return nil
	})

	g.Go(func() error {
		eligibility, err := s.api.GetEligibility(gctx, id)
		if err != nil {
			return err
		}
		d.Eligibility = eligibility
		return nil
	})

	g.Go(func() error {
		room, err := s.api.GetRoomInfo(gctx, id)
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return err
		}
		d.Room, roomErr = room, err
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if roomErr != nil && !errors.Is(roomErr, apperrors.ErrResourceNotFound) {
		s.logger.Warn().Err(roomErr).Msg("Could not load room allocation")
		d.Warnings = append(d.Warnings, "Room allocation is unavailable right now")
	}

	d.Gate = Decide(d.Eligibility)
	d.Steps = []ProgressStep{
		{Label: "Registered", Completed: true},
		{Label: "Payment", Completed: d.Status.HasPaid},
		{Label: "Hostel choices", Completed: d.Status.HasSubmittedChoices},
		{Label: "Room allocated", Completed: d.Status.RoomAllocated || d.Room.Allocated()},
	}
	return d, nil
}
