package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/repositories"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
	"github.com/yigit/hostelportal/internal/pkg/auth"
)

const dateLayout = "2006-01-02"

// AccommodationService is the mock backend's view of the accommodation
// office: accounts, payment flags, choice submission and room allocation.
type AccommodationService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, studentID string) (models.Student, error)
	SetPaymentStatus(ctx context.Context, id string, paid bool) error
	SetEligible(ctx context.Context, id string, eligible bool) error
	GetEligibility(ctx context.Context, id string) (models.Eligibility, error)
	GetStatus(ctx context.Context, id string) (models.StudentStatus, error)
	SubmitChoices(ctx context.Context, id string, req *dto.SubmitChoicesRequest) error
	GetRoomInfo(ctx context.Context, id string) (*models.RoomInfo, error)
	ListHostels(ctx context.Context, gender, campus string) ([]models.Hostel, error)
	ListRooms(ctx context.Context, hostelID string) ([]models.Room, error)
	GetHostelStats(ctx context.Context, hostelID string) (models.HostelStats, error)
}

// accommodationServiceImpl implements the AccommodationService interface
type accommodationServiceImpl struct {
	studentRepo *repositories.StudentRepository
	hostelRepo  *repositories.HostelRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAccommodationService creates a new accommodation service instance
func NewAccommodationService(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) AccommodationService {
	return &accommodationServiceImpl{
		studentRepo: repos.StudentRepository,
		hostelRepo:  repos.HostelRepository,
		jwtService:  jwtService,
		logger:      logger,
		now:         time.Now,
	}
}

// Register creates an account and signs the student in
func (s *accommodationServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		return nil, apperrors.NewBadRequestError("gender must be Male or Female")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewBadRequestError("password must be at least 6 characters long")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := models.Student{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(req.Name),
		StudentID:  strings.TrimSpace(req.StudentID),
		Department: req.Department,
		Faculty:    req.Faculty,
		Campus:     req.Campus,
		Gender:     gender,
		Level:      req.Level,
	}

	err = s.studentRepo.Create(ctx, repositories.StudentRecord{
		Student:      student,
		PasswordHash: hash,
		Eligible:     true,
	})
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", student.StudentID).Str("id", student.ID).Msg("Student registered")
	return s.authResponse(student, "Registration successful")
}

// Login checks credentials and issues a token
func (s *accommodationServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	rec, err := s.studentRepo.FindByStudentID(ctx, req.StudentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(rec.PasswordHash, req.Password) {
		s.logger.Debug().Str("studentId", req.StudentID).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(rec.Student, "Login successful")
}

func (s *accommodationServiceImpl) authResponse(student models.Student, message string) (*dto.AuthResponse, error) {
	token, _, err := s.jwtService.GenerateToken(student)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
		Student: dto.NewStudentPayload(student),
	}, nil
}

// GetProfile looks a student up by registration number
func (s *accommodationServiceImpl) GetProfile(ctx context.Context, studentID string) (models.Student, error) {
	rec, err := s.studentRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return models.Student{}, s.studentErr(err)
	}
	return rec.Student, nil
}

// SetPaymentStatus flips the paid flag
func (s *accommodationServiceImpl) SetPaymentStatus(ctx context.Context, id string, paid bool) error {
	_, err := s.studentRepo.Update(ctx, id, func(rec *repositories.StudentRecord) error {
		rec.HasPaid = paid
		if paid {
			rec.PaymentDate = s.now()
		} else {
			rec.PaymentDate = time.Time{}
		}
		return nil
	})
	if err != nil {
		return s.studentErr(err)
	}

	s.logger.Info().Str("id", id).Bool("paid", paid).Msg("Payment status updated")
	return nil
}

// SetEligible marks whether the office allows a student to apply at all
func (s *accommodationServiceImpl) SetEligible(ctx context.Context, id string, eligible bool) error {
	_, err := s.studentRepo.Update(ctx, id, func(rec *repositories.StudentRecord) error {
		rec.Eligible = eligible
		return nil
	})
	return s.studentErr(err)
}

// GetEligibility reports the three eligibility facts
func (s *accommodationServiceImpl) GetEligibility(ctx context.Context, id string) (models.Eligibility, error) {
	rec, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return models.Eligibility{}, s.studentErr(err)
	}
	return eligibilityOf(rec), nil
}

func eligibilityOf(rec repositories.StudentRecord) models.Eligibility {
	return models.Eligibility{
		IsEligible:       rec.Eligible && rec.HasPaid && !rec.Submitted,
		HasPaid:          rec.HasPaid,
		AlreadySubmitted: rec.Submitted,
	}
}

// GetStatus reports application progress
func (s *accommodationServiceImpl) GetStatus(ctx context.Context, id string) (models.StudentStatus, error) {
	rec, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return models.StudentStatus{}, s.studentErr(err)
	}

	status := models.StudentStatus{
		HasPaid:             rec.HasPaid,
		HasSubmittedChoices: rec.Submitted,
		RoomAllocated:       rec.Allocation != nil,
	}
	if !rec.ApplicationDate.IsZero() {
		status.ApplicationDate = rec.ApplicationDate.Format(dateLayout)
	}
	if !rec.PaymentDate.IsZero() {
		status.PaymentDate = rec.PaymentDate.Format(dateLayout)
	}
	return status, nil
}

// SubmitChoices records the ranked choices once and allocates a bed in the
// first choice that still has one. A second submission is a conflict.
func (s *accommodationServiceImpl) SubmitChoices(ctx context.Context, id string, req *dto.SubmitChoicesRequest) error {
	current, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return s.studentErr(err)
	}

	choices, err := s.checkChoices(ctx, current.Student, req.IDs())
	if err != nil {
		return err
	}

	rec, err := s.studentRepo.Update(ctx, id, func(rec *repositories.StudentRecord) error {
		switch {
		case rec.Submitted:
			return apperrors.ErrChoicesAlreadySubmitted
		case !rec.HasPaid:
			return apperrors.ErrPaymentRequired
		case !rec.Eligible:
			return apperrors.ErrNotEligible
		}

		rec.Choices = choices
		rec.Submitted = true
		rec.ApplicationDate = s.now()

		for _, hostelID := range choices {
			if hostelID == "" {
				continue
			}
			room, err := s.hostelRepo.ReserveBed(ctx, hostelID)
			if errors.Is(err, repositories.ErrNoBeds) {
				continue
			}
			if err != nil {
				return err
			}
			rec.Allocation = &repositories.Allocation{HostelID: hostelID, RoomID: room.ID}
			break
		}
		return nil
	})
	if err != nil {
		return s.studentErr(err)
	}

	log := s.logger.Info().Str("id", id).Strs("choices", choices[:])
	if rec.Allocation != nil {
		log = log.Str("hostelId", rec.Allocation.HostelID).Str("roomId", rec.Allocation.RoomID)
	}
	log.Msg("Hostel choices submitted")
	return nil
}

// checkChoices validates the payload against the catalogue
func (s *accommodationServiceImpl) checkChoices(ctx context.Context, student models.Student, ids [models.RankCount]*string) ([models.RankCount]string, error) {
	var choices [models.RankCount]string
	seen := make(map[string]bool)
	filled := 0

	for i, ptr := range ids {
		if ptr == nil || strings.TrimSpace(*ptr) == "" {
			continue
		}
		hostelID := strings.TrimSpace(*ptr)
		if seen[hostelID] {
			return choices, apperrors.NewBadRequestError("each hostel can only be chosen once")
		}
		seen[hostelID] = true

		hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
		if errors.Is(err, repositories.ErrNotFound) {
			return choices, apperrors.ErrHostelNotFound
		}
		if err != nil {
			return choices, err
		}
		if hostel.Gender != student.Gender || (student.Campus != "" && !strings.EqualFold(hostel.Campus, student.Campus)) {
			return choices, apperrors.NewCustomError(apperrors.ErrHostelNotOffered, hostel.Name+" is not offered to this student")
		}

		choices[i] = hostelID
		filled++
	}

	if filled == 0 {
		return choices, apperrors.NewBadRequestError("at least one hostel choice is required")
	}
	return choices, nil
}

// GetRoomInfo returns the allocation, or nil when there is none yet
func (s *accommodationServiceImpl) GetRoomInfo(ctx context.Context, id string) (*models.RoomInfo, error) {
	rec, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.studentErr(err)
	}
	if rec.Allocation == nil {
		return nil, nil
	}

	hostel, err := s.hostelRepo.FindByID(ctx, rec.Allocation.HostelID)
	if err != nil {
		return nil, err
	}
	room, err := s.hostelRepo.FindRoom(ctx, rec.Allocation.HostelID, rec.Allocation.RoomID)
	if err != nil {
		return nil, err
	}

	return &models.RoomInfo{
		HostelName: hostel.Name,
		BlockName:  room.BlockName,
		RoomName:   room.Name,
	}, nil
}

// ListHostels filters the catalogue by gender and campus
func (s *accommodationServiceImpl) ListHostels(ctx context.Context, gender, campus string) ([]models.Hostel, error) {
	var g models.Gender
	if strings.TrimSpace(gender) != "" {
		parsed, err := models.ParseGender(gender)
		if err != nil {
			return nil, apperrors.NewBadRequestError("gender must be Male or Female")
		}
		g = parsed
	}
	return s.hostelRepo.List(ctx, g, strings.TrimSpace(campus)), nil
}

// ListRooms returns a hostel's rooms
func (s *accommodationServiceImpl) ListRooms(ctx context.Context, hostelID string) ([]models.Room, error) {
	rooms, err := s.hostelRepo.Rooms(ctx, hostelID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrHostelNotFound
	}
	return rooms, err
}

// GetHostelStats returns a hostel's occupancy
func (s *accommodationServiceImpl) GetHostelStats(ctx context.Context, hostelID string) (models.HostelStats, error) {
	stats, err := s.hostelRepo.Stats(ctx, hostelID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.HostelStats{}, apperrors.ErrHostelNotFound
	}
	return stats, err
}

// studentErr maps a missing record onto ErrStudentNotFound
func (s *accommodationServiceImpl) studentErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrStudentNotFound
	}
	return err
}
