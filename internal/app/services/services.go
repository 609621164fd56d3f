// Package services holds the portal's use cases: the student-facing flows
// driven by the CLI, and the accommodation office behind the mock backend.
package services

import (
	"context"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
)

// The student-facing services depend on these narrow views of the backend
// client so they can be tested with fakes. *client.Client satisfies all of them.

// AuthAPI covers account endpoints
type AuthAPI interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error)
}

// EligibilityAPI answers the eligibility question
type EligibilityAPI interface {
	GetEligibility(ctx context.Context, id string) (models.Eligibility, error)
}

// HostelAPI covers the hostel catalogue
type HostelAPI interface {
	ListHostels(ctx context.Context, gender models.Gender, campus string) ([]models.Hostel, error)
	ListRooms(ctx context.Context, hostelID string) ([]models.Room, error)
	GetHostelStats(ctx context.Context, hostelID string) (models.HostelStats, error)
}

// SubmissionAPI submits ranked choices
type SubmissionAPI interface {
	SubmitChoices(ctx context.Context, id string, req dto.SubmitChoicesRequest) (*dto.SuccessResponse, error)
}

// PaymentAPI records payment
type PaymentAPI interface {
	UpdatePaymentStatus(ctx context.Context, id string, paid bool) (*dto.SuccessResponse, error)
}

// ProgressAPI reads application progress
type ProgressAPI interface {
	EligibilityAPI
	GetStatus(ctx context.Context, id string) (models.StudentStatus, error)
	GetRoomInfo(ctx context.Context, id string) (models.RoomInfo, error)
}
