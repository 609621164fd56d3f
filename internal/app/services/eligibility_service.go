package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models"
)

// GateDecision is the outcome of the eligibility gate
type GateDecision int

// Gate outcomes. GateUnknown is returned alongside an error, when no
// decision could be made.
const (
	GateUnknown GateDecision = iota
	GateEligible
	GateUnpaid
	GateAlreadySubmitted
	GateIneligible
)

// String returns a short name for the decision
func (d GateDecision) String() string {
	switch d {
	case GateEligible:
		return "eligible"
	case GateUnpaid:
		return "unpaid"
	case GateAlreadySubmitted:
		return "already-submitted"
	case GateIneligible:
		return "ineligible"
	default:
		return "unknown"
	}
}

// Message is what the student is told when the gate closes
func (d GateDecision) Message() string {
	switch d {
	case GateEligible:
		return "You can now select your hostel choices."
	case GateUnpaid:
		return "You need to pay your accommodation fee before selecting hostels."
	case GateAlreadySubmitted:
		return "You have already submitted your hostel choices. Check your dashboard for your allocation."
	case GateIneligible:
		return "You are not eligible for hostel selection at this time. Contact the accommodation office."
	default:
		return ""
	}
}

// Decide maps the three eligibility flags onto a decision. A submitted
// application outranks payment, which outranks the generic flag, so every
// combination has exactly one outcome.
func Decide(e models.Eligibility) GateDecision {
	switch {
	case e.AlreadySubmitted:
		return GateAlreadySubmitted
	case !e.HasPaid:
		return GateUnpaid
	case !e.IsEligible:
		return GateIneligible
	default:
		return GateEligible
	}
}

// EligibilityService runs the gate against the backend
type EligibilityService interface {
	Check(ctx context.Context, studentID string) (GateDecision, error)
}

type eligibilityServiceImpl struct {
	api    EligibilityAPI
	logger zerolog.Logger
}

// NewEligibilityService creates a new eligibility service instance
func NewEligibilityService(api EligibilityAPI, logger zerolog.Logger) EligibilityService {
	return &eligibilityServiceImpl{api: api, logger: logger}
}

// Check fetches eligibility fresh on every call
func (s *eligibilityServiceImpl) Check(ctx context.Context, studentID string) (GateDecision, error) {
	e, err := s.api.GetEligibility(ctx, studentID)
	if err != nil {
		return GateUnknown, err
	}

	decision := Decide(e)
	s.logger.Debug().
		Bool("isEligible", e.IsEligible).
		Bool("hasPaid", e.HasPaid).
		Bool("alreadySubmitted", e.AlreadySubmitted).
		Str("decision", decision.String()).
		Msg("Eligibility checked")
	return decision, nil
}
