package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
	"github.com/yigit/hostelportal/internal/pkg/validation"
)

// RegistrationStep is one page of the registration form
type RegistrationStep int

// Registration steps in the order they are filled in
const (
	StepAccount RegistrationStep = iota + 1
	StepAcademic
	StepPersonal
)

// RegistrationSteps lists every step in order
var RegistrationSteps = []RegistrationStep{StepAccount, StepAcademic, StepPersonal}

var registrationStepFields = map[RegistrationStep][]string{
	StepAccount:  {"Name", "StudentID", "Password", "ConfirmPassword"},
	StepAcademic: {"Faculty", "Department", "Level", "Campus"},
	StepPersonal: {"Gender"},
}

// String returns the step's title
func (s RegistrationStep) String() string {
	switch s {
	case StepAccount:
		return "Account"
	case StepAcademic:
		return "Academic details"
	case StepPersonal:
		return "Personal details"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// AuthService handles registration, login and the stored session
type AuthService struct {
	api    AuthAPI
	store  session.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(api AuthAPI, store session.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{
		api:    api,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateStep checks the fields belonging to one registration step. The
// form's gender is normalised in place.
func (s *AuthService) ValidateStep(form *dto.RegisterForm, step RegistrationStep) error {
	fields, ok := registrationStepFields[step]
	if !ok {
		return fmt.Errorf("unknown registration step %d", step)
	}
	normalizeForm(form)

	verr := apperrors.NewValidationError()
	if err := validation.Partial(form, fields...); err != nil {
		var fieldErrs *apperrors.ValidationError
		if !errors.As(err, &fieldErrs) {
			return err
		}
		verr.Fields = append(verr.Fields, fieldErrs.Fields...)
	}

	if step == StepAccount && form.Password != "" && form.ConfirmPassword != "" && form.Password != form.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}

	return verr.Err()
}

func normalizeForm(form *dto.RegisterForm) {
	form.Name = strings.TrimSpace(form.Name)
	form.StudentID = strings.TrimSpace(form.StudentID)
	if g, err := models.ParseGender(form.Gender); err == nil {
		form.Gender = string(g)
	}
}

// Register validates every step locally, then creates the account. When the
// backend signs the student in straight away the session is saved and
// returned; otherwise the returned session is empty and the student must log in.
func (s *AuthService) Register(ctx context.Context, form dto.RegisterForm) (session.Session, error) {
	verr := apperrors.NewValidationError()
	for _, step := range RegistrationSteps {
		err := s.ValidateStep(&form, step)
		var fieldErrs *apperrors.ValidationError
		switch {
		case err == nil:
		case errors.As(err, &fieldErrs):
			verr.Fields = append(verr.Fields, fieldErrs.Fields...)
		default:
			return session.Session{}, err
		}
	}
	if verr.HasErrors() {
		return session.Session{}, verr
	}

	resp, err := s.api.Register(ctx, form.ToRequest())
	if err != nil {
		return session.Session{}, err
	}
	s.logger.Info().Str("studentId", form.StudentID).Msg("Registration accepted")

	if resp.Token == "" || resp.Student == nil {
		return session.Session{}, nil
	}
	return s.saveSession(resp)
}

// Login authenticates and stores the token and student together
func (s *AuthService) Login(ctx context.Context, studentID, password string) (session.Session, error) {
	req := dto.LoginRequest{StudentID: strings.TrimSpace(studentID), Password: password}
	if err := validation.Struct(req); err != nil {
		return session.Session{}, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return session.Session{}, err
	}
	if resp.Token == "" || resp.Student == nil {
		return session.Session{}, apperrors.NewCustomError(apperrors.ErrServiceUnavailable, "login response did not include a token")
	}
	return s.saveSession(resp)
}

func (s *AuthService) saveSession(resp *dto.AuthResponse) (session.Session, error) {
	sess := session.New(resp.Token, resp.Student.ToModel())
	if err := s.store.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	s.logger.Debug().Str("id", sess.StudentID()).Msg("Session saved")
	return sess, nil
}

// Logout clears the stored session
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// Current returns the stored session. A missing or expired session is
// reported as apperrors.ErrUnauthenticated; an expired one is also cleared.
func (s *AuthService) Current() (session.Session, error) {
	sess, err := s.store.Load()
	if errors.Is(err, session.ErrNoSession) {
		return session.Session{}, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return session.Session{}, err
	}

	if sess.Expired(s.now()) {
		s.logger.Info().Msg("Stored token has expired, clearing session")
		if err := s.store.Clear(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to clear expired session")
		}
		return session.Session{}, apperrors.ErrUnauthenticated
	}
	return sess, nil
}

// RefreshProfile fetches the latest profile and merges it into the session.
// It is best effort: on failure the cached student is kept and a warning
// logged, except for authentication failures which are returned.
func (s *AuthService) RefreshProfile(ctx context.Context, sess session.Session) (session.Session, error) {
	resp, err := s.api.GetProfile(ctx, sess.Student.StudentID)
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		return session.Session{}, err
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not refresh profile, using cached details")
		return sess, nil
	}
	if resp.Student == nil {
		return sess, nil
	}

	updated := sess.WithStudent(resp.Student.ToModel())
	if err := s.store.Save(updated); err != nil {
		s.logger.Warn().Err(err).Msg("Could not save refreshed profile")
	}
	return updated, nil
}
