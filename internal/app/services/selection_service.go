package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

// Workflow errors
var (
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrWorkflowClosed     = errors.New("hostel choices have already been submitted")
	ErrInvalidTransition  = errors.New("action not allowed at this step")
	ErrEmptySelection     = fmt.Errorf("%w: select at least one hostel", apperrors.ErrValidationFailed)
)

// Choices is the selection, indexed by rank
type Choices [models.RankCount]models.HostelChoice

func emptyChoices() Choices {
	var c Choices
	for _, r := range models.Ranks {
		c[r].Rank = r
	}
	return c
}

// Filled counts ranks with a hostel
func (c Choices) Filled() int {
	n := 0
	for _, choice := range c {
		if choice.Filled() {
			n++
		}
	}
	return n
}

// State is one of Selecting, Confirming, Submitting or Success
type State interface {
	Choices() Choices
	isState()
}

// Selecting is the editable state
type Selecting struct{ choices Choices }

// Confirming shows the selection for review. Err holds the last submission
// failure, if any.
type Confirming struct {
	choices Choices
	Err     error
}

// Submitting means a request is in flight
type Submitting struct{ choices Choices }

// Success is terminal
type Success struct {
	choices Choices
	Message string
}

func (s Selecting) Choices() Choices  { return s.choices }
func (s Confirming) Choices() Choices { return s.choices }
func (s Submitting) Choices() Choices { return s.choices }
func (s Success) Choices() Choices    { return s.choices }

func (Selecting) isState()  {}
func (Confirming) isState() {}
func (Submitting) isState() {}
func (Success) isState()    {}

// Workflow drives one student's choice selection. It is safe for concurrent
// use; at most one submission request is in flight at a time.
type Workflow struct {
	mu      sync.Mutex
	state   State
	busy    bool
	student models.Student
	hostels []models.Hostel
	api     SubmissionAPI
	logger  zerolog.Logger
}

// NewWorkflow starts a workflow in Selecting over the given catalogue
func NewWorkflow(student models.Student, hostels []models.Hostel, api SubmissionAPI, logger zerolog.Logger) *Workflow {
	return &Workflow{
		state:   Selecting{choices: emptyChoices()},
		student: student,
		hostels: append([]models.Hostel(nil), hostels...),
		api:     api,
		logger:  logger,
	}
}

// State returns a snapshot of the current state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Hostels returns the catalogue choices are made from
func (w *Workflow) Hostels() []models.Hostel {
	return append([]models.Hostel(nil), w.hostels...)
}

// Busy reports whether a submission is in flight
func (w *Workflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *Workflow) findHostel(id string) (models.Hostel, bool) {
	for _, h := range w.hostels {
		if h.ID == id {
			return h, true
		}
	}
	return models.Hostel{}, false
}

// selecting returns the editable choices or the error for the current state.
// Callers hold w.mu.
func (w *Workflow) selecting() (Choices, error) {
	switch st := w.state.(type) {
	case Selecting:
		return st.choices, nil
	case Success:
		return Choices{}, ErrWorkflowClosed
	default:
		return Choices{}, ErrInvalidTransition
	}
}

// Assign puts a hostel at a rank, replacing whatever was there
func (w *Workflow) Assign(rank models.Rank, hostelID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	choices, err := w.selecting()
	if err != nil {
		return err
	}
	if !rank.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("invalid rank %d", int(rank)))
	}

	hostel, ok := w.findHostel(hostelID)
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrHostelNotOffered, fmt.Sprintf("hostel %q is not available to you", hostelID))
	}
	for _, other := range choices {
		if other.Rank != rank && other.Filled() && other.Hostel.ID == hostelID {
			return apperrors.NewBadRequestError(fmt.Sprintf("%s is already your %s choice", hostel.Name, other.Rank))
		}
	}

	choices[rank].Hostel = &hostel
	w.state = Selecting{choices: choices}
	return nil
}

// Clear empties a rank
func (w *Workflow) Clear(rank models.Rank) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	choices, err := w.selecting()
	if err != nil {
		return err
	}
	if !rank.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("invalid rank %d", int(rank)))
	}

	choices[rank].Hostel = nil
	w.state = Selecting{choices: choices}
	return nil
}

// Review moves from Selecting to Confirming
func (w *Workflow) Review() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	choices, err := w.selecting()
	if err != nil {
		return err
	}
	if choices.Filled() == 0 {
		return ErrEmptySelection
	}

	w.state = Confirming{choices: choices}
	return nil
}

// Cancel goes back from Confirming to Selecting, keeping the selection
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch st := w.state.(type) {
	case Confirming:
		w.state = Selecting{choices: st.choices}
		return nil
	case Success:
		return ErrWorkflowClosed
	default:
		return ErrInvalidTransition
	}
}

// Confirm submits the reviewed choices. On failure the workflow returns to
// Confirming with the error recorded and the selection untouched. A call
// made while another is in flight fails with ErrSubmissionInFlight and
// sends nothing.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}

	var choices Choices
	switch st := w.state.(type) {
	case Confirming:
		choices = st.choices
	case Success:
		w.mu.Unlock()
		return ErrWorkflowClosed
	default:
		w.mu.Unlock()
		return ErrInvalidTransition
	}

	w.busy = true
	w.state = Submitting{choices: choices}
	w.mu.Unlock()

	resp, err := w.api.SubmitChoices(ctx, w.student.ID, dto.NewSubmitChoicesRequest(choices))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false

	if err != nil {
		w.logger.Warn().Err(err).Str("id", w.student.ID).Msg("Hostel choice submission failed")
		w.state = Confirming{choices: choices, Err: err}
		return err
	}

	message := "Hostel selections submitted successfully!"
	if resp != nil && resp.Message != "" {
		message = resp.Message
	}
	w.logger.Info().Str("id", w.student.ID).Int("filled", choices.Filled()).Msg("Hostel choices submitted")
	w.state = Success{choices: choices, Message: message}
	return nil
}

// SelectionService opens a workflow for students who pass the gate
type SelectionService struct {
	gate    EligibilityService
	hostels HostelAPI
	submit  SubmissionAPI
	logger  zerolog.Logger
}

// NewSelectionService creates a new SelectionService
func NewSelectionService(gate EligibilityService, hostels HostelAPI, submit SubmissionAPI, logger zerolog.Logger) *SelectionService {
	return &SelectionService{
		gate:    gate,
		hostels: hostels,
		submit:  submit,
		logger:  logger,
	}
}

// Start re-checks eligibility and loads the hostels offered to the student.
// A workflow is returned only when the decision is GateEligible.
func (s *SelectionService) Start(ctx context.Context, sess session.Session) (*Workflow, GateDecision, error) {
	decision, err := s.gate.Check(ctx, sess.StudentID())
	if err != nil {
		return nil, decision, err
	}
	if decision != GateEligible {
		return nil, decision, nil
	}

	hostels, err := s.hostels.ListHostels(ctx, sess.Student.Gender, sess.Student.Campus)
	if err != nil {
		return nil, decision, fmt.Errorf("failed to load hostels: %w", err)
	}

	s.logger.Debug().Int("hostels", len(hostels)).Msg("Selection workflow started")
	return NewWorkflow(sess.Student, hostels, s.submit, s.logger), decision, nil
}
