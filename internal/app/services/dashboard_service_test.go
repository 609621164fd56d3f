package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

func TestDashboard_Load(t *testing.T) {
	api := newFakeAPI()
	api.status = models.StudentStatus{HasPaid: true, HasSubmittedChoices: true, RoomAllocated: true}
	api.eligibility = models.Eligibility{HasPaid: true, AlreadySubmitted: true}
	api.room = models.RoomInfo{HostelName: "Ribadu Hall", BlockName: "Block A", RoomName: "A01"}

	d, err := NewDashboardService(api, testFees, zerolog.Nop()).Load(context.Background(), session.New("tok", testStudent))
	require.NoError(t, err)

	assert.Equal(t, GateAlreadySubmitted, d.Gate)
	assert.Equal(t, 4, d.Completed())
	assert.Equal(t, "Ribadu Hall", d.Room.HostelName)
	assert.Empty(t, d.Warnings)
	assert.Equal(t, int64(47000), d.Fees.Total())
}

func TestDashboard_NewStudent(t *testing.T) {
	api := newFakeAPI()
	api.roomErr = &apperrors.APIError{StatusCode: 404, Err: apperrors.ErrResourceNotFound}

	d, err := NewDashboardService(api, testFees, zerolog.Nop()).Load(context.Background(), session.New("tok", testStudent))
	require.NoError(t, err)

	assert.Equal(t, GateUnpaid, d.Gate)
	assert.Equal(t, 1, d.Completed())
	assert.Equal(t, []string{"Registered", "Payment", "Hostel choices", "Room allocated"}, []string{
		d.Steps[0].Label, d.Steps[1].Label, d.Steps[2].Label, d.Steps[3].Label,
	})
	assert.Empty(t, d.Warnings)
}

func TestDashboard_PartialFailures(t *testing.T) {
	api := newFakeAPI()
	api.roomErr = apperrors.ErrServiceUnavailable

	d, err := NewDashboardService(api, testFees, zerolog.Nop()).Load(context.Background(), session.New("tok", testStudent))
	require.NoError(t, err)
	assert.Len(t, d.Warnings, 1)

	api.statusErr = apperrors.ErrServiceUnavailable
	_, err = NewDashboardService(api, testFees, zerolog.Nop()).Load(context.Background(), session.New("tok", testStudent))
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)

	api.statusErr = nil
	api.roomErr = apperrors.ErrUnauthenticated
	_, err = NewDashboardService(api, testFees, zerolog.Nop()).Load(context.Background(), session.New("tok", testStudent))
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
