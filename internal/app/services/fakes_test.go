package services

import (
	"context"
	"sync"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
)

// fakeAPI implements every backend view used by the services
type fakeAPI struct {
	mu sync.Mutex

	registerResp *dto.AuthResponse
	loginResp    *dto.AuthResponse
	profileResp  *dto.ProfileResponse
	err          error
	profileErr   error

	eligibility    models.Eligibility
	eligibilityErr error
	status         models.StudentStatus
	statusErr      error
	room           models.RoomInfo
	roomErr        error

	hostels    []models.Hostel
	hostelsErr error
	stats      map[string]models.HostelStats

	submitErr   error
	submitGate  chan struct{}
	submitted   []dto.SubmitChoicesRequest
	paidUpdates []bool

	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), stats: make(map[string]models.HostelStats)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	f.record("Register")
	return f.registerResp, f.err
}

func (f *fakeAPI) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	f.record("Login")
	return f.loginResp, f.err
}

func (f *fakeAPI) GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error) {
	f.record("GetProfile")
	return f.profileResp, f.profileErr
}

func (f *fakeAPI) GetEligibility(ctx context.Context, id string) (models.Eligibility, error) {
	f.record("GetEligibility")
	return f.eligibility, f.eligibilityErr
}

func (f *fakeAPI) GetStatus(ctx context.Context, id string) (models.StudentStatus, error) {
	f.record("GetStatus")
	return f.status, f.statusErr
}

func (f *fakeAPI) GetRoomInfo(ctx context.Context, id string) (models.RoomInfo, error) {
	f.record("GetRoomInfo")
	return f.room, f.roomErr
}

func (f *fakeAPI) ListHostels(ctx context.Context, gender models.Gender, campus string) ([]models.Hostel, error) {
	f.record("ListHostels")
	return f.hostels, f.hostelsErr
}

func (f *fakeAPI) ListRooms(ctx context.Context, hostelID string) ([]models.Room, error) {
	f.record("ListRooms")
	return []models.Room{{ID: hostelID + "-A01", Name: "A01", Capacity: 4}}, nil
}

func (f *fakeAPI) GetHostelStats(ctx context.Context, hostelID string) (models.HostelStats, error) {
	f.record("GetHostelStats")
	return f.stats[hostelID], nil
}

func (f *fakeAPI) SubmitChoices(ctx context.Context, id string, req dto.SubmitChoicesRequest) (*dto.SuccessResponse, error) {
	f.record("SubmitChoices")
	if f.submitGate != nil {
		<-f.submitGate
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, req)
	f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &dto.SuccessResponse{Success: true, Message: "Hostel choices submitted successfully"}, nil
}

func (f *fakeAPI) UpdatePaymentStatus(ctx context.Context, id string, paid bool) (*dto.SuccessResponse, error) {
	f.record("UpdatePaymentStatus")
	f.mu.Lock()
	f.paidUpdates = append(f.paidUpdates, paid)
	f.mu.Unlock()
	return &dto.SuccessResponse{Success: true}, f.err
}
