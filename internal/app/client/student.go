package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
)

// Register creates a student account
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/student/register", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token and the student's profile
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/student/login", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile fetches the profile for a registration number
func (c *Client) GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error) {
	var resp dto.ProfileResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/student/profile",
		query:  url.Values{"id": []string{studentID}},
		auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePaymentStatus records whether the student has paid
func (c *Client) UpdatePaymentStatus(ctx context.Context, id string, paid bool) (*dto.SuccessResponse, error) {
	var resp dto.SuccessResponse
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/student/payment-status/" + url.PathEscape(id),
		body:   dto.PaymentStatusRequest{PaidStatus: &paid},
		auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEligibility asks whether the student may submit hostel choices
func (c *Client) GetEligibility(ctx context.Context, id string) (models.Eligibility, error) {
	var resp models.Eligibility
	err := c.do(ctx, request{method: http.MethodGet, path: studentPath(id, "/eligibility"), auth: true}, &resp)
	return resp, err
}

// GetStatus fetches the student's application progress
func (c *Client) GetStatus(ctx context.Context, id string) (models.StudentStatus, error) {
	var resp models.StudentStatus
	err := c.do(ctx, request{method: http.MethodGet, path: studentPath(id, "/status"), auth: true}, &resp)
	return resp, err
}

// SubmitChoices sends the ranked hostel choices. The backend treats this as
// irreversible.
func (c *Client) SubmitChoices(ctx context.Context, id string, req dto.SubmitChoicesRequest) (*dto.SuccessResponse, error) {
	var resp dto.SuccessResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   studentPath(id, "/submit-choices"),
		body:   req,
		auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRoomInfo returns the allocated room; the zero RoomInfo means none yet
func (c *Client) GetRoomInfo(ctx context.Context, id string) (models.RoomInfo, error) {
	var resp dto.RoomInfoResponse
	err := c.do(ctx, request{method: http.MethodGet, path: studentPath(id, "/room-info"), auth: true}, &resp)
	if err != nil || resp.Data == nil {
		return models.RoomInfo{}, err
	}
	return *resp.Data, nil
}
