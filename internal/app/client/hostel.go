package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
)

// ListHostels returns the hostels offered for a gender and campus
func (c *Client) ListHostels(ctx context.Context, gender models.Gender, campus string) ([]models.Hostel, error) {
	query := url.Values{}
	query.Set("gender", string(gender))
	query.Set("campus", campus)

	var list dto.HostelList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/hostels", query: query, auth: true}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListRooms returns the rooms of a hostel
func (c *Client) ListRooms(ctx context.Context, hostelID string) ([]models.Room, error) {
	var resp dto.RoomListResponse
	path := "/hostels/" + url.PathEscape(hostelID) + "/rooms"
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// GetHostelStats returns occupancy figures for a hostel
func (c *Client) GetHostelStats(ctx context.Context, hostelID string) (models.HostelStats, error) {
	var resp dto.HostelStatsResponse
	path := "/hostels/" + url.PathEscape(hostelID) + "/stats"
	err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &resp)
	return resp.Stats, err
}
