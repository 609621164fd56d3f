package dto

import (
	"bytes"
	"encoding/json"

	"github.com/yigit/hostelportal/internal/app/models"
)

// HostelList decodes either a bare array or {"hostels": [...]}
type HostelList []models.Hostel

// UnmarshalJSON implements json.Unmarshaler
func (l *HostelList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var hostels []models.Hostel
		if err := json.Unmarshal(data, &hostels); err != nil {
			return err
		}
		*l = hostels
		return nil
	}
	var wrapped struct {
		Hostels []models.Hostel `json:"hostels"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Hostels
	return nil
}

// HostelListResponse is what the mock backend sends for GET /hostels
type HostelListResponse struct {
	Success bool            `json:"success"`
	Hostels []models.Hostel `json:"hostels"`
}

// RoomListResponse is returned by GET /hostels/:id/rooms
type RoomListResponse struct {
	Success bool          `json:"success"`
	Rooms   []models.Room `json:"rooms"`
}

// HostelStatsResponse is returned by GET /hostels/:id/stats
type HostelStatsResponse struct {
	Success bool               `json:"success"`
	Stats   models.HostelStats `json:"stats"`
}
