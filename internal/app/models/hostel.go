package models

// Hostel is read-only reference data offered to a student
type Hostel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
	Campus string `json:"campus"`
}

// HostelChoice is a rank and the hostel assigned to it, if any
type HostelChoice struct {
	Rank   Rank
	Hostel *Hostel
}

// Filled reports whether a hostel is assigned to the rank
func (c HostelChoice) Filled() bool {
	return c.Hostel != nil
}

// Room is a bookable room inside a hostel
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BlockName string `json:"block_name"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
}

// Available reports whether the room has a free bed
func (r Room) Available() bool {
	return r.Occupied < r.Capacity
}

// HostelStats summarises occupancy of a hostel
type HostelStats struct {
	HostelID      string `json:"hostel_id"`
	TotalRooms    int    `json:"total_rooms"`
	TotalBeds     int    `json:"total_beds"`
	OccupiedBeds  int    `json:"occupied_beds"`
	AvailableBeds int    `json:"available_beds"`
}

// RoomInfo is the allocation the backend assigned to a student
type RoomInfo struct {
	HostelName string `json:"hostel_name"`
	BlockName  string `json:"block_name"`
	RoomName   string `json:"room_name"`
}

// Allocated reports whether the backend returned a room
func (r RoomInfo) Allocated() bool {
	return r.RoomName != ""
}
