package models

// Student is the identity held in the session after login or registration
type Student struct {
	ID         string `json:"id"`        // Backend UUID, scopes eligibility and submission
	Name       string `json:"name"`      // Full name
	StudentID  string `json:"studentId"` // Registration number used to log in
	Department string `json:"department"`
	Faculty    string `json:"faculty"`
	Campus     string `json:"campus"`
	Gender     Gender `json:"gender"`
	Level      string `json:"level"` // 100, 200, 300, 400, 500
}

// Merge returns a copy of s with the non-empty fields of update applied
func (s Student) Merge(update Student) Student {
	merged := s
	if update.ID != "" {
		merged.ID = update.ID
	}
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.StudentID != "" {
		merged.StudentID = update.StudentID
	}
	if update.Department != "" {
		merged.Department = update.Department
	}
	if update.Faculty != "" {
		merged.Faculty = update.Faculty
	}
	if update.Campus != "" {
		merged.Campus = update.Campus
	}
	if update.Gender != "" {
		merged.Gender = update.Gender
	}
	if update.Level != "" {
		merged.Level = update.Level
	}
	return merged
}

// StudentStatus is the application progress reported by the backend
type StudentStatus struct {
	HasPaid             bool   `json:"has_paid"`
	HasSubmittedChoices bool   `json:"has_submitted_choices"`
	RoomAllocated       bool   `json:"room_allocated"`
	ApplicationDate     string `json:"application_date,omitempty"`
	PaymentDate         string `json:"payment_date,omitempty"`
}
