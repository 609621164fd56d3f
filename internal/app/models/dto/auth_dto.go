package dto

import "github.com/yigit/hostelportal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required" validate:"required"`
	Password  string `json:"password" binding:"required" validate:"required"`
}

// RegisterForm is what the student fills in across the registration steps.
// ConfirmPassword is checked locally and never sent.
type RegisterForm struct {
	// Step 1: account
	Name            string `json:"name" validate:"required,min=2,max=100"`
	StudentID       string `json:"studentId" validate:"required,identifier"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	// Step 2: academics
	Faculty     string `json:"faculty" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Level       string `json:"level" validate:"omitempty,oneof=100 200 300 400 500"`
	Campus      string `json:"campus" validate:"required"`
	StudentType string `json:"student_type"`
	// Step 3: personal
	Gender             string `json:"gender" validate:"required,oneof=Male Female"`
	AccessibilityNeeds string `json:"accessibilityNeeds"`
}

// ToRequest drops the confirmation field
func (f RegisterForm) ToRequest() RegisterRequest {
	return RegisterRequest{
		Name:               f.Name,
		StudentID:          f.StudentID,
		Password:           f.Password,
		Faculty:            f.Faculty,
		Department:         f.Department,
		Level:              f.Level,
		Campus:             f.Campus,
		StudentType:        f.StudentType,
		Gender:             f.Gender,
		AccessibilityNeeds: f.AccessibilityNeeds,
	}
}

// RegisterRequest represents the registration payload sent to the backend
type RegisterRequest struct {
	Name               string `json:"name" binding:"required"`
	StudentID          string `json:"studentId" binding:"required"`
	Password           string `json:"password" binding:"required,min=6"`
	Faculty            string `json:"faculty" binding:"required"`
	Department         string `json:"department" binding:"required"`
	Level              string `json:"level"`
	Campus             string `json:"campus" binding:"required"`
	StudentType        string `json:"student_type"`
	Gender             string `json:"gender" binding:"required"`
	AccessibilityNeeds string `json:"accessibilityNeeds"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token,omitempty"`
	Student *StudentPayload `json:"student,omitempty"`
}

// StudentPayload is the student object as the backend sends it. Older
// deployments use fullName and student_id, so both spellings are accepted.
type StudentPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
	StudentIDAlt string `json:"student_id,omitempty"`
	Department   string `json:"department"`
	Faculty      string `json:"faculty"`
	Campus       string `json:"campus"`
	Gender       string `json:"gender"`
	Level        string `json:"level"`
}

// NewStudentPayload converts a model into its wire form
func NewStudentPayload(s models.Student) *StudentPayload {
	return &StudentPayload{
		ID:         s.ID,
		Name:       s.Name,
		StudentID:  s.StudentID,
		Department: s.Department,
		Faculty:    s.Faculty,
		Campus:     s.Campus,
		Gender:     string(s.Gender),
		Level:      s.Level,
	}
}

// ToModel normalises the payload
func (p StudentPayload) ToModel() models.Student {
	s := models.Student{
		ID:         p.ID,
		Name:       p.Name,
		StudentID:  p.StudentID,
		Department: p.Department,
		Faculty:    p.Faculty,
		Campus:     p.Campus,
		Gender:     models.Gender(p.Gender),
		Level:      p.Level,
	}
	if s.Name == "" {
		s.Name = p.FullName
	}
	if s.StudentID == "" {
		s.StudentID = p.StudentIDAlt
	}
	if g, err := models.ParseGender(p.Gender); err == nil {
		s.Gender = g
	}
	return s
}
