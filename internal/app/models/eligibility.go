package models

// Eligibility is the server's answer to whether a student may submit choices.
// It is fetched on every visit and never cached.
type Eligibility struct {
	IsEligible       bool `json:"is_eligible"`
	HasPaid          bool `json:"has_paid"`
	AlreadySubmitted bool `json:"already_submitted"`
}

// AllowsSubmission is true only for eligible, paid, not yet submitted students
func (e Eligibility) AllowsSubmission() bool {
	return e.IsEligible && e.HasPaid && !e.AlreadySubmitted
}
