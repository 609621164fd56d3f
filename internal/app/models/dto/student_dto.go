package dto

import "github.com/yigit/hostelportal/internal/app/models"

// ProfileResponse is returned by GET /student/profile
type ProfileResponse struct {
	Success bool            `json:"success"`
	Student *StudentPayload `json:"student,omitempty"`
}

// PaymentStatusRequest updates whether a student has paid
type PaymentStatusRequest struct {
	PaidStatus *bool `json:"paidStatus" binding:"required"`
}

// EligibilityStatusRequest updates whether the office lets a student apply
type EligibilityStatusRequest struct {
	EligibleStatus *bool `json:"eligibleStatus" binding:"required"`
}

// PaymentEvidenceForm is the verify-payment form before it is checked
type PaymentEvidenceForm struct {
	TransactionRef string `json:"transactionRef" validate:"required,txref"`
	PaymentDate    string `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string `json:"paymentMethod" validate:"required,oneof=bank_transfer card bank_deposit ussd"`
	ReceiptPath    string `json:"receiptPath" validate:"required"`
}

// SubmitChoicesRequest carries all three ranks. A nil pointer encodes as JSON
// null so the backend can tell "no third choice" from a missing field.
type SubmitChoicesRequest struct {
	Choice1ID *string `json:"choice1Id"`
	Choice2ID *string `json:"choice2Id"`
	Choice3ID *string `json:"choice3Id"`
}

// NewSubmitChoicesRequest maps a rank-indexed selection onto the payload
func NewSubmitChoicesRequest(choices [models.RankCount]models.HostelChoice) SubmitChoicesRequest {
	var ids [models.RankCount]*string
	for _, c := range choices {
		if !c.Rank.Valid() || c.Hostel == nil {
			continue
		}
		id := c.Hostel.ID
		ids[c.Rank] = &id
	}
	return SubmitChoicesRequest{
		Choice1ID: ids[models.RankFirst],
		Choice2ID: ids[models.RankSecond],
		Choice3ID: ids[models.RankThird],
	}
}

// IDs returns the payload as a rank-indexed array
func (r SubmitChoicesRequest) IDs() [models.RankCount]*string {
	return [models.RankCount]*string{r.Choice1ID, r.Choice2ID, r.Choice3ID}
}

// RoomInfoResponse wraps the allocation under data
type RoomInfoResponse struct {
	Success bool             `json:"success"`
	Data    *models.RoomInfo `json:"data"`
}
