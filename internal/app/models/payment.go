package models

import "time"

// PaymentMethod is how a student paid the accommodation fee
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
	PaymentBankDeposit  PaymentMethod = "bank_deposit"
	PaymentUSSD         PaymentMethod = "ussd"
)

// FeeSummary is the amount due for accommodation, in naira
type FeeSummary struct {
	AccommodationFee int64
	ServiceFee       int64
}

// Total returns the amount the student must pay
func (f FeeSummary) Total() int64 {
	return f.AccommodationFee + f.ServiceFee
}

// PaymentEvidence is what a student provides to have a payment verified
type PaymentEvidence struct {
	TransactionRef string
	PaymentDate    time.Time
	Amount         int64
	Method         PaymentMethod
	ReceiptPath    string
	ReceiptMIME    string
	ReceiptSize    int64
}
