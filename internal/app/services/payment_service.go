package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/session"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
	"github.com/yigit/hostelportal/internal/pkg/validation"
)

// Receipt types accepted as payment evidence
var allowedReceiptTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// PaymentService shows the fees and records verified payments
type PaymentService struct {
	api             PaymentAPI
	fees            models.FeeSummary
	maxReceiptBytes int64
	logger          zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(api PaymentAPI, fees models.FeeSummary, maxReceiptBytes int64, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		api:             api,
		fees:            fees,
		maxReceiptBytes: maxReceiptBytes,
		logger:          logger,
	}
}

// Fees returns the amount due
func (s *PaymentService) Fees() models.FeeSummary {
	return s.fees
}

// ValidateEvidence checks the form and the receipt file without touching the
// network. Every problem is reported, not just the first.
func (s *PaymentService) ValidateEvidence(form dto.PaymentEvidenceForm) (models.PaymentEvidence, error) {
	verr := apperrors.NewValidationError()
	if err := validation.Struct(form); err != nil {
		var fieldErrs *apperrors.ValidationError
		if !errors.As(err, &fieldErrs) {
			return models.PaymentEvidence{}, err
		}
		verr.Fields = append(verr.Fields, fieldErrs.Fields...)
	}

	evidence := models.PaymentEvidence{
		TransactionRef: form.TransactionRef,
		Amount:         form.Amount,
		Method:         models.PaymentMethod(form.PaymentMethod),
		ReceiptPath:    form.ReceiptPath,
	}
	if date, err := time.ParseInLocation("2006-01-02", form.PaymentDate, time.Local); err == nil {
		if date.After(time.Now()) {
			verr.Add("paymentDate", "paymentDate cannot be in the future")
		}
		evidence.PaymentDate = date
	}

	if form.ReceiptPath != "" {
		mime, size, msg := s.inspectReceipt(form.ReceiptPath)
		if msg != "" {
			verr.Add("receiptPath", msg)
		}
		evidence.ReceiptMIME = mime
		evidence.ReceiptSize = size
	}

	if err := verr.Err(); err != nil {
		return models.PaymentEvidence{}, err
	}
	return evidence, nil
}

// inspectReceipt returns the detected type and size, or a message describing
// why the file cannot be used
func (s *PaymentService) inspectReceipt(path string) (string, int64, string) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, "Receipt file could not be read"
	}
	if info.IsDir() {
		return "", 0, "Receipt must be a file"
	}
	if info.Size() > s.maxReceiptBytes {
		return "", info.Size(), fmt.Sprintf("File size must be less than %dMB", s.maxReceiptBytes>>20)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return "", info.Size(), "Receipt file could not be read"
	}
	if !mimetype.EqualsAny(mime.String(), allowedReceiptTypes...) {
		return mime.String(), info.Size(), "Receipt must be a JPG, PNG or PDF file"
	}
	return mime.String(), info.Size(), ""
}

// VerifyPayment validates the evidence and then marks the student as paid
func (s *PaymentService) VerifyPayment(ctx context.Context, sess session.Session, form dto.PaymentEvidenceForm) (models.PaymentEvidence, error) {
	evidence, err := s.ValidateEvidence(form)
	if err != nil {
		return models.PaymentEvidence{}, err
	}

	if _, err := s.api.UpdatePaymentStatus(ctx, sess.StudentID(), true); err != nil {
		return models.PaymentEvidence{}, err
	}

	s.logger.Info().
		Str("id", sess.StudentID()).
		Str("transactionRef", evidence.TransactionRef).
		Int64("amount", evidence.Amount).
		Str("receiptType", evidence.ReceiptMIME).
		Msg("Payment verified")
	return evidence, nil
}
