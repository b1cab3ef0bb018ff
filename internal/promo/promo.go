package promo

import (
	"context"

	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"
)

// One recognized code: SAVE10, 10 percent off. Invalid codes are a normal
// outcome, not an error; the Result carries the reason.
const (
	Save10Code     = "SAVE10"
	save10Percent  = 10
	discountTypePercent = "PERCENT"
)

const (
	ReasonValid       = "Valid promo code"
	ReasonInvalidCode = "Invalid promo code."
	ReasonAlreadyUsed = "This promo code has already been used."
)

type Result struct {
	Valid          bool    `json:"valid"`
	Type           string  `json:"type,omitempty"`
	Value          float64 `json:"value,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	Total          float64 `json:"total"`
	Reason         string  `json:"reason,omitempty"`
}

// BookingReader is the booking store read path used for reuse detection.
type BookingReader interface {
	FindByEmail(ctx context.Context, email string) ([]*model.Booking, error)
}

type PromoService interface {
	Validate(ctx context.Context, code string, subtotal float64, userEmail string) (*Result, error)
}

type promoService struct {
	bookings BookingReader
	log      *logger.Logger
}

func NewPromoService(bookings BookingReader, log *logger.Logger) PromoService {
	return &promoService{
		bookings: bookings,
		log:      log,
	}
}

func (s *promoService) Validate(ctx context.Context, code string, subtotal float64, userEmail string) (*Result, error) {
	if subtotal < 0 {
		return nil, apperrors.InvalidInput("Subtotal cannot be negative")
	}

	normalized := sanitizer.NormalizePromoCode(code)
	if normalized != Save10Code {
		return &Result{
			Valid:  false,
			Total:  subtotal,
			Reason: ReasonInvalidCode,
		}, nil
	}

	if userEmail != "" {
		used, err := s.hasUsedCode(ctx, sanitizer.NormalizeEmail(userEmail), normalized)
		if err != nil {
			return nil, apperrors.Internal("Failed to check promo code usage", err)
		}
		if used {
			return &Result{
				Valid:  false,
				Total:  subtotal,
				Reason: ReasonAlreadyUsed,
			}, nil
		}
	}

	discountAmount := subtotal * save10Percent / 100
	return &Result{
		Valid:          true,
		Type:           discountTypePercent,
		Value:          save10Percent,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
		Reason:         ReasonValid,
	}, nil
}

// hasUsedCode scans the user's bookings for a prior use of the code.
// Cancelled bookings do not count; the refund gives the code back too.
func (s *promoService) hasUsedCode(ctx context.Context, email, code string) (bool, error) {
	bookings, err := s.bookings.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	for _, b := range bookings {
		if b.Status == model.BookingCancelled {
			continue
		}
		if sanitizer.NormalizePromoCode(b.PromoCode) == code {
			return true, nil
		}
	}
	return false, nil
}
