package service

import (
	"context"
	"errors"
	"strings"

	bookingserrors "bookit/internal/bookings/errors"
	"bookit/internal/bookings/repository"
	"bookit/internal/bookings/validator"
	"bookit/internal/catalog"
	"bookit/internal/events"
	"bookit/internal/promo"
	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"

	"github.com/google/uuid"
)

type BookingService interface {
	Checkout(ctx context.Context, input *model.CheckoutInput) (*model.CheckoutResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}

// Wallet is the slice of the wallet service checkout needs.
type Wallet interface {
	Debit(ctx context.Context, email string, amount float64) error
	Credit(ctx context.Context, email string, amount float64) error
}

// PromoValidator re-validates promo codes at checkout time.
type PromoValidator interface {
	Validate(ctx context.Context, code string, subtotal float64, userEmail string) (*promo.Result, error)
}

// FaultHook runs between the seat reservation and the wallet debit.
// Returning an error aborts the checkout with its seats released. Tests
// install deterministic hooks; production leaves it nil.
type FaultHook func(input *model.CheckoutInput) error

type bookingService struct {
	store     *catalog.Store
	repo      repository.BookingRepository
	wallet    Wallet
	promo     PromoValidator
	publisher events.Publisher
	validator *validator.CheckoutValidator
	faultHook FaultHook
	cfg       *config.Config
}

func NewBookingService(
	store *catalog.Store,
	repo repository.BookingRepository,
	wallet Wallet,
	promoValidator PromoValidator,
	publisher events.Publisher,
	checkoutValidator *validator.CheckoutValidator,
	faultHook FaultHook,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		store:     store,
		repo:      repo,
		wallet:    wallet,
		promo:     promoValidator,
		publisher: publisher,
		validator: checkoutValidator,
		faultHook: faultHook,
		cfg:       cfg,
	}
}

// Checkout runs the whole booking pipeline: validate, price, reserve
// seats, debit the wallet, persist. Every step after the reservation
// compensates on failure so no failure path leaves seats held or money
// taken. With BookingID set it edits in place, crediting back the seats
// the booking already holds on its slot.
func (s *bookingService) Checkout(ctx context.Context, input *model.CheckoutInput) (*model.CheckoutResult, error) {
	s.sanitize(input)

	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Checkout validation failed", "error", err)
		return nil, apperrors.Validation("Invalid input data.", map[string]any{"error": err.Error()})
	}

	exp, err := s.store.ExperienceByID(input.ExperienceID)
	if err != nil {
		return nil, apperrors.NotFound("Experience")
	}

	var existing *model.Booking
	if input.BookingID != "" {
		existing, err = s.findConfirmed(ctx, input.BookingID)
		if err != nil {
			return nil, err
		}
	}

	guests := input.NumGuests()
	subtotal := float64(guests) * exp.PricePerHead

	discount, err := s.resolveDiscount(ctx, input, existing, subtotal)
	if err != nil {
		return nil, err
	}
	total := subtotal - discount

	// An edit keeps its own hold on the same slot; the capacity check
	// must not count those seats as taken.
	heldSeats := 0
	if existing != nil && existing.SlotID == input.SlotID {
		heldSeats = existing.NumGuests()
	}

	if _, err := s.store.Reserve(input.SlotID, input.ExperienceID, guests, heldSeats); err != nil {
		return nil, mapReserveError(err)
	}

	if s.faultHook != nil {
		if hookErr := s.faultHook(input); hookErr != nil {
			s.undoReserve(input.SlotID, input.ExperienceID, guests, heldSeats)
			return nil, apperrors.AsAppError(hookErr)
		}
	}

	// Settle the wallet: full total on create, the difference on edit.
	charge := total
	if existing != nil {
		charge = total - existing.Total
	}
	if err := s.settleWallet(ctx, input.Email, charge); err != nil {
		s.undoReserve(input.SlotID, input.ExperienceID, guests, heldSeats)
		return nil, err
	}

	booking := s.buildBooking(input, existing, subtotal, discount, total)

	if err := s.persist(ctx, booking, existing); err != nil {
		s.settleWalletBestEffort(ctx, input.Email, -charge)
		s.undoReserve(input.SlotID, input.ExperienceID, guests, heldSeats)
		return nil, err
	}

	// Seats on the old slot come back once the move is durable.
	if existing != nil && existing.SlotID != input.SlotID {
		if _, err := s.store.Release(existing.SlotID, existing.NumGuests()); err != nil {
			s.cfg.Log.Error("Failed to release seats on previous slot",
				"booking_id", booking.ID, "slot_id", existing.SlotID, "error", err)
		}
	}

	s.publish(ctx, booking, existing != nil)

	s.cfg.Log.Info("Checkout completed",
		"booking_id", booking.ID,
		"experience_id", booking.ExperienceID,
		"slot_id", booking.SlotID,
		"guests", guests,
		"total", total,
		"edited", existing != nil,
	)

	return &model.CheckoutResult{
		Booking:          booking,
		ConfirmationCode: ConfirmationCode(booking.ID),
		Total:            booking.Total,
		Edited:           existing != nil,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Cancel marks the booking CANCELLED, refunds the paid total to the
// traveller's wallet and returns the held seats to the slot.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.BookingCancelled {
		return nil, apperrors.Conflict("Booking is already cancelled")
	}

	cancelled := *booking
	cancelled.Status = model.BookingCancelled
	if err := s.repo.Update(ctx, id, &cancelled); err != nil {
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	if err := s.wallet.Credit(ctx, booking.Email, booking.Total); err != nil {
		s.cfg.Log.Error("Failed to refund wallet on cancellation",
			"booking_id", id, "email", booking.Email, "amount", booking.Total, "error", err)
	}

	if _, err := s.store.Release(booking.SlotID, booking.NumGuests()); err != nil {
		s.cfg.Log.Error("Failed to restore seats on cancellation",
			"booking_id", id, "slot_id", booking.SlotID, "error", err)
	}

	s.publishEvent(ctx, events.TypeBookingCancelled, &cancelled)

	s.cfg.Log.Info("Booking cancelled", "booking_id", id, "refund", booking.Total)
	return &cancelled, nil
}

// --- Helpers ---

// ConfirmationCode derives the user-facing code from the booking id:
// the last 8 characters, uppercased.
func ConfirmationCode(bookingID string) string {
	if len(bookingID) <= 8 {
		return strings.ToUpper(bookingID)
	}
	return strings.ToUpper(bookingID[len(bookingID)-8:])
}

func (s *bookingService) sanitize(input *model.CheckoutInput) {
	input.Name = sanitizer.NormalizeName(input.Name)
	input.Email = sanitizer.NormalizeEmail(input.Email)
	if phone := sanitizer.NormalizePhone(input.Phone); phone != "" {
		input.Phone = phone
	}
	input.PromoCode = sanitizer.NormalizePromoCode(input.PromoCode)
}

func (s *bookingService) findConfirmed(ctx context.Context, id string) (*model.Booking, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to load booking for editing", err)
	}
	if existing.Status != model.BookingConfirmed {
		return nil, apperrors.Conflict("Only confirmed bookings can be modified")
	}
	return existing, nil
}

// resolveDiscount re-validates the promo code server-side. An edit that
// keeps its own code skips the reuse scan; the scan would find the very
// booking being edited.
func (s *bookingService) resolveDiscount(ctx context.Context, input *model.CheckoutInput, existing *model.Booking, subtotal float64) (float64, error) {
	if input.PromoCode == "" {
		return 0, nil
	}

	reuseEmail := input.Email
	if existing != nil && sanitizer.NormalizePromoCode(existing.PromoCode) == input.PromoCode {
		reuseEmail = ""
	}

	result, err := s.promo.Validate(ctx, input.PromoCode, subtotal, reuseEmail)
	if err != nil {
		return 0, err
	}
	if !result.Valid {
		return 0, apperrors.InvalidInput(result.Reason)
	}
	return result.DiscountAmount, nil
}

func mapReserveError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrInsufficientCapacity):
		return apperrors.InsufficientCapacity("Insufficient seats for this booking.")
	case errors.Is(err, catalog.ErrSlotNotFound), errors.Is(err, catalog.ErrSlotMismatch):
		return apperrors.NotFound("Invalid experience or slot")
	default:
		return apperrors.Internal("Failed to reserve seats", err)
	}
}

// undoReserve restores the slot to its pre-Reserve state. A plain create
// releases the seats it took; an edit that shrank its hold takes the
// freed seats back.
func (s *bookingService) undoReserve(slotID, experienceID string, guests, heldSeats int) {
	net := guests - heldSeats
	switch {
	case net > 0:
		if _, err := s.store.Release(slotID, net); err != nil {
			s.cfg.Log.Error("Failed to release seats during compensation", "slot_id", slotID, "error", err)
		}
	case net < 0:
		if _, err := s.store.Reserve(slotID, experienceID, -net, 0); err != nil {
			s.cfg.Log.Error("Failed to re-take seats during compensation", "slot_id", slotID, "error", err)
		}
	}
}

// settleWallet debits positive amounts and credits negative ones.
func (s *bookingService) settleWallet(ctx context.Context, email string, amount float64) error {
	if amount > 0 {
		return s.wallet.Debit(ctx, email, amount)
	}
	if amount < 0 {
		return s.wallet.Credit(ctx, email, -amount)
	}
	return nil
}

func (s *bookingService) settleWalletBestEffort(ctx context.Context, email string, amount float64) {
	if err := s.settleWallet(ctx, email, amount); err != nil {
		s.cfg.Log.Error("Failed to reverse wallet settlement during compensation",
			"email", email, "amount", amount, "error", err)
	}
}

func (s *bookingService) buildBooking(input *model.CheckoutInput, existing *model.Booking, subtotal, discount, total float64) *model.Booking {
	booking := &model.Booking{
		ID:           input.BookingID,
		ExperienceID: input.ExperienceID,
		SlotID:       input.SlotID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Adults:       input.Adults,
		Children:     input.Children,
		Infants:      input.Infants,
		PromoCode:    input.PromoCode,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		Status:       model.BookingConfirmed,
	}

	if existing == nil {
		booking.ID = uuid.NewString()
	} else {
		booking.CreatedAt = existing.CreatedAt
	}

	return booking
}

func (s *bookingService) persist(ctx context.Context, booking *model.Booking, existing *model.Booking) error {
	if existing == nil {
		if err := s.repo.Create(ctx, booking); err != nil {
			return apperrors.Internal("Failed to store booking", err)
		}
		return nil
	}

	if err := s.repo.Update(ctx, booking.ID, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", booking.ID)
		}
		return apperrors.Internal("Failed to update booking", err)
	}
	return nil
}

func (s *bookingService) publish(ctx context.Context, booking *model.Booking, edited bool) {
	eventType := events.TypeBookingCreated
	if edited {
		eventType = events.TypeBookingUpdated
	}
	s.publishEvent(ctx, eventType, booking)
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType, "booking_id", booking.ID, "error", err)
	}
}
