package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookit/internal/bookings/repository"
	"bookit/internal/bookings/validator"
	"bookit/internal/catalog"
	"bookit/internal/events"
	"bookit/internal/promo"
	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

type mockWallet struct {
	debitFunc  func(ctx context.Context, email string, amount float64) error
	creditFunc func(ctx context.Context, email string, amount float64) error
}

func (m *mockWallet) Debit(ctx context.Context, email string, amount float64) error {
	if m.debitFunc != nil {
		return m.debitFunc(ctx, email, amount)
	}
	return nil
}

func (m *mockWallet) Credit(ctx context.Context, email string, amount float64) error {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, email, amount)
	}
	return nil
}

type mockPromo struct {
	validateFunc func(ctx context.Context, code string, subtotal float64, userEmail string) (*promo.Result, error)
}

func (m *mockPromo) Validate(ctx context.Context, code string, subtotal float64, userEmail string) (*promo.Result, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, code, subtotal, userEmail)
	}
	return &promo.Result{Valid: true, DiscountAmount: subtotal * 0.10, Total: subtotal * 0.90}, nil
}

type failingRepo struct {
	repository.BookingRepository
	createErr error
}

func (r *failingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.BookingRepository.Create(ctx, booking)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:               logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"}),
		MaxGuestsPerOrder: 10,
	}
}

type fixture struct {
	svc    BookingService
	store  *catalog.Store
	repo   repository.BookingRepository
	wallet *mockWallet
}

func newFixture(t *testing.T, opts ...func(*fixtureOpts)) *fixture {
	t.Helper()

	o := &fixtureOpts{
		wallet: &mockWallet{},
		promo:  &mockPromo{},
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg := testConfig(t)
	experiences, slots := catalog.Seed(3, 12, time.Now())
	store := catalog.NewStore(experiences, slots)

	repo := o.repo
	if repo == nil {
		repo = repository.NewMemoryBookingRepository()
	}

	svc := NewBookingService(
		store,
		repo,
		o.wallet,
		o.promo,
		events.NoopPublisher{},
		validator.NewCheckoutValidator(cfg.MaxGuestsPerOrder, cfg.Log),
		o.faultHook,
		cfg,
	)

	return &fixture{svc: svc, store: store, repo: repo, wallet: o.wallet}
}

type fixtureOpts struct {
	wallet    *mockWallet
	promo     *mockPromo
	repo      repository.BookingRepository
	faultHook FaultHook
}

func validInput() *model.CheckoutInput {
	return &model.CheckoutInput{
		ExperienceID: "exp-01",
		SlotID:       "exp-01-slot-1",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "+919876543210",
		Adults:       2,
		Children:     1,
	}
}

func slotRemaining(t *testing.T, store *catalog.Store, slotID string) int {
	t.Helper()
	slot, err := store.SlotByID(slotID)
	if err != nil {
		t.Fatalf("SlotByID(%s): %v", slotID, err)
	}
	return slot.Remaining
}

func TestCheckout_Success(t *testing.T) {
	var debited float64
	f := newFixture(t, func(o *fixtureOpts) {
		o.wallet.debitFunc = func(_ context.Context, _ string, amount float64) error {
			debited = amount
			return nil
		}
	})

	result, err := f.svc.Checkout(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if result.Booking.Status != model.BookingConfirmed {
		t.Errorf("Status = %s, want %s", result.Booking.Status, model.BookingConfirmed)
	}
	if result.Edited {
		t.Error("Edited = true on a fresh booking")
	}
	if result.Booking.Subtotal != result.Booking.Total {
		t.Errorf("Total = %v without a promo, want subtotal %v", result.Booking.Total, result.Booking.Subtotal)
	}
	if debited != result.Booking.Total {
		t.Errorf("debited %v, want %v", debited, result.Booking.Total)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 9 {
		t.Errorf("Remaining = %d after booking 3 guests, want 9", got)
	}

	stored, err := f.repo.FindByID(context.Background(), result.Booking.ID)
	if err != nil {
		t.Fatalf("FindByID after checkout: %v", err)
	}
	if stored.Email != "asha@example.com" {
		t.Errorf("stored Email = %s", stored.Email)
	}
}

func TestCheckout_ConfirmationCode(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Checkout(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	id := result.Booking.ID
	want := ConfirmationCode(id)
	if result.ConfirmationCode != want {
		t.Errorf("ConfirmationCode = %s, want %s", result.ConfirmationCode, want)
	}
	if len(result.ConfirmationCode) != 8 {
		t.Errorf("code length = %d, want 8", len(result.ConfirmationCode))
	}
	if result.ConfirmationCode != ConfirmationCode(id) {
		t.Error("confirmation code is not deterministic for the id")
	}
}

func TestCheckout_PromoApplied(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.PromoCode = "save10"

	result, err := f.svc.Checkout(context.Background(), input)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	wantDiscount := result.Booking.Subtotal * 0.10
	if result.Booking.Discount != wantDiscount {
		t.Errorf("Discount = %v, want %v", result.Booking.Discount, wantDiscount)
	}
	if result.Booking.Total != result.Booking.Subtotal-wantDiscount {
		t.Errorf("Total = %v, want %v", result.Booking.Total, result.Booking.Subtotal-wantDiscount)
	}
	if result.Booking.PromoCode != "SAVE10" {
		t.Errorf("PromoCode = %s, want normalized SAVE10", result.Booking.PromoCode)
	}
}

func TestCheckout_InvalidPromoRejected(t *testing.T) {
	f := newFixture(t, func(o *fixtureOpts) {
		o.promo.validateFunc = func(_ context.Context, _ string, _ float64, _ string) (*promo.Result, error) {
			return &promo.Result{Valid: false, Reason: promo.ReasonInvalidCode}, nil
		}
	})

	input := validInput()
	input.PromoCode = "NOPE"

	_, err := f.svc.Checkout(context.Background(), input)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("Remaining = %d, seats must not be touched before validation", got)
	}
}

func TestCheckout_InsufficientBalanceReleasesSeats(t *testing.T) {
	f := newFixture(t, func(o *fixtureOpts) {
		o.wallet.debitFunc = func(_ context.Context, _ string, _ float64) error {
			return apperrors.InsufficientBalance("Insufficient wallet balance")
		}
	})

	_, err := f.svc.Checkout(context.Background(), validInput())
	if !apperrors.HasCode(err, apperrors.CodeInsufficientBalance) {
		t.Fatalf("err = %v, want INSUFFICIENT_BALANCE", err)
	}

	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("Remaining = %d after failed debit, want 12", got)
	}

	bookings, err := f.repo.FindByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("got %d stored bookings after failed checkout, want 0", len(bookings))
	}
}

func TestCheckout_FaultHookAborts(t *testing.T) {
	f := newFixture(t, func(o *fixtureOpts) {
		o.faultHook = func(_ *model.CheckoutInput) error {
			return apperrors.Conflict("This slot was just booked. Please try another.")
		}
	})

	_, err := f.svc.Checkout(context.Background(), validInput())
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("Remaining = %d after aborted checkout, want 12", got)
	}
}

func TestCheckout_PersistFailureCompensates(t *testing.T) {
	var credited float64
	f := newFixture(t, func(o *fixtureOpts) {
		o.repo = &failingRepo{
			BookingRepository: repository.NewMemoryBookingRepository(),
			createErr:         errors.New("disk full"),
		}
		o.wallet.creditFunc = func(_ context.Context, _ string, amount float64) error {
			credited = amount
			return nil
		}
	})

	_, err := f.svc.Checkout(context.Background(), validInput())
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Fatalf("err = %v, want INTERNAL_ERROR", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("Remaining = %d after failed persist, want 12", got)
	}
	if credited == 0 {
		t.Error("wallet was not refunded after failed persist")
	}
}

func TestCheckout_InsufficientCapacity(t *testing.T) {
	f := newFixture(t)

	// Drain the slot to 2 remaining seats.
	if _, err := f.store.Reserve("exp-01-slot-1", "exp-01", 10, 0); err != nil {
		t.Fatalf("drain: %v", err)
	}

	_, err := f.svc.Checkout(context.Background(), validInput())
	if !apperrors.HasCode(err, apperrors.CodeInsufficientCapacity) {
		t.Fatalf("err = %v, want INSUFFICIENT_CAPACITY", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 2 {
		t.Errorf("Remaining = %d, want 2 untouched", got)
	}
}

func TestCheckout_ValidationRejectsZeroGuests(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.Adults = 0
	input.Children = 0
	input.Infants = 0

	_, err := f.svc.Checkout(context.Background(), input)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestCheckout_EditSameSlotCreditsHeldSeats(t *testing.T) {
	var charges []float64
	f := newFixture(t, func(o *fixtureOpts) {
		o.wallet.debitFunc = func(_ context.Context, _ string, amount float64) error {
			charges = append(charges, amount)
			return nil
		}
	})
	ctx := context.Background()

	first, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("initial checkout: %v", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 9 {
		t.Fatalf("Remaining = %d after 3 guests, want 9", got)
	}

	// Grow the same booking from 3 guests to 5 on the same slot.
	edit := validInput()
	edit.BookingID = first.Booking.ID
	edit.Adults = 4
	edit.Children = 1

	result, err := f.svc.Checkout(ctx, edit)
	if err != nil {
		t.Fatalf("edit checkout: %v", err)
	}
	if !result.Edited {
		t.Error("Edited = false on an edit")
	}
	if result.Booking.ID != first.Booking.ID {
		t.Errorf("edit changed booking id: %s -> %s", first.Booking.ID, result.Booking.ID)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 7 {
		t.Errorf("Remaining = %d after growing to 5 guests, want 7", got)
	}

	// Second charge is the delta only.
	wantDelta := result.Booking.Total - first.Booking.Total
	if len(charges) != 2 || charges[1] != wantDelta {
		t.Errorf("charges = %v, want second charge %v", charges, wantDelta)
	}
}

func TestCheckout_EditShrinkRefundsDelta(t *testing.T) {
	var refunded float64
	f := newFixture(t, func(o *fixtureOpts) {
		o.wallet.creditFunc = func(_ context.Context, _ string, amount float64) error {
			refunded = amount
			return nil
		}
	})
	ctx := context.Background()

	first, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("initial checkout: %v", err)
	}

	edit := validInput()
	edit.BookingID = first.Booking.ID
	edit.Adults = 1
	edit.Children = 0

	result, err := f.svc.Checkout(ctx, edit)
	if err != nil {
		t.Fatalf("edit checkout: %v", err)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 11 {
		t.Errorf("Remaining = %d after shrinking to 1 guest, want 11", got)
	}

	wantRefund := first.Booking.Total - result.Booking.Total
	if refunded != wantRefund {
		t.Errorf("refunded %v, want %v", refunded, wantRefund)
	}
}

func TestCheckout_EditMovesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("initial checkout: %v", err)
	}

	edit := validInput()
	edit.BookingID = first.Booking.ID
	edit.SlotID = "exp-01-slot-2"

	if _, err := f.svc.Checkout(ctx, edit); err != nil {
		t.Fatalf("edit checkout: %v", err)
	}

	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("old slot Remaining = %d, want 12 restored", got)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-2"); got != 9 {
		t.Errorf("new slot Remaining = %d, want 9", got)
	}
}

func TestCheckout_EditCancelledBookingRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("initial checkout: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, first.Booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	edit := validInput()
	edit.BookingID = first.Booking.ID

	_, err = f.svc.Checkout(ctx, edit)
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT for editing a cancelled booking", err)
	}
}

func TestCancel_RefundsAndRestoresSeats(t *testing.T) {
	var refunded float64
	f := newFixture(t, func(o *fixtureOpts) {
		o.wallet.creditFunc = func(_ context.Context, _ string, amount float64) error {
			refunded = amount
			return nil
		}
	})
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	cancelled, err := f.svc.Cancel(ctx, result.Booking.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != model.BookingCancelled {
		t.Errorf("Status = %s, want %s", cancelled.Status, model.BookingCancelled)
	}
	if refunded != result.Booking.Total {
		t.Errorf("refunded %v, want %v", refunded, result.Booking.Total)
	}
	if got := slotRemaining(t, f.store, "exp-01-slot-1"); got != 12 {
		t.Errorf("Remaining = %d after cancel, want 12", got)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, validInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, result.Booking.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err = f.svc.Cancel(ctx, result.Booking.ID)
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT on double cancel", err)
	}
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), "no-such-booking")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetByEmail_NormalizesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Checkout(ctx, validInput()); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	bookings, err := f.svc.GetByEmail(ctx, "  ASHA@Example.COM ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("got %d bookings, want 1", len(bookings))
	}
}

func TestGetByID_ErrNotFoundMapped(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), "missing")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestConfirmationCode(t *testing.T) {
	if got := ConfirmationCode("4f9d2c3a-1111-2222-3333-abcdef123456"); got != "EF123456" {
		t.Errorf("ConfirmationCode = %s, want EF123456", got)
	}
	if got := ConfirmationCode("short"); got != "SHORT" {
		t.Errorf("ConfirmationCode(short) = %s, want SHORT", got)
	}
}
