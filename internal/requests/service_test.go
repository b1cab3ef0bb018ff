package requests

import (
	"context"
	"testing"
	"time"

	"bookit/internal/catalog"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

func testService(t *testing.T) RequestService {
	t.Helper()
	experiences, slots := catalog.Seed(2, 12, time.Now())
	store := catalog.NewStore(experiences, slots)
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
	return NewRequestService(NewMemoryCallbackRepository(), NewMemoryMessageRepository(), store, log)
}

func validCallback() *model.CallbackRequest {
	return &model.CallbackRequest{
		ExperienceID: "exp-01",
		Name:         "  ravi   kumar ",
		Email:        "Ravi@Example.com",
		Phone:        "+919876543210",
		City:         "pune",
		Adults:       2,
		Children:     1,
		DateOfTravel: time.Now().AddDate(0, 1, 0),
		Query:        "Looking for a weekend balloon ride for three people.",
	}
}

func validMessage() *model.MessageRequest {
	return &model.MessageRequest{
		ExperienceID: "exp-02",
		Name:         "Meera Shah",
		Email:        "meera@example.com",
		Phone:        "+919812345678",
	}
}

func TestCreateCallback_NormalizesAndDefaults(t *testing.T) {
	svc := testService(t)

	created, err := svc.CreateCallback(context.Background(), validCallback())
	if err != nil {
		t.Fatalf("CreateCallback: %v", err)
	}

	if created.ID == "" {
		t.Error("ID not assigned")
	}
	if created.Status != model.RequestPending {
		t.Errorf("Status = %s, want %s", created.Status, model.RequestPending)
	}
	if created.Email != "ravi@example.com" {
		t.Errorf("Email = %s, want lowercased", created.Email)
	}
	if created.Name != "ravi kumar" {
		t.Errorf("Name = %q, want whitespace collapsed", created.Name)
	}
}

func TestCreateCallback_UnknownExperience(t *testing.T) {
	svc := testService(t)

	req := validCallback()
	req.ExperienceID = "exp-99"

	_, err := svc.CreateCallback(context.Background(), req)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestCreateCallback_ShortQueryRejected(t *testing.T) {
	svc := testService(t)

	req := validCallback()
	req.Query = "hi"

	_, err := svc.CreateCallback(context.Background(), req)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestCallbackStatus_ForwardOnly(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateCallback(ctx, validCallback())
	if err != nil {
		t.Fatalf("CreateCallback: %v", err)
	}

	updated, err := svc.UpdateCallbackStatus(ctx, created.ID, model.RequestContacted)
	if err != nil {
		t.Fatalf("PENDING -> CONTACTED: %v", err)
	}
	if updated.Status != model.RequestContacted {
		t.Errorf("Status = %s, want CONTACTED", updated.Status)
	}

	if _, err := svc.UpdateCallbackStatus(ctx, created.ID, model.RequestPending); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("backwards move: err = %v, want CONFLICT", err)
	}

	if _, err := svc.UpdateCallbackStatus(ctx, created.ID, model.RequestSent); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("SENT on a callback: err = %v, want INVALID_INPUT", err)
	}

	if _, err := svc.UpdateCallbackStatus(ctx, created.ID, model.RequestClosed); err != nil {
		t.Errorf("CONTACTED -> CLOSED: %v", err)
	}
}

func TestCallbackStatus_SkipToClosed(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateCallback(ctx, validCallback())
	if err != nil {
		t.Fatalf("CreateCallback: %v", err)
	}

	updated, err := svc.UpdateCallbackStatus(ctx, created.ID, model.RequestClosed)
	if err != nil {
		t.Fatalf("PENDING -> CLOSED: %v", err)
	}
	if updated.Status != model.RequestClosed {
		t.Errorf("Status = %s, want CLOSED", updated.Status)
	}
}

func TestMessageLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateMessage(ctx, validMessage())
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if created.Status != model.RequestPending {
		t.Errorf("Status = %s, want PENDING", created.Status)
	}

	if _, err := svc.UpdateMessageStatus(ctx, created.ID, model.RequestSent); err != nil {
		t.Fatalf("PENDING -> SENT: %v", err)
	}
	if _, err := svc.UpdateMessageStatus(ctx, created.ID, model.RequestClosed); err != nil {
		t.Fatalf("SENT -> CLOSED: %v", err)
	}

	if err := svc.DeleteMessage(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if err := svc.DeleteMessage(ctx, created.ID); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("double delete: err = %v, want NOT_FOUND", err)
	}
}

func TestListCallbacks_NewestFirstPaginated(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreateCallback(ctx, validCallback()); err != nil {
			t.Fatalf("CreateCallback #%d: %v", i, err)
		}
	}

	page, total, err := svc.ListCallbacks(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListCallbacks: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	rest, _, err := svc.ListCallbacks(ctx, 10, 4)
	if err != nil {
		t.Fatalf("ListCallbacks offset: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("tail page size = %d, want 1", len(rest))
	}
}

func TestUpdateStatus_UnknownRequest(t *testing.T) {
	svc := testService(t)

	_, err := svc.UpdateCallbackStatus(context.Background(), "missing", model.RequestContacted)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
