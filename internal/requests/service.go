package requests

import (
	"context"
	"errors"

	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Status progression per inquiry kind. A status may only move forward;
// skipping straight to CLOSED is allowed.
var (
	callbackStatusRank = map[string]int{
		model.RequestPending:   0,
		model.RequestContacted: 1,
		model.RequestClosed:    2,
	}
	messageStatusRank = map[string]int{
		model.RequestPending: 0,
		model.RequestSent:    1,
		model.RequestClosed:  2,
	}
)

type RequestService interface {
	CreateCallback(ctx context.Context, req *model.CallbackRequest) (*model.CallbackRequest, error)
	ListCallbacks(ctx context.Context, limit, offset int) ([]*model.CallbackRequest, int64, error)
	UpdateCallbackStatus(ctx context.Context, id, status string) (*model.CallbackRequest, error)
	DeleteCallback(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, req *model.MessageRequest) (*model.MessageRequest, error)
	ListMessages(ctx context.Context, limit, offset int) ([]*model.MessageRequest, int64, error)
	UpdateMessageStatus(ctx context.Context, id, status string) (*model.MessageRequest, error)
	DeleteMessage(ctx context.Context, id string) error
}

// ExperienceChecker verifies the inquiry points at a real experience.
type ExperienceChecker interface {
	ExperienceByID(id string) (*model.Experience, error)
}

type requestService struct {
	callbacks CallbackRepository
	messages  MessageRepository
	catalog   ExperienceChecker
	validate  *validator.Validate
	log       *logger.Logger
}

func NewRequestService(callbacks CallbackRepository, messages MessageRepository, catalog ExperienceChecker, log *logger.Logger) RequestService {
	return &requestService{
		callbacks: callbacks,
		messages:  messages,
		catalog:   catalog,
		validate:  validator.New(),
		log:       log,
	}
}

func (s *requestService) CreateCallback(ctx context.Context, req *model.CallbackRequest) (*model.CallbackRequest, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.City = sanitizer.NormalizeCity(req.City)
	if phone := sanitizer.NormalizePhone(req.Phone); phone != "" {
		req.Phone = phone
	}
	req.ID = uuid.NewString()
	req.Status = model.RequestPending

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("Invalid callback request", map[string]any{"error": err.Error()})
	}
	if _, err := s.catalog.ExperienceByID(req.ExperienceID); err != nil {
		return nil, apperrors.NotFound("Experience")
	}

	if err := s.callbacks.Create(ctx, req); err != nil {
		return nil, apperrors.Internal("Failed to store callback request", err)
	}

	s.log.Info("Callback request created", "request_id", req.ID, "experience_id", req.ExperienceID)
	return req, nil
}

func (s *requestService) ListCallbacks(ctx context.Context, limit, offset int) ([]*model.CallbackRequest, int64, error) {
	list, total, err := s.callbacks.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list callback requests", err)
	}
	return list, total, nil
}

func (s *requestService) UpdateCallbackStatus(ctx context.Context, id, status string) (*model.CallbackRequest, error) {
	current, err := s.callbacks.FindByID(ctx, id)
	if err != nil {
		return nil, mapRequestError(id, err)
	}
	if err := checkTransition(callbackStatusRank, current.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.callbacks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapRequestError(id, err)
	}

	s.log.Info("Callback request status updated", "request_id", id, "status", status)
	return updated, nil
}

func (s *requestService) DeleteCallback(ctx context.Context, id string) error {
	if err := s.callbacks.Delete(ctx, id); err != nil {
		return mapRequestError(id, err)
	}
	s.log.Info("Callback request deleted", "request_id", id)
	return nil
}

func (s *requestService) CreateMessage(ctx context.Context, req *model.MessageRequest) (*model.MessageRequest, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if phone := sanitizer.NormalizePhone(req.Phone); phone != "" {
		req.Phone = phone
	}
	req.ID = uuid.NewString()
	req.Status = model.RequestPending

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("Invalid message request", map[string]any{"error": err.Error()})
	}
	if _, err := s.catalog.ExperienceByID(req.ExperienceID); err != nil {
		return nil, apperrors.NotFound("Experience")
	}

	if err := s.messages.Create(ctx, req); err != nil {
		return nil, apperrors.Internal("Failed to store message request", err)
	}

	s.log.Info("Message request created", "request_id", req.ID, "experience_id", req.ExperienceID)
	return req, nil
}

func (s *requestService) ListMessages(ctx context.Context, limit, offset int) ([]*model.MessageRequest, int64, error) {
	list, total, err := s.messages.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list message requests", err)
	}
	return list, total, nil
}

func (s *requestService) UpdateMessageStatus(ctx context.Context, id, status string) (*model.MessageRequest, error) {
	current, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, mapRequestError(id, err)
	}
	if err := checkTransition(messageStatusRank, current.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.messages.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapRequestError(id, err)
	}

	s.log.Info("Message request status updated", "request_id", id, "status", status)
	return updated, nil
}

func (s *requestService) DeleteMessage(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return mapRequestError(id, err)
	}
	s.log.Info("Message request deleted", "request_id", id)
	return nil
}

func checkTransition(rank map[string]int, from, to string) error {
	toRank, ok := rank[to]
	if !ok {
		return apperrors.InvalidInput("Unknown status: " + to)
	}
	if toRank <= rank[from] {
		return apperrors.Conflict("Cannot move request from " + from + " to " + to)
	}
	return nil
}

func mapRequestError(id string, err error) error {
	if errors.Is(err, ErrRequestNotFound) {
		return apperrors.NotFoundWithID("Request", id)
	}
	return apperrors.Internal("Request store failure", err)
}
