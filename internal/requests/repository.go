package requests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"bookit/pkg/model"
)

var ErrRequestNotFound = errors.New("request not found")

// CallbackRepository stores trip-planning callback inquiries.
type CallbackRepository interface {
	Create(ctx context.Context, req *model.CallbackRequest) error
	FindByID(ctx context.Context, id string) (*model.CallbackRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.CallbackRequest, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.CallbackRequest, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepository stores the lighter message-me inquiries.
type MessageRepository interface {
	Create(ctx context.Context, req *model.MessageRequest) error
	FindByID(ctx context.Context, id string) (*model.MessageRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.MessageRequest, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.MessageRequest, error)
	Delete(ctx context.Context, id string) error
}

type memoryCallbackRepository struct {
	mu       sync.RWMutex
	requests map[string]*model.CallbackRequest
}

func NewMemoryCallbackRepository() CallbackRepository {
	return &memoryCallbackRepository{requests: make(map[string]*model.CallbackRequest)}
}

func (r *memoryCallbackRepository) Create(_ context.Context, req *model.CallbackRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *memoryCallbackRepository) FindByID(_ context.Context, id string) (*model.CallbackRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	out := *stored
	return &out, nil
}

func (r *memoryCallbackRepository) List(_ context.Context, limit, offset int) ([]*model.CallbackRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.CallbackRequest, 0, len(r.requests))
	for _, stored := range r.requests {
		out := *stored
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	return paginate(all, limit, offset), total, nil
}

func (r *memoryCallbackRepository) UpdateStatus(_ context.Context, id, status string) (*model.CallbackRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	stored.Status = status
	out := *stored
	return &out, nil
}

func (r *memoryCallbackRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

type memoryMessageRepository struct {
	mu       sync.RWMutex
	requests map[string]*model.MessageRequest
}

func NewMemoryMessageRepository() MessageRepository {
	return &memoryMessageRepository{requests: make(map[string]*model.MessageRequest)}
}

func (r *memoryMessageRepository) Create(_ context.Context, req *model.MessageRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *memoryMessageRepository) FindByID(_ context.Context, id string) (*model.MessageRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	out := *stored
	return &out, nil
}

func (r *memoryMessageRepository) List(_ context.Context, limit, offset int) ([]*model.MessageRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.MessageRequest, 0, len(r.requests))
	for _, stored := range r.requests {
		out := *stored
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	return paginate(all, limit, offset), total, nil
}

func (r *memoryMessageRepository) UpdateStatus(_ context.Context, id, status string) (*model.MessageRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	stored.Status = status
	out := *stored
	return &out, nil
}

func (r *memoryMessageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
