package catalog

import (
	"context"
	"errors"
	"time"

	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/model"
)

type CatalogService interface {
	ListExperiences(ctx context.Context) ([]*model.ExperienceSummary, error)
	GetBySlug(ctx context.Context, slug string) (*ExperienceDetail, error)
}

// ExperienceDetail is the catalog entry with its upcoming slots attached.
type ExperienceDetail struct {
	model.Experience
	Slots []model.Slot `json:"slots"`
}

type catalogService struct {
	store *Store
	cfg   *config.Config
	now   func() time.Time
}

func NewCatalogService(store *Store, cfg *config.Config) CatalogService {
	return &catalogService{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *catalogService) ListExperiences(_ context.Context) ([]*model.ExperienceSummary, error) {
	now := s.now()

	experiences := s.store.Experiences()
	summaries := make([]*model.ExperienceSummary, 0, len(experiences))
	for _, exp := range experiences {
		summaries = append(summaries, &model.ExperienceSummary{
			ID:            exp.ID,
			Title:         exp.Title,
			Slug:          exp.Slug,
			Location:      exp.Location,
			PricePerHead:  exp.PricePerHead,
			Currency:      exp.Currency,
			DurationMins:  exp.DurationMins,
			Rating:        exp.Rating,
			Tags:          exp.Tags,
			ImageURL:      exp.ImageURL,
			NextAvailable: s.store.NextAvailable(exp.ID, now),
		})
	}

	return summaries, nil
}

func (s *catalogService) GetBySlug(_ context.Context, slug string) (*ExperienceDetail, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Experience slug cannot be empty")
	}

	exp, err := s.store.ExperienceBySlug(slug)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			return nil, apperrors.NotFoundWithID("Experience", slug)
		}
		return nil, apperrors.Internal("Failed to retrieve experience", err)
	}

	// Only future departures are offered for booking.
	now := s.now()
	var upcoming []model.Slot
	for _, slot := range s.store.SlotsByExperience(exp.ID) {
		if slot.StartsAt.After(now) {
			upcoming = append(upcoming, slot)
		}
	}

	return &ExperienceDetail{
		Experience: *exp,
		Slots:      upcoming,
	}, nil
}
