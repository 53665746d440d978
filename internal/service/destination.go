// Package service contains the business logic for the travel API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No queries live here; services depend on interfaces.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/repo"
)

// DestinationService implements business logic for Destination operations.
type DestinationService struct {
	repo     repo.DestinationRepo
	validate *validator.Validate
}

// NewDestinationService constructs a DestinationService backed by the provided repo.
func NewDestinationService(r repo.DestinationRepo) *DestinationService {
	return &DestinationService{repo: r, validate: newValidator()}
}

// Create validates and persists a new destination.
// The store assigns id and timestamps; any supplied are ignored.
func (s *DestinationService) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d = normalize(d)
	if err := s.check(d); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	d.ID = ""

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single destination by ID.
func (s *DestinationService) GetByID(ctx context.Context, id string) (domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return d, nil
}

// List returns every destination, oldest first. Never nil.
func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.Search(ctx, domain.DestinationFilter{})
}

// Search returns the destinations matching every non-empty field of f.
// Unknown budget or climate values are rejected with domain.ErrValidation;
// the keyword is normalised with domain.NormalizeKeyword.
func (s *DestinationService) Search(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	if f.Budget != "" && !f.Budget.Valid() {
		return nil, fmt.Errorf("service.DestinationService.Search: %w: unknown budget %q", domain.ErrValidation, f.Budget)
	}
	if f.Climate != "" && !f.Climate.Valid() {
		return nil, fmt.Errorf("service.DestinationService.Search: %w: unknown climate %q", domain.ErrValidation, f.Climate)
	}
	f.Activity = strings.TrimSpace(f.Activity)
	f.Keyword = domain.NormalizeKeyword(f.Keyword)

	found, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Search: %w", err)
	}
	if found == nil {
		found = []domain.Destination{}
	}
	return found, nil
}

// Update replaces every mutable field of the destination identified by d.ID.
// The replacement is validated exactly like a create.
func (s *DestinationService) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d = normalize(d)
	if err := s.check(d); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a destination by ID.
func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

func (s *DestinationService) check(d domain.Destination) error {
	if err := s.validate.Struct(d); err != nil {
		return validationError(err)
	}
	return nil
}

// normalize trims free-text fields and drops blank list entries, so
// whitespace-only values fail the required checks.
func normalize(d domain.Destination) domain.Destination {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Location.Country = strings.TrimSpace(d.Location.Country)
	d.Location.City = strings.TrimSpace(d.Location.City)
	d.Images = compact(d.Images)
	d.Activities = compact(d.Activities)
	for i := range d.Accommodations {
		a := &d.Accommodations[i]
		a.Name = strings.TrimSpace(a.Name)
		a.Type = strings.TrimSpace(a.Type)
		a.PriceRange = strings.TrimSpace(a.PriceRange)
		a.Link = strings.TrimSpace(a.Link)
	}
	return d
}

func compact(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
