package service

import (
	"context"
	"fmt"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/repo"
)

// ExportService assembles a flat export of every destination.
type ExportService struct {
	destinations repo.DestinationRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(destinations repo.DestinationRepo) *ExportService {
	return &ExportService{destinations: destinations}
}

// Export returns one ExportRow per destination, oldest first.
// The result is never nil.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	all, err := s.destinations.List(ctx, domain.DestinationFilter{})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(all))
	for _, d := range all {
		rows = append(rows, toExportRow(d))
	}
	return rows, nil
}

func toExportRow(d domain.Destination) domain.ExportRow {
	seasons := make([]string, len(d.BestTimeToVisit))
	for i, s := range d.BestTimeToVisit {
		seasons[i] = string(s)
	}
	activities := d.Activities
	if activities == nil {
		activities = []string{}
	}
	return domain.ExportRow{
		ID:              d.ID,
		Name:            d.Name,
		Country:         d.Location.Country,
		City:            d.Location.City,
		Climate:         string(d.Climate),
		BudgetLevel:     string(d.BudgetLevel),
		Activities:      activities,
		BestTimeToVisit: seasons,
		RatingAverage:   d.Ratings.Average,
		RatingCount:     d.Ratings.Count,
	}
}
