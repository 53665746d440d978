package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/service"
)

func TestExportService_Export_FlattensDestinations(t *testing.T) {
	d := validDestination()
	d.ID = "d1"
	d.BestTimeToVisit = []domain.Season{domain.SeasonSpring, domain.SeasonFall}
	d.Ratings = domain.Ratings{Average: 4.2, Count: 9}

	svc := service.NewExportService(&mockDestinationRepo{
		list: func(_ context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
			assert.True(t, f.IsZero(), "export covers every destination")
			return []domain.Destination{d}, nil
		},
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ExportRow{
		ID:              "d1",
		Name:            "Lisbon",
		Country:         "Portugal",
		City:            "Lisbon",
		Climate:         "temperate",
		BudgetLevel:     "moderate",
		Activities:      []string{"food", "history"},
		BestTimeToVisit: []string{"spring", "fall"},
		RatingAverage:   4.2,
		RatingCount:     9,
	}, rows[0])
}

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(&mockDestinationRepo{
		list: func(context.Context, domain.DestinationFilter) ([]domain.Destination, error) { return nil, nil },
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := service.NewExportService(&mockDestinationRepo{
		list: func(context.Context, domain.DestinationFilter) ([]domain.Destination, error) { return nil, boom },
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, boom)
}
