package report_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/report"
)

var generated = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func TestDestinationsPDF(t *testing.T) {
	rows := []domain.ExportRow{
		{
			ID: "1", Name: "Bali", Country: "Indonesia", City: "Denpasar",
			Climate: "tropical", BudgetLevel: "moderate",
			Activities:      []string{"beach", "temple", "surfing"},
			BestTimeToVisit: []string{"summer"},
			RatingAverage:   4.6, RatingCount: 120,
		},
		{ID: "2", Name: "Zürich", Country: "Switzerland", Climate: "temperate", BudgetLevel: "luxury"},
	}

	out, err := report.DestinationsPDF(rows, generated)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestDestinationsPDF_Empty(t *testing.T) {
	out, err := report.DestinationsPDF(nil, generated)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDestinationsPDF_ManyRowsSpanPages(t *testing.T) {
	rows := make([]domain.ExportRow, 0, 120)
	for i := range 120 {
		rows = append(rows, domain.ExportRow{
			ID:          fmt.Sprint(i),
			Name:        fmt.Sprintf("Destination %d with a very long name that will not fit in its column", i),
			Country:     "Country",
			Climate:     "arid",
			BudgetLevel: "budget",
		})
	}

	one, err := report.DestinationsPDF(rows[:1], generated)
	require.NoError(t, err)
	many, err := report.DestinationsPDF(rows, generated)
	require.NoError(t, err)

	assert.Greater(t, bytes.Count(many, []byte("/Type /Page")), bytes.Count(one, []byte("/Type /Page")))
}
