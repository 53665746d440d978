package domain

// ExportRow is a single row in the destination export.
// It is a flat view of a Destination: nested location and rating fields are
// lifted to the top level, and coordinates, images and accommodations are
// left out.
//
// Activities and BestTimeToVisit keep their stored order. Callers that need a
// joined string (e.g. CSV) should join with "|".
type ExportRow struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	Climate         string   `json:"climate"`
	BudgetLevel     string   `json:"budgetLevel"`
	Activities      []string `json:"activities"`
	BestTimeToVisit []string `json:"bestTimeToVisit"`
	RatingAverage   float64  `json:"ratingAverage"`
	RatingCount     int      `json:"ratingCount"`
}

// ExportColumns is the header row shared by the CSV and PDF renderings.
var ExportColumns = []string{
	"id", "name", "country", "city", "climate", "budgetLevel",
	"activities", "bestTimeToVisit", "ratingAverage", "ratingCount",
}
