package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/report"
)

// exportDestinations handles GET /api/recommendations/export.
// ?format=csv or ?format=pdf select the encoding; default is JSON.
func (s *Server) exportDestinations(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	switch format {
	case "", "json", "csv", "pdf":
	default:
		badRequest(w, "format must be one of: json, csv, pdf")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.fail(w, r, err, destinationSubject)
		return
	}

	switch format {
	case "csv":
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="destinations.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write(body)
	case "pdf":
		body, err := report.DestinationsPDF(rows, s.now())
		if err != nil {
			s.fail(w, r, err, destinationSubject)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="destinations.pdf"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write(body)
	default:
		writeJSON(w, http.StatusOK, rows)
	}
}

// buildCSV encodes rows with a header line. List fields are joined with "|"
// so each destination stays on one line.
func buildCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes do not fail
	_ = cw.Write(domain.ExportColumns)
	for _, r := range rows {
		_ = cw.Write([]string{
			r.ID,
			r.Name,
			r.Country,
			r.City,
			r.Climate,
			r.BudgetLevel,
			strings.Join(r.Activities, "|"),
			strings.Join(r.BestTimeToVisit, "|"),
			strconv.FormatFloat(r.RatingAverage, 'f', -1, 64),
			strconv.Itoa(r.RatingCount),
		})
	}
	cw.Flush()
	return buf.Bytes()
}
