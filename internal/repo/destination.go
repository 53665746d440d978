// Package repo contains all storage access logic for the travel API.
// DestinationRepo has two implementations: Postgres (this file) and MongoDB
// (destination_mongo.go). No business logic lives here, only queries and
// type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DestinationRepo defines the persistence operations for Destinations.
// The service layer depends on this interface, not on either store.
type DestinationRepo interface {
	// Create inserts a destination and returns it with the store-generated
	// id, createdAt and updatedAt populated.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID returns domain.ErrNotFound when no destination has that id,
	// including when id is not a well-formed id for the store.
	GetByID(ctx context.Context, id string) (domain.Destination, error)

	// List returns the destinations matching f, oldest first.
	// The zero filter returns everything.
	List(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)

	// Update replaces every mutable field of d.ID and refreshes updatedAt.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// Delete returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a Postgres-backed DestinationRepo.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `
	id, name, country, city, latitude, longitude, description, images,
	climate, budget_level, activities, best_time_to_visit, accommodations,
	rating_average, rating_count, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	q := `
		INSERT INTO destinations (
			name, country, city, latitude, longitude, description, images,
			climate, budget_level, activities, best_time_to_visit, accommodations,
			rating_average, rating_count)
		VALUES (
			@name, @country, @city, @latitude, @longitude, @description, @images,
			@climate, @budget_level, @activities, @best_time_to_visit, @accommodations,
			@rating_average, @rating_count)
		RETURNING` + destinationColumns

	row := r.db.QueryRow(ctx, q, destinationArgs(d))
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id string) (domain.Destination, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", domain.ErrNotFound)
	}

	q := `SELECT` + destinationColumns + ` FROM destinations WHERE id = @id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": uid}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

// List filters in SQL. An empty parameter disables its predicate, so one
// statement serves both the plain listing and every search combination.
func (r *pgDestinationRepo) List(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	q := `SELECT` + destinationColumns + `
		FROM destinations
		WHERE (@budget::text = '' OR budget_level = @budget::text)
		  AND (@climate::text = '' OR climate = @climate::text)
		  AND (@activity::text = '' OR @activity::text = ANY(activities))
		  AND (@keyword::text = ''
		       OR name ILIKE '%' || @keyword::text || '%' ESCAPE '\'
		       OR description ILIKE '%' || @keyword::text || '%' ESCAPE '\')
		ORDER BY created_at, id`

	args := pgx.NamedArgs{
		"budget":   string(f.Budget),
		"climate":  string(f.Climate),
		"activity": f.Activity,
		"keyword":  escapeLike(f.Keyword),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	defer rows.Close()

	destinations := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.List: scan: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: rows: %w", err)
	}

	return destinations, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	uid, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", domain.ErrNotFound)
	}

	q := `
		UPDATE destinations
		SET name               = @name,
		    country            = @country,
		    city               = @city,
		    latitude           = @latitude,
		    longitude          = @longitude,
		    description        = @description,
		    images             = @images,
		    climate            = @climate,
		    budget_level       = @budget_level,
		    activities         = @activities,
		    best_time_to_visit = @best_time_to_visit,
		    accommodations     = @accommodations,
		    rating_average     = @rating_average,
		    rating_count       = @rating_count,
		    updated_at         = clock_timestamp()
		WHERE id = @id
		RETURNING` + destinationColumns

	args := destinationArgs(d)
	args["id"] = uid

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id = @id`, pgx.NamedArgs{"id": uid})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// destinationArgs maps the writable fields of d to named parameters.
// Enum-typed values are passed as plain strings and nil slices as empty
// ones so the NOT NULL array columns are satisfied.
func destinationArgs(d domain.Destination) pgx.NamedArgs {
	var lat, lng *float64
	if c := d.Location.Coordinates; c != nil {
		lat, lng = &c.Latitude, &c.Longitude
	}
	accommodations := d.Accommodations
	if accommodations == nil {
		accommodations = []domain.Accommodation{}
	}
	return pgx.NamedArgs{
		"name":               d.Name,
		"country":            d.Location.Country,
		"city":               d.Location.City,
		"latitude":           lat,
		"longitude":          lng,
		"description":        d.Description,
		"images":             nonNil(d.Images),
		"climate":            string(d.Climate),
		"budget_level":       string(d.BudgetLevel),
		"activities":         nonNil(d.Activities),
		"best_time_to_visit": seasonsToStrings(d.BestTimeToVisit),
		"accommodations":     accommodations,
		"rating_average":     d.Ratings.Average,
		"rating_count":       d.Ratings.Count,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d           domain.Destination
		id          uuid.UUID
		lat, lng    *float64
		climate     string
		budgetLevel string
		seasons     []string
	)

	err := s.Scan(
		&id, &d.Name, &d.Location.Country, &d.Location.City, &lat, &lng,
		&d.Description, &d.Images, &climate, &budgetLevel, &d.Activities,
		&seasons, &d.Accommodations, &d.Ratings.Average, &d.Ratings.Count,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = id.String()
	d.Climate = domain.Climate(climate)
	d.BudgetLevel = domain.BudgetLevel(budgetLevel)
	if lat != nil && lng != nil {
		d.Location.Coordinates = &domain.Coordinates{Latitude: *lat, Longitude: *lng}
	}
	d.BestTimeToVisit = make([]domain.Season, len(seasons))
	for i, s := range seasons {
		d.BestTimeToVisit[i] = domain.Season(s)
	}
	d.Images = nonNil(d.Images)
	d.Activities = nonNil(d.Activities)
	if d.Accommodations == nil {
		d.Accommodations = []domain.Accommodation{}
	}

	return d, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func seasonsToStrings(in []domain.Season) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// escapeLike escapes the ILIKE metacharacters so a keyword matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
