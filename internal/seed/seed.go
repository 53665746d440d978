// Package seed loads a YAML destination catalogue into the store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

//go:embed destinations.yaml
var defaultCatalogue []byte

// ErrParsing is returned when a catalogue cannot be decoded.
var ErrParsing = errors.New("error parsing seed catalogue")

type coordinates struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type location struct {
	Country     string       `yaml:"country"`
	City        string       `yaml:"city"`
	Coordinates *coordinates `yaml:"coordinates"`
}

type accommodation struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PriceRange string `yaml:"priceRange"`
	Link       string `yaml:"link"`
}

type ratings struct {
	Average float64 `yaml:"average"`
	Count   int     `yaml:"count"`
}

type destination struct {
	Name            string          `yaml:"name"`
	Location        location        `yaml:"location"`
	Description     string          `yaml:"description"`
	Images          []string        `yaml:"images"`
	Climate         string          `yaml:"climate"`
	BudgetLevel     string          `yaml:"budgetLevel"`
	Activities      []string        `yaml:"activities"`
	BestTimeToVisit []string        `yaml:"bestTimeToVisit"`
	Accommodations  []accommodation `yaml:"accommodations"`
	Ratings         ratings         `yaml:"ratings"`
}

// Default returns the embedded starter catalogue.
func Default() ([]domain.Destination, error) {
	return Load(bytes.NewReader(defaultCatalogue))
}

// LoadFile reads a catalogue from path.
func LoadFile(path string) ([]domain.Destination, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return out, nil
}

// Load decodes a YAML list of destinations. Unknown keys are rejected.
// Values are not validated here; Apply sends them through the service.
func Load(r io.Reader) ([]domain.Destination, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var docs []destination
	if err := decoder.Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Destination{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrParsing, err)
	}

	out := make([]domain.Destination, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (d destination) toDomain() domain.Destination {
	out := domain.Destination{
		Name: d.Name,
		Location: domain.Location{
			Country: d.Location.Country,
			City:    d.Location.City,
		},
		Description: d.Description,
		Images:      d.Images,
		Climate:     domain.Climate(d.Climate),
		BudgetLevel: domain.BudgetLevel(d.BudgetLevel),
		Activities:  d.Activities,
		Ratings:     domain.Ratings{Average: d.Ratings.Average, Count: d.Ratings.Count},
	}
	if c := d.Location.Coordinates; c != nil {
		out.Location.Coordinates = &domain.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	for _, s := range d.BestTimeToVisit {
		out.BestTimeToVisit = append(out.BestTimeToVisit, domain.Season(s))
	}
	for _, a := range d.Accommodations {
		out.Accommodations = append(out.Accommodations, domain.Accommodation(a))
	}
	return out
}

// Store is the part of the destination service seeding needs.
type Store interface {
	List(ctx context.Context) ([]domain.Destination, error)
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
}

// Apply creates every destination in order and returns how many were
// written. Unless force is set, a store that already holds destinations is
// left untouched. It stops at the first failure.
func Apply(ctx context.Context, store Store, dests []domain.Destination, force bool) (int, error) {
	if !force {
		existing, err := store.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed.Apply: %w", err)
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	for i, d := range dests {
		if _, err := store.Create(ctx, d); err != nil {
			return i, fmt.Errorf("seed.Apply: destination %d (%q): %w", i, d.Name, err)
		}
	}
	return len(dests), nil
}
