// Package domain contains the core data types for the travel recommendation API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, provider clients).
//
// The validate struct tags are read by the service layer's validator; they
// are plain strings here and pull in no imports.
package domain

import (
	"strings"
	"time"
)

// Climate classifies the prevailing weather of a destination.
type Climate string

const (
	ClimateTropical    Climate = "tropical"
	ClimateTemperate   Climate = "temperate"
	ClimateArid        Climate = "arid"
	ClimateContinental Climate = "continental"
	ClimatePolar       Climate = "polar"
)

// Climates lists every accepted Climate in display order.
var Climates = []Climate{ClimateTropical, ClimateTemperate, ClimateArid, ClimateContinental, ClimatePolar}

// Valid reports whether c is one of the known climates.
func (c Climate) Valid() bool {
	for _, v := range Climates {
		if c == v {
			return true
		}
	}
	return false
}

// BudgetLevel is the rough cost tier of a destination.
type BudgetLevel string

const (
	BudgetLow      BudgetLevel = "budget"
	BudgetModerate BudgetLevel = "moderate"
	BudgetLuxury   BudgetLevel = "luxury"
)

// BudgetLevels lists every accepted BudgetLevel from cheapest to most expensive.
var BudgetLevels = []BudgetLevel{BudgetLow, BudgetModerate, BudgetLuxury}

// Valid reports whether b is one of the known budget levels.
func (b BudgetLevel) Valid() bool {
	for _, v := range BudgetLevels {
		if b == v {
			return true
		}
	}
	return false
}

// Season is used for a destination's best time to visit.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Location places a destination. City and Coordinates are optional.
type Location struct {
	Country     string       `json:"country" validate:"required"`
	City        string       `json:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" validate:"omitempty"`
}

// Accommodation is a curated place to stay at a destination.
type Accommodation struct {
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
	Link       string `json:"link,omitempty" validate:"omitempty,url"`
}

// Ratings aggregates user ratings. Average is on a 0-5 scale.
type Ratings struct {
	Average float64 `json:"average" validate:"gte=0,lte=5"`
	Count   int     `json:"count" validate:"gte=0"`
}

// Destination is a curated travel destination, the only persisted entity.
// ID is assigned by the store: a UUID string for Postgres, an ObjectID hex
// string for MongoDB.
type Destination struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Location        Location        `json:"location"`
	Description     string          `json:"description" validate:"required"`
	Images          []string        `json:"images" validate:"dive,url"`
	Climate         Climate         `json:"climate" validate:"required,oneof=tropical temperate arid continental polar"`
	BudgetLevel     BudgetLevel     `json:"budgetLevel" validate:"required,oneof=budget moderate luxury"`
	Activities      []string        `json:"activities" validate:"dive,required"`
	BestTimeToVisit []Season        `json:"bestTimeToVisit" validate:"dive,oneof=spring summer fall winter"`
	Accommodations  []Accommodation `json:"accommodations" validate:"dive"`
	Ratings         Ratings         `json:"ratings"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// DestinationFilter narrows a destination listing. Zero-value fields do not
// constrain the result, so the zero DestinationFilter matches everything.
type DestinationFilter struct {
	Budget   BudgetLevel
	Climate  Climate
	Activity string // exact element match against Activities
	Keyword  string // case-insensitive substring of Name or Description
}

// IsZero reports whether f places no constraint on the result.
func (f DestinationFilter) IsZero() bool {
	return f == DestinationFilter{}
}

// categoryPlurals maps the plural category words people type into the
// search box to the singular form stored in names and descriptions.
var categoryPlurals = map[string]string{
	"beaches":   "beach",
	"temples":   "temple",
	"countries": "country",
}

// NormalizeKeyword trims and lowercases a free-text search term and folds
// the known plural category words to their singular.
func NormalizeKeyword(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if singular, ok := categoryPlurals[q]; ok {
		return singular
	}
	return q
}
