package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

const maxAirportField = 80

// AirportLoaderService bulk imports airports from an airport database dump
type AirportLoaderService struct {
	repo *repositories.AirportRepository
}

// RawAirportData is one record of the dump; only name and city are kept
type RawAirportData struct {
	ICAO    string `json:"icao"`
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// ImportResult summarises one import
type ImportResult struct {
	Parsed   int   `json:"parsed"`
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
}

// NewAirportLoaderService creates a new airport loader service
func NewAirportLoaderService(db *gormlib.DB) *AirportLoaderService {
	return &AirportLoaderService{
		repo: repositories.NewAirportRepository(db),
	}
}

// LoadFromJSON imports airports from a reader.
// Expected format: object keyed by ICAO code, e.g. {"UKBB": {"name": "Boryspil International Airport", "city": "Kyiv"}}.
// Airports whose name already exists are left untouched.
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	var rawData map[string]RawAirportData
	if err := json.NewDecoder(reader).Decode(&rawData); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(rawData) == 0 {
		return nil, fmt.Errorf("no airport data found in JSON")
	}

	airports := ParseAirports(rawData)
	if len(airports) == 0 {
		return nil, fmt.Errorf("no valid airports found after parsing")
	}

	inserted, err := s.repo.BatchInsert(ctx, airports)
	if err != nil {
		return nil, fmt.Errorf("failed to insert airports: %w", err)
	}

	result := &ImportResult{
		Parsed:   len(airports),
		Inserted: inserted,
		Skipped:  int64(len(airports)) - inserted,
	}
	logging.Info("Airport import finished", "parsed", result.Parsed, "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// ParseAirports converts raw records into models, dropping nameless records
// and repeated names. Output is sorted by name.
func ParseAirports(rawData map[string]RawAirportData) []gorm.Airport {
	seen := make(map[string]bool, len(rawData))
	airports := make([]gorm.Airport, 0, len(rawData))

	for _, raw := range rawData {
		name := truncate(strings.TrimSpace(raw.Name), maxAirportField)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		city := strings.TrimSpace(raw.City)
		if city == "" {
			city = strings.TrimSpace(raw.Country)
		}

		airports = append(airports, gorm.Airport{
			Name:           name,
			ClosestBigCity: truncate(city, maxAirportField),
		})
	}

	sort.Slice(airports, func(i, j int) bool { return airports[i].Name < airports[j].Name })
	return airports
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
