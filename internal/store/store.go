// Package store holds the in-memory service-history dataset and answers
// plate lookups. Records are loaded once at startup and read-only after
// that; every accessor is a pure read.
package store

import (
	"sort"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Store is the read-only record store.
type Store struct {
	records []models.VehicleRecord
}

// New builds a store over the given records. The slice is kept as-is;
// original order is the deterministic tie-breaker for equal service dates.
func New(records []models.VehicleRecord) *Store {
	return &Store{records: records}
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// normalizePlate trims surrounding whitespace and upper-cases the plate so
// matching is case-insensitive.
func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// FindLatest returns the single most recent record for the plate: the
// match with the maximum service date, the earliest-loaded one winning
// ties. An empty plate or no match is an expected empty result, not an
// error.
func (s *Store) FindLatest(plate string) (*models.VehicleRecord, bool) {
	key := normalizePlate(plate)
	if key == "" {
		return nil, false
	}

	var latest *models.VehicleRecord
	for i := range s.records {
		r := &s.records[i]
		if normalizePlate(r.Plate) != key {
			continue
		}
		if latest == nil || r.ServiceDate.After(latest.ServiceDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, false
	}
	out := *latest
	return &out, true
}

// FindAll returns every record for the plate, service date descending.
// The sort is stable so rows sharing a date keep their load order.
func (s *Store) FindAll(plate string) []models.VehicleRecord {
	key := normalizePlate(plate)
	if key == "" {
		return nil
	}

	var matches []models.VehicleRecord
	for _, r := range s.records {
		if normalizePlate(r.Plate) == key {
			matches = append(matches, r)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ServiceDate.After(matches[j].ServiceDate)
	})
	return matches
}

// Page returns a browse window over the dataset in load order.
func (s *Store) Page(offset, limit int) []models.VehicleRecord {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.records) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(s.records) {
		end = len(s.records)
	}
	page := make([]models.VehicleRecord, end-offset)
	copy(page, s.records[offset:end])
	return page
}

// FleetSummary aggregates the dashboard headline metrics.
type FleetSummary struct {
	TotalRecords        int     `json:"total_records"`
	UniqueTrucks        int     `json:"unique_trucks"`
	AvgDaysUntilService float64 `json:"avg_days_until_service"`
	CriticalWindowPct   float64 `json:"critical_window_pct"`
	AvgKmSinceService   float64 `json:"avg_km_since_service"`
	CriticalWindowDays  float64 `json:"critical_window_days"`
}

// criticalWindowDays is the "truck needs attention soon" cutoff shown on
// the dashboard.
const criticalWindowDays = 15

// Summary computes fleet-wide metrics over the loaded dataset. Averages
// over the target only consider rows that carry it.
func (s *Store) Summary() FleetSummary {
	summary := FleetSummary{
		TotalRecords:       len(s.records),
		CriticalWindowDays: criticalWindowDays,
	}

	plates := make(map[string]struct{})
	var daysSum, kmSum float64
	var daysN, criticalN int
	for _, r := range s.records {
		plates[normalizePlate(r.Plate)] = struct{}{}
		kmSum += r.KmAfterLastService
		if r.DaysUntilNextService != nil {
			daysSum += *r.DaysUntilNextService
			daysN++
			if *r.DaysUntilNextService <= criticalWindowDays {
				criticalN++
			}
		}
	}

	summary.UniqueTrucks = len(plates)
	if daysN > 0 {
		summary.AvgDaysUntilService = daysSum / float64(daysN)
		summary.CriticalWindowPct = float64(criticalN) / float64(daysN) * 100
	}
	if len(s.records) > 0 {
		summary.AvgKmSinceService = kmSum / float64(len(s.records))
	}
	return summary
}
