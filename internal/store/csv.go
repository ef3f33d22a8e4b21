package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// columns is the canonical dataset column order, used for export and as
// the reference vocabulary when reading. Loading is header-driven, so
// files with missing or reordered columns still parse.
var columns = []string{
	"truck_number_plate",
	"vehicle_model",
	"year_bought",
	"service_date",
	"last_service_date",
	"total_km_run",
	"km_after_last_service",
	"avg_daily_km_est",
	"engine_temperature_c",
	"vibrations_level",
	"oil_life_percent",
	"battery_health_percent",
	"route_type",
	"load_profile",
	"ambient_temp_c",
	"service_type",
	"parts_in_stock_status",
	"technician_experience_years",
	"current_queue_length",
	"shift_hours_remaining",
	"brake_pad_thickness_mm",
	"tyre_health_percent",
	"fuel_efficiency_kmpl",
	"approx_past_services",
	"parts_changed_last_service",
	"days_until_next_service",
}

// dateLayouts are the service-date encodings seen in exported datasets.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// Load reads the dataset CSV at path. A missing file is not fatal: lookup
// and browsing degrade gracefully to an empty store. Rows with malformed
// cells are skipped with a warning so one bad line cannot poison the load.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warn("dataset file not found, starting with an empty store")
			return New(nil), nil
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "records": s.Len()}).Info("dataset loaded")
	return s, nil
}

// Read parses dataset CSV content from r.
func Read(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	var records []models.VehicleRecord
	line := 1
	for {
		line++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("skipping unreadable dataset row")
			continue
		}
		rec, err := parseRecord(row, idx)
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("skipping malformed dataset row")
			continue
		}
		records = append(records, rec)
	}
	return New(records), nil
}

type rowReader struct {
	row []string
	idx map[string]int
	err error
}

func (r *rowReader) cell(name string) (string, bool) {
	i, ok := r.idx[name]
	if !ok || i >= len(r.row) {
		return "", false
	}
	return r.row[i], true
}

func (r *rowReader) str(name string) string {
	s, _ := r.cell(name)
	return s
}

func (r *rowReader) float(name string) float64 {
	s, ok := r.cell(name)
	if !ok || s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", name, err)
		return 0
	}
	return v
}

func (r *rowReader) int(name string) int {
	// Count columns sometimes arrive as "7.0" after round-tripping
	// through dataframe tooling, so parse via float.
	return int(r.float(name))
}

func (r *rowReader) date(name string) (time.Time, bool) {
	s, ok := r.cell(name)
	if !ok || s == "" || r.err != nil {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	r.err = fmt.Errorf("column %q: unrecognized date %q", name, s)
	return time.Time{}, false
}

func parseRecord(row []string, idx map[string]int) (models.VehicleRecord, error) {
	r := &rowReader{row: row, idx: idx}

	rec := models.VehicleRecord{
		Plate:                     r.str("truck_number_plate"),
		VehicleModel:              r.str("vehicle_model"),
		YearBought:                r.int("year_bought"),
		TotalKmRun:                r.float("total_km_run"),
		KmAfterLastService:        r.float("km_after_last_service"),
		AvgDailyKmEst:             r.float("avg_daily_km_est"),
		EngineTemperatureC:        r.float("engine_temperature_c"),
		VibrationsLevel:           r.float("vibrations_level"),
		OilLifePercent:            r.float("oil_life_percent"),
		BatteryHealthPercent:      r.float("battery_health_percent"),
		RouteType:                 r.str("route_type"),
		LoadProfile:               r.str("load_profile"),
		AmbientTempC:              r.float("ambient_temp_c"),
		ServiceType:               r.str("service_type"),
		PartsInStockStatus:        r.str("parts_in_stock_status"),
		TechnicianExperienceYears: r.int("technician_experience_years"),
		CurrentQueueLength:        r.float("current_queue_length"),
		ShiftHoursRemaining:       r.float("shift_hours_remaining"),
		BrakePadThicknessMm:       r.float("brake_pad_thickness_mm"),
		TyreHealthPercent:         r.float("tyre_health_percent"),
		FuelEfficiencyKmpl:        r.float("fuel_efficiency_kmpl"),
		ApproxPastServices:        r.int("approx_past_services"),
		PartsChangedLastService:   r.str("parts_changed_last_service"),
	}

	if t, ok := r.date("service_date"); ok {
		rec.ServiceDate = t
	}
	if t, ok := r.date("last_service_date"); ok {
		rec.LastServiceDate = &t
	}
	if s, ok := r.cell("days_until_next_service"); ok && s != "" {
		days := r.float("days_until_next_service")
		rec.DaysUntilNextService = &days
	}

	if r.err != nil {
		return models.VehicleRecord{}, r.err
	}
	return rec, nil
}

// ExportCSV writes the full dataset in canonical column order.
func (s *Store) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range s.records {
		if err := cw.Write(recordCells(&s.records[i])); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordCells(r *models.VehicleRecord) []string {
	fmtF := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	lastService := ""
	if r.LastServiceDate != nil {
		lastService = r.LastServiceDate.Format("2006-01-02")
	}
	target := ""
	if r.DaysUntilNextService != nil {
		target = fmtF(*r.DaysUntilNextService)
	}
	serviceDate := ""
	if !r.ServiceDate.IsZero() {
		serviceDate = r.ServiceDate.Format("2006-01-02")
	}

	return []string{
		r.Plate,
		r.VehicleModel,
		strconv.Itoa(r.YearBought),
		serviceDate,
		lastService,
		fmtF(r.TotalKmRun),
		fmtF(r.KmAfterLastService),
		fmtF(r.AvgDailyKmEst),
		fmtF(r.EngineTemperatureC),
		fmtF(r.VibrationsLevel),
		fmtF(r.OilLifePercent),
		fmtF(r.BatteryHealthPercent),
		r.RouteType,
		r.LoadProfile,
		fmtF(r.AmbientTempC),
		r.ServiceType,
		r.PartsInStockStatus,
		strconv.Itoa(r.TechnicianExperienceYears),
		fmtF(r.CurrentQueueLength),
		fmtF(r.ShiftHoursRemaining),
		fmtF(r.BrakePadThicknessMm),
		fmtF(r.TyreHealthPercent),
		fmtF(r.FuelEfficiencyKmpl),
		strconv.Itoa(r.ApproxPastServices),
		r.PartsChangedLastService,
		target,
	}
}
