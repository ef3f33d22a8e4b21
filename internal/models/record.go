package models

import "time"

// VehicleRecord is one row of service history for one truck: the sensor
// and usage readings captured at a single service event. Records are
// parsed and type-checked once at dataset load and are read-only for the
// life of the process.
type VehicleRecord struct {
	Plate           string     `json:"truck_number_plate"`
	ServiceDate     time.Time  `json:"service_date"`
	LastServiceDate *time.Time `json:"last_service_date,omitempty"`

	VehicleModel              string  `json:"vehicle_model"`
	YearBought                int     `json:"year_bought"`
	TotalKmRun                float64 `json:"total_km_run"`
	KmAfterLastService        float64 `json:"km_after_last_service"`
	AvgDailyKmEst             float64 `json:"avg_daily_km_est"`
	EngineTemperatureC        float64 `json:"engine_temperature_c"`
	VibrationsLevel           float64 `json:"vibrations_level"`
	OilLifePercent            float64 `json:"oil_life_percent"`
	BatteryHealthPercent      float64 `json:"battery_health_percent"`
	RouteType                 string  `json:"route_type"`
	LoadProfile               string  `json:"load_profile"`
	AmbientTempC              float64 `json:"ambient_temp_c"`
	ServiceType               string  `json:"service_type"`
	PartsInStockStatus        string  `json:"parts_in_stock_status"`
	TechnicianExperienceYears int     `json:"technician_experience_years"`
	CurrentQueueLength        float64 `json:"current_queue_length"`
	ShiftHoursRemaining       float64 `json:"shift_hours_remaining"`
	BrakePadThicknessMm       float64 `json:"brake_pad_thickness_mm"`
	TyreHealthPercent         float64 `json:"tyre_health_percent"`
	FuelEfficiencyKmpl        float64 `json:"fuel_efficiency_kmpl"`
	ApproxPastServices        int     `json:"approx_past_services"`
	PartsChangedLastService   string  `json:"parts_changed_last_service,omitempty"`

	// DaysUntilNextService is the training target; known only for
	// historical rows, nil for anything assembled from user input.
	DaysUntilNextService *float64 `json:"days_until_next_service,omitempty"`
}

// FeatureValues returns the record's feature fields keyed by schema field
// name. Used to pre-fill the prediction form from a truck's latest record;
// empty categorical cells are omitted so the defaulting layer fills them.
func (r *VehicleRecord) FeatureValues() map[string]any {
	values := map[string]any{
		"year_bought":                 r.YearBought,
		"total_km_run":                r.TotalKmRun,
		"km_after_last_service":       r.KmAfterLastService,
		"avg_daily_km_est":            r.AvgDailyKmEst,
		"engine_temperature_c":        r.EngineTemperatureC,
		"vibrations_level":            r.VibrationsLevel,
		"oil_life_percent":            r.OilLifePercent,
		"battery_health_percent":      r.BatteryHealthPercent,
		"ambient_temp_c":              r.AmbientTempC,
		"technician_experience_years": r.TechnicianExperienceYears,
		"current_queue_length":        r.CurrentQueueLength,
		"shift_hours_remaining":       r.ShiftHoursRemaining,
		"brake_pad_thickness_mm":      r.BrakePadThicknessMm,
		"tyre_health_percent":         r.TyreHealthPercent,
		"fuel_efficiency_kmpl":        r.FuelEfficiencyKmpl,
		"approx_past_services":        r.ApproxPastServices,
	}
	for name, v := range map[string]string{
		"vehicle_model":         r.VehicleModel,
		"route_type":            r.RouteType,
		"load_profile":          r.LoadProfile,
		"service_type":          r.ServiceType,
		"parts_in_stock_status": r.PartsInStockStatus,
	} {
		if v != "" {
			values[name] = v
		}
	}
	return values
}
