package schema

import "fmt"

// Kind classifies a feature field for defaulting and encoding purposes.
type Kind string

const (
	// Categorical fields default to "Unknown" and are one-hot encoded.
	Categorical Kind = "categorical"
	// Count fields are whole-number quantities defaulting to 0.
	Count Kind = "count"
	// Continuous fields are real-valued measurements defaulting to 0.0.
	Continuous Kind = "continuous"
)

// Field names one feature the predictor was fit against.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// IsNumeric reports whether the field carries a numeric value.
func (f Field) IsNumeric() bool {
	return f.Kind == Count || f.Kind == Continuous
}

// Schema is the ordered list of fields a predictor consumes. The order is
// part of the contract: the serving side must hand rows to the predictor
// in exactly this order.
type Schema struct {
	Version string  `json:"version"`
	Fields  []Field `json:"fields"`
}

// Version1 is the feature schema the current regressor artifact is trained
// against. Training and serving share this single definition; a mismatch
// between an artifact and the serving schema is a reported error, never a
// silent misalignment.
const Version1 = "v1"

// V1 returns the v1 feature schema.
func V1() Schema {
	return Schema{
		Version: Version1,
		Fields: []Field{
			{Name: "vehicle_model", Kind: Categorical},
			{Name: "year_bought", Kind: Count},
			{Name: "total_km_run", Kind: Continuous},
			{Name: "km_after_last_service", Kind: Continuous},
			{Name: "avg_daily_km_est", Kind: Continuous},
			{Name: "engine_temperature_c", Kind: Continuous},
			{Name: "vibrations_level", Kind: Continuous},
			{Name: "oil_life_percent", Kind: Continuous},
			{Name: "battery_health_percent", Kind: Continuous},
			{Name: "route_type", Kind: Categorical},
			{Name: "load_profile", Kind: Categorical},
			{Name: "ambient_temp_c", Kind: Continuous},
			{Name: "service_type", Kind: Categorical},
			{Name: "parts_in_stock_status", Kind: Categorical},
			{Name: "technician_experience_years", Kind: Count},
			{Name: "current_queue_length", Kind: Continuous},
			{Name: "shift_hours_remaining", Kind: Continuous},
			{Name: "brake_pad_thickness_mm", Kind: Continuous},
			{Name: "tyre_health_percent", Kind: Continuous},
			{Name: "fuel_efficiency_kmpl", Kind: Continuous},
			{Name: "approx_past_services", Kind: Count},
		},
	}
}

// FieldNames returns the field names in schema order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the schema for duplicate or unnamed fields and unknown
// kinds. Called once when an artifact is loaded.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %q has no fields", s.Version)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %q contains an unnamed field", s.Version)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %q contains duplicate field %q", s.Version, f.Name)
		}
		seen[f.Name] = true
		switch f.Kind {
		case Categorical, Count, Continuous:
		default:
			return fmt.Errorf("field %q has unknown kind %q", f.Name, f.Kind)
		}
	}
	return nil
}

// Equal reports whether two schemas agree on version, field set and order.
func (s Schema) Equal(other Schema) bool {
	if s.Version != other.Version || len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}
