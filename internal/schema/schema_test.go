package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV1IsValid(t *testing.T) {
	s := V1()
	assert.NoError(t, s.Validate())
	assert.Equal(t, Version1, s.Version)
	assert.Len(t, s.Fields, 21)
}

func TestV1FieldOrder(t *testing.T) {
	names := V1().FieldNames()
	assert.Equal(t, "vehicle_model", names[0])
	assert.Equal(t, "year_bought", names[1])
	assert.Equal(t, "approx_past_services", names[len(names)-1])
}

func TestLookup(t *testing.T) {
	s := V1()

	f, ok := s.Lookup("route_type")
	assert.True(t, ok)
	assert.Equal(t, Categorical, f.Kind)

	f, ok = s.Lookup("technician_experience_years")
	assert.True(t, ok)
	assert.Equal(t, Count, f.Kind)

	_, ok = s.Lookup("no_such_field")
	assert.False(t, ok)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	s := Schema{
		Version: "test",
		Fields: []Field{
			{Name: "a", Kind: Continuous},
			{Name: "a", Kind: Continuous},
		},
	}
	assert.Error(t, s.Validate())
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	s := Schema{
		Version: "test",
		Fields:  []Field{{Name: "a", Kind: Kind("weird")}},
	}
	assert.Error(t, s.Validate())
}

func TestValidateRejectsEmpty(t *testing.T) {
	assert.Error(t, Schema{Version: "test"}.Validate())
}

func TestEqual(t *testing.T) {
	assert.True(t, V1().Equal(V1()))

	other := V1()
	other.Fields = other.Fields[:len(other.Fields)-1]
	assert.False(t, V1().Equal(other))

	renamed := V1()
	renamed.Version = "v2"
	assert.False(t, V1().Equal(renamed))
}
