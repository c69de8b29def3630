package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Code       string `json:"code" validate:"omitempty,len=6,numeric"`
	Internal   string `json:"-" validate:"omitempty,max=3"`
}

func TestStruct_Identifier(t *testing.T) {
	for _, ok := range []string{"seller@shop.com", "+15551234567"} {
		assert.NoError(t, Struct(&sample{Identifier: ok}), ok)
	}
	for _, bad := range []string{"seller", "5551234567", "15551234567", "+0123", "+1555abc4567", "@shop.com"} {
		assert.Error(t, Struct(&sample{Identifier: bad}), bad)
	}
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	err := Struct(&sample{Identifier: "a@b.co", Code: "12ab56"})
	require.Error(t, err)
	assert.Equal(t, "field 'code' failed 'numeric'", err.Error())
}

func TestStruct_FallsBackToGoNameForHiddenFields(t *testing.T) {
	err := Struct(&sample{Identifier: "a@b.co", Internal: "toolong"})
	require.Error(t, err)
	assert.Equal(t, "field 'Internal' failed 'max'", err.Error())
}

func TestStruct_JoinsMultipleFailures(t *testing.T) {
	err := Struct(&sample{Code: "1"})
	require.Error(t, err)
	assert.Equal(t, "field 'identifier' failed 'required'; field 'code' failed 'len'", err.Error())
}
