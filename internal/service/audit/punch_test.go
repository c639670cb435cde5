package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPunches(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"sem registro", []string{}},
		{"08:00 12:00 13:00 17:00", []string{"08:00", "12:00", "13:00", "17:00"}},
		{"08:00-12:00|13:00", []string{"08:00", "12:00", "13:00"}},
		{"99:99", []string{"99:99"}},
		{"8:00 08:0", []string{}},
		{"E08:00*S17:00", []string{"08:00", "17:00"}},
		{"12:00 12:00", []string{"12:00", "12:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPunches(tt.raw))
		})
	}
}

func TestIsDayMarker(t *testing.T) {
	assert.True(t, IsDayMarker("05/01 SEG"))
	assert.True(t, IsDayMarker("  05/01"))
	assert.True(t, IsDayMarker("31"))
	assert.False(t, IsDayMarker("5/01"))
	assert.False(t, IsDayMarker("CABEÇALHO"))
	assert.False(t, IsDayMarker(""))
}

func TestNormalizeReason(t *testing.T) {
	assert.Equal(t, "", NormalizeReason(""))
	assert.Equal(t, "", NormalizeReason("   \n"))
	assert.Equal(t, "FÉRIAS COLETIVAS", NormalizeReason("  férias \t coletivas "))
}
