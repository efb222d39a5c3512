package source

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref      string
		expected Area
	}{
		{"Sheet1!$B$3:$B$6", Area{Sheet: "Sheet1", R1: 3, C1: 2, R2: 6, C2: 2}},
		{"'My Sheet'!A1:C2", Area{Sheet: "My Sheet", R1: 1, C1: 1, R2: 2, C2: 3}},
		{"'It''s'!D4", Area{Sheet: "It's", R1: 4, C1: 4, R2: 4, C2: 4}},
		{"Sheet1!B6:B3", Area{Sheet: "Sheet1", R1: 3, C1: 2, R2: 6, C2: 2}},
	}

	for _, tt := range tests {
		area, err := ParseReference(tt.ref)
		require.NoErrorf(t, err, "ParseReference(%q)", tt.ref)
		assert.Equal(t, tt.expected, area)
	}

	for _, bad := range []string{"B3:B6", "Sheet1!", "Sheet1!B3:B6:B9", "Sheet1!3B"} {
		_, err := ParseReference(bad)
		assert.ErrorIsf(t, err, ErrInvalidReference, "ParseReference(%q)", bad)
	}
}

func TestReadRange(t *testing.T) {
	f := openWorkbook(t, writeWorkbook(t))

	series, err := ReadRange(f, "Sheet1!$B$3:$B$6")
	require.NoError(t, err)
	require.Len(t, series.Values, 4)
	assert.Equal(t, 1.0, series.Values[0])
	assert.True(t, math.IsNaN(series.Values[2]))

	_, err = ReadRange(f, "Sheet1!B2:C2")
	assert.ErrorIs(t, err, ErrNonNumeric)
}
