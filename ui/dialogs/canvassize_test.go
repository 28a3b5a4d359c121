package dialogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize(" 1024", "768 ")
	require.NoError(t, err)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	tests := []struct {
		name, w, h, field string
	}{
		{"empty width", "", "10", "width"},
		{"negative height", "10", "-1", "height"},
		{"zero", "0", "10", "width"},
		{"fraction", "10.5", "10", "width"},
		{"too large", "10", "20001", "height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSize(tt.w, tt.h)
			require.Error(t, err)
			assert.ErrorIs(t, err, errBadSize)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
