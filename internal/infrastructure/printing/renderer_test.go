package printing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaperSize(t *testing.T) {
	tests := []struct {
		raw  string
		want PaperSize
		ok   bool
	}{
		{"", PaperThermal80, true},
		{"thermal", PaperThermal80, true},
		{"a5", PaperA5, true},
		{"A4", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePaperSize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaperSize_Dimensions(t *testing.T) {
	w, h := PaperA5.Dimensions()
	assert.Equal(t, 148.0, w)
	assert.Equal(t, 210.0, h)
	assert.False(t, PaperA5.IsContinuous())

	w, h = PaperThermal80.Dimensions()
	assert.Equal(t, 80.0, w)
	assert.Zero(t, h)
	assert.True(t, PaperThermal80.IsContinuous())
}

func TestRenderError(t *testing.T) {
	cause := errors.New("chrome exited")
	err := NewRenderError(ErrCodeRenderFailed, "render failed", cause)

	assert.Equal(t, "render failed: chrome exited", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "empty", NewRenderError(ErrCodeInvalidHTML, "empty", nil).Error())
}
