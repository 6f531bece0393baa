package shaping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReshapeForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"isolated letter", "ب", "\uFE8F"},
		{"two dual letters", "بب", "\uFE91\uFE90"},
		{"right joining breaks chain", "داد", "\uFEA9\uFE8D\uFEA9"},
		{"hamza does not join", "بءب", "\uFE8F\uFE80\uFE8F"},
		{"latin breaks chain", "بxب", "\uFE8F" + "x" + "\uFE8F"},
		{"tatweel joins", "بـ", "\uFE91ـ"},
		{"lam alef after dual", "بلا", "\uFE91\uFEFC"},
		{"persian peh", "پپپ", "\uFB58\uFB59\uFB57"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reshape(tt.in, false))
		})
	}
}

func TestReshapeHarakat(t *testing.T) {
	// beh, fatha, beh
	in := "ب\u064Eب"

	assert.Equal(t, "\uFE91\uFE90", reshape(in, false))
	assert.Equal(t, "\uFE91\u064E\uFE90", reshape(in, true))
}

func TestReshapeLamAlefWithMark(t *testing.T) {
	// lam, shadda, alef
	in := "ل\u0651ا"

	assert.Equal(t, "\uFEFB", reshape(in, false))
	assert.Equal(t, "\uFEFB\u0651", reshape(in, true))
}
