package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidGSTINFormat(t *testing.T) {
	tests := []struct {
		gstin string
		want  bool
	}{
		{"27AAPFU0939F1ZV", true},
		{"07ABCDE1234F2Z5", true},
		{"", false},
		{"27AAPFU0939F1Z", false},   // too short
		{"27AAPFU0939F1ZVX", false}, // too long
		{"27aapfu0939f1zv", false},  // lowercase
		{"XXAAPFU0939F1ZV", false},  // state code not numeric
		{"27AAPFU0939F1XV", false},  // missing Z marker
	}

	for _, tt := range tests {
		t.Run(tt.gstin, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGSTINFormat(tt.gstin))
		})
	}
}
