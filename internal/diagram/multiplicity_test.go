package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMany(t *testing.T) {
	tests := []struct {
		m    string
		want bool
	}{
		{"1", false},
		{"", false},
		{"  ", false},
		{"2", false},
		{"0..1", true},
		{"1..1", true},
		{"*", true},
		{"0..*", true},
		{"1..*", true},
		{"1..N", true},
		{"n", true},
		{"N", true},
		{"2..5", true},
		{"0..m", true},
		{" 0 .. * ", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMany(tt.m), "IsMany(%q)", tt.m)
	}
}

func TestNormalizeMultiplicity(t *testing.T) {
	assert.Equal(t, "1", NormalizeMultiplicity(""))
	assert.Equal(t, "0..*", NormalizeMultiplicity(" 0 .. * "))
	assert.Equal(t, "1..N", NormalizeMultiplicity("1..N"))
}
