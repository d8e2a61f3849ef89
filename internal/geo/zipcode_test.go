package geo

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeZipcode_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "10001", "10001"},
		{"plus four", "10001-1234", "10001"},
		{"spaces", " 300 01 ", "30001"},
		{"leading zeros", "00501", "00501"},
		{"nine digits takes first five", "123456789", "12345"},
		{"letters stripped", "zip 77002!", "77002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeZipcode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeZipcode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no digits", "abcde"},
		{"too few digits", "1234"},
		{"hyphens only", "---"},
		{"all zeros", "00000"},
		{"unicode garbage", "≈ツ☃"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeZipcode(tt.raw)
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidZipcode))
		})
	}
}
