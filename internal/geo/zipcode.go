package geo

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidZipcode marks zipcode inputs that cannot be normalized to a
// valid 5-digit code. It never escapes AssignMSA; callers of
// NormalizeZipcode can test for it with eris.Is.
var ErrInvalidZipcode = eris.New("invalid zipcode")

// NormalizeZipcode strips non-digit characters from raw input, requires at
// least 5 digits to remain, and returns the first 5. Leading zeros are
// valid ("00501"); an all-zero code is not.
func NormalizeZipcode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if digits == "" {
		return "", eris.Wrap(ErrInvalidZipcode, "no digits in input")
	}
	if len(digits) < 5 {
		return "", eris.Wrapf(ErrInvalidZipcode, "need 5 digits, got %d", len(digits))
	}

	zip := digits[:5]
	n, err := strconv.Atoi(zip)
	if err != nil {
		return "", eris.Wrap(ErrInvalidZipcode, zip)
	}
	if n < 1 || n > 99999 {
		return "", eris.Wrapf(ErrInvalidZipcode, "out of range: %s", zip)
	}
	return zip, nil
}
