// Package resilience provides retry with exponential backoff for the
// external price-source calls.
package resilience

import (
	"context"
	"errors"
	"net"

	"github.com/rotisserie/eris"
)

// errTransient marks errors worth retrying.
var errTransient = eris.New("transient")

// MarkTransient wraps err so IsTransient reports true for it.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return eris.Wrap(errTransient, err.Error())
}

// IsTransient reports whether err looks like a temporary failure: network
// timeouts, or anything explicitly marked via MarkTransient. Context
// cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if eris.Is(err, errTransient) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
