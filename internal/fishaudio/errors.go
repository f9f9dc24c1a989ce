package fishaudio

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable indicates the provider is not reachable.
var ErrUnavailable = errors.New("voice provider unavailable")

// ProviderError carries a provider-side failure with its diagnostic payload.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// AsProviderError extracts a ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsFormatRejection reports whether the provider rejected the request in a
// way that usually means an unsupported audio format or validation problem.
func IsFormatRejection(err error) bool {
	pe, ok := AsProviderError(err)
	if !ok {
		return false
	}
	return pe.StatusCode == http.StatusBadRequest || pe.StatusCode == http.StatusUnsupportedMediaType
}
