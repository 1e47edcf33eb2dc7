package exchange

import "fmt"

// RateServiceError indicates the upstream rate source responded with a
// non-success status. It is never fatal to the surrounding request; callers
// downgrade it to an absence-of-conversion state.
type RateServiceError struct {
	Status int
}

func (e *RateServiceError) Error() string {
	return fmt.Sprintf("exchange rate service returned status %d", e.Status)
}

// RateUnavailableError indicates the upstream responded successfully but has
// no rate for the requested currency (unsupported or delisted).
type RateUnavailableError struct {
	Currency string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no exchange rate available for currency %s", e.Currency)
}
