package emotion

import "errors"

var (
	// ErrModelUnavailable indicates the classifier backend failed to
	// initialize or is unreachable. Retry is manual, by re-issuing the request.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInvalidResponse indicates the backend returned a payload that could
	// not be parsed into a raw classification. Fatal for the request.
	ErrInvalidResponse = errors.New("invalid classifier response")
)
