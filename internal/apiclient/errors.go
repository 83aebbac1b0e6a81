package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is the single failure type of the client: a transport failure,
// a non-2xx status, or an unreadable response.
type NetworkError struct {
	Op         string
	StatusCode int    // 0 when no response was received
	Body       string // trimmed response body of a non-2xx reply
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		if e.Body != "" {
			return fmt.Sprintf("%s: HTTP error %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s: HTTP error %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": network error"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the resource.
func IsNotFound(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.StatusCode == http.StatusNotFound
}
