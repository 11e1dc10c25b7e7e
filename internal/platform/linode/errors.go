package linode

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/linode/linodego"
)

// isLinodeErrorCode checks if the error is a Linode API error with one of the
// given HTTP status codes.
func isLinodeErrorCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *linodego.Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates the resource does not exist.
func IsNotFound(err error) bool {
	return isLinodeErrorCode(err, http.StatusNotFound)
}

// IsBadRequest checks if an error is a request the API rejected outright.
func IsBadRequest(err error) bool {
	return isLinodeErrorCode(err, http.StatusBadRequest)
}

// IsRateLimited checks if an error indicates API rate limiting.
func IsRateLimited(err error) bool {
	return isLinodeErrorCode(err, http.StatusTooManyRequests)
}

// IsTimeout checks if an error is a timeout: either a network-level timeout
// or a request-timeout response from the API.
func IsTimeout(err error) bool {
	if isLinodeErrorCode(err, http.StatusRequestTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsDuplicateLabel checks if an error is the bad-request response Linode
// returns when the requested label is already taken. Any other bad request
// signals a genuine configuration problem and must not be retried.
func IsDuplicateLabel(err error) bool {
	if !IsBadRequest(err) {
		return false
	}
	var apiErr *linodego.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "must be unique")
}

// RetryAfterHint extracts the server-supplied Retry-After delay from a
// rate-limited response, if present.
func RetryAfterHint(err error) (time.Duration, bool) {
	var apiErr *linodego.Error
	if !errors.As(err, &apiErr) || apiErr.Response == nil {
		return 0, false
	}
	header := apiErr.Response.Header.Get("Retry-After")
	if header == "" {
		return 0, false
	}
	secs, convErr := strconv.Atoi(header)
	if convErr != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
