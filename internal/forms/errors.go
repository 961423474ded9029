package forms

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// RemoteMessage extracts the human-readable part of a Forms API failure.
// googleapi errors carry the server's own message; anything else (transport,
// token refresh) is reported as-is.
func RemoteMessage(err error) string {
	if err == nil {
		return ""
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && strings.TrimSpace(gerr.Message) != "" {
		return gerr.Message
	}
	return err.Error()
}

// StatusCode returns the HTTP status of a googleapi error, or 0.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
