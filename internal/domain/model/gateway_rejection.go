package model

import (
	"fmt"
	"net/http"
)

// GatewayRejection is a non-2xx reply from the API gateway. Reason carries the
// body's error text when the gateway supplied one.
type GatewayRejection struct {
	StatusCode int
	Reason     string
}

func (r *GatewayRejection) Error() string {
	if r.Reason != "" {
		return fmt.Sprintf("gateway returned %d: %s", r.StatusCode, r.Reason)
	}
	return fmt.Sprintf("gateway returned %d %s", r.StatusCode, http.StatusText(r.StatusCode))
}
