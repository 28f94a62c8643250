// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// FeedClient is the shared client for external stats/league sources.
// The timeout bounds every fetch; callers fall back to local data when
// it fires.
var FeedClient = &http.Client{
	Timeout: 15 * time.Second,
}
