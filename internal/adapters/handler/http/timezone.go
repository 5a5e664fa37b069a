package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// TimezoneHeader carries the IANA zone of the player's device, which defines
// their calendar days.
const TimezoneHeader = "X-Timezone"

// requestLocation resolves the caller's zone. On an invalid header it writes
// a 400 and returns false.
func requestLocation(c *gin.Context, fallback *time.Location) (*time.Location, bool) {
	name := strings.TrimSpace(c.GetHeader(TimezoneHeader))
	if name == "" {
		return fallback, true
	}

	loc, err := time.LoadLocation(name)
	if err != nil || name == "Local" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + TimezoneHeader + " header, expected an IANA zone like Europe/Rome"})
		return nil, false
	}

	return loc, true
}
