package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HTMXHeader marks requests that want an embeddable HTML fragment instead of JSON.
const HTMXHeader = "HX-Request"

// Timestamp formats t the way the dashboard expects (ISO-8601, local time, microseconds).
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

func WantsFragment(c *gin.Context) bool {
	return c.GetHeader(HTMXHeader) != ""
}

// Negotiate renders the named fragment for HTMX requests and JSON otherwise.
func Negotiate(c *gin.Context, fragment, key string, data interface{}) {
	if WantsFragment(c) {
		c.HTML(http.StatusOK, fragment, gin.H{key: data})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
