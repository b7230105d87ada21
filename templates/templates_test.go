package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpl := Load()

	for _, name := range []string{"index.html", "ws_test.html", "redoc.html", "status.html", "metrics.html", "demo_lb.html", "health.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStatusFragment(t *testing.T) {
	var buf bytes.Buffer
	err := Load().ExecuteTemplate(&buf, "status.html", map[string]interface{}{
		"status": struct{ Application, Database, Hostname, Timestamp string }{"healthy", "Connected", "pod-1", "now"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Connected")
	assert.Contains(t, buf.String(), "pod-1")
}
