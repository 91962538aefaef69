package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the counter samples of family name whose labels include want.
func counterValue(t *testing.T, name string, want map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
					matched++
				}
			}
			if matched == len(want) {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestObserveRequest(t *testing.T) {
	labels := map[string]string{"method": "GET", "route": "/entries", "status": "200"}
	before := counterValue(t, "daylio_http_requests_total", labels)
	ObserveRequest(http.MethodGet, "/entries", http.StatusOK, 5*time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, "daylio_http_requests_total", labels))
}

func TestCounters(t *testing.T) {
	created := counterValue(t, "daylio_entries_created_total", nil)
	EntryCreated()
	assert.Equal(t, created+1, counterValue(t, "daylio_entries_created_total", nil))

	failed := map[string]string{"result": "failed"}
	before := counterValue(t, "daylio_backup_imports_total", failed)
	BackupImported(false)
	assert.Equal(t, before+1, counterValue(t, "daylio_backup_imports_total", failed))
}
