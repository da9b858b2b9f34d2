package auditlog

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerBufferBound(t *testing.T) {
	l := NewLogger(nil, nil)

	var firstID string
	for i := 0; i < MaxBufferEntries+1; i++ {
		e := l.Log(Entry{EventType: EventLoginAttempt, DeviceID: "d"})
		if i == 0 {
			firstID = e.ID
		}
	}

	logs := l.Logs(0)
	require.Len(t, logs, MaxBufferEntries)

	// Oldest entry (the first one logged) must have been evicted.
	for _, e := range logs {
		assert.NotEqual(t, firstID, e.ID)
	}
}

func TestLoggerCriticalDurabilityCap(t *testing.T) {
	store := NewMemoryCriticalStore()
	l := NewLogger(store, nil)

	var firstID string
	for i := 0; i < MaxCriticalEntries+1; i++ {
		e := l.Log(Entry{EventType: EventSecurityViolation, Severity: SeverityCritical})
		if i == 0 {
			firstID = e.ID
		}
	}

	durable, err := store.All()
	require.NoError(t, err)
	require.Len(t, durable, MaxCriticalEntries)
	for _, e := range durable {
		assert.NotEqual(t, firstID, e.ID)
	}
}

func TestLoggerNonCriticalNotPersisted(t *testing.T) {
	store := NewMemoryCriticalStore()
	l := NewLogger(store, nil)

	l.Log(Entry{EventType: EventLoginFailed, Severity: SeverityMedium})
	l.Log(Entry{EventType: EventSecurityViolation, Severity: SeverityCritical})

	durable, err := store.All()
	require.NoError(t, err)
	require.Len(t, durable, 1)
	assert.Equal(t, EventSecurityViolation, durable[0].EventType)
}

func TestLoggerFilters(t *testing.T) {
	l := NewLogger(nil, nil)

	l.Log(Entry{EventType: EventLoginFailed, IPAddress: "10.0.0.1"})
	l.Log(Entry{EventType: EventLoginSuccess, IPAddress: "10.0.0.2"})
	l.Log(Entry{EventType: EventLoginFailed, IPAddress: "10.0.0.1"})

	assert.Len(t, l.LogsByType(EventLoginFailed, 0), 2)
	assert.Len(t, l.LogsByType(EventLoginSuccess, 0), 1)
	assert.Len(t, l.LogsByIP("10.0.0.1", 0), 2)
	assert.Len(t, l.LogsByIP("10.0.0.1", 1), 1)
	assert.Len(t, l.Recent(5), 3)

	// Newest first.
	logs := l.Logs(0)
	require.Len(t, logs, 3)
	assert.Equal(t, EventLoginFailed, logs[0].EventType)
	assert.GreaterOrEqual(t, logs[0].Timestamp, logs[2].Timestamp)
}

func TestLoggerStatisticsWindow(t *testing.T) {
	l := NewLogger(nil, nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	// Two days old: counted in total, excluded from breakdowns.
	l.Log(Entry{EventType: EventLoginFailed, Timestamp: base.Add(-48 * time.Hour).UnixMilli(), IPAddress: "10.0.0.9"})
	// Two hours old: in the 24h window, outside the 1h window.
	l.Log(Entry{EventType: EventLoginFailed, Timestamp: base.Add(-2 * time.Hour).UnixMilli(), IPAddress: "10.0.0.1", DeviceID: "d1", Severity: SeverityMedium})
	// Fresh.
	l.Log(Entry{EventType: EventLoginSuccess, Timestamp: base.Add(-time.Minute).UnixMilli(), IPAddress: "10.0.0.1", DeviceID: "d2", Severity: SeverityLow})

	stats := l.Statistics()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Last24h)
	assert.Equal(t, 1, stats.LastHour)
	assert.Equal(t, 1, stats.ByType[EventLoginFailed])
	assert.Equal(t, 1, stats.ByType[EventLoginSuccess])
	assert.Equal(t, 1, stats.BySeverity[SeverityMedium])
	assert.Equal(t, 1, stats.UniqueIPs)
	assert.Equal(t, 2, stats.UniqueDevices)
}

func TestLoggerExportJSONRoundTrip(t *testing.T) {
	l := NewLogger(nil, nil)
	for i := 0; i < 25; i++ {
		l.Log(Entry{EventType: EventAdminAction, Details: map[string]interface{}{"n": i}})
	}

	raw, err := l.Export(FormatJSON)
	require.NoError(t, err)

	var parsed []Entry
	require.NoError(t, json.Unmarshal(raw, &parsed))

	original := l.Logs(0)
	require.Len(t, parsed, len(original))

	ids := map[string]bool{}
	for _, e := range original {
		ids[e.ID] = true
	}
	for _, e := range parsed {
		assert.True(t, ids[e.ID], "exported id %s missing from buffer", e.ID)
	}
}

func TestLoggerExportCSV(t *testing.T) {
	l := NewLogger(nil, nil)
	l.Log(Entry{
		EventType: EventRateLimitExceeded,
		Severity:  SeverityHigh,
		DeviceID:  "dev-1",
		IPAddress: "10.0.0.1",
		Details:   map[string]interface{}{"attempts": 6},
	})

	raw, err := l.Export(FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"timestamp", "event_type", "severity", "device_id", "ip_address", "details"}, records[0])
	row := records[1]
	assert.Equal(t, EventRateLimitExceeded, row[1])
	assert.Equal(t, SeverityHigh, row[2])
	assert.Equal(t, "dev-1", row[3])
	assert.Equal(t, "10.0.0.1", row[4])
	assert.Contains(t, row[5], "attempts")

	_, err = time.Parse(time.RFC3339, row[0])
	assert.NoError(t, err)
}

func TestLoggerClear(t *testing.T) {
	store := NewMemoryCriticalStore()
	l := NewLogger(store, nil)

	l.Log(Entry{EventType: EventSecurityViolation, Severity: SeverityCritical})
	require.NoError(t, l.Clear())

	assert.Empty(t, l.Logs(0))
	durable, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, durable)
}

func TestLoggerUnsupportedExportFormat(t *testing.T) {
	l := NewLogger(nil, nil)
	_, err := l.Export("xml")
	assert.Error(t, err)
}
