package auditlog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Buffer limits. The in-memory buffer is diagnostic tooling scoped to one
// process, not a system of record; critical entries additionally go to the
// durable store.
const (
	MaxBufferEntries   = 1000
	MaxCriticalEntries = 50
)

// Export formats accepted by Export.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// CriticalStore persists critical-severity entries across restarts,
// capped at MaxCriticalEntries with the oldest dropped first.
type CriticalStore interface {
	Append(e Entry) error
	All() ([]Entry, error)
	Clear() error
}

// Sink receives a copy of every entry for external forwarding. Forwarding
// is best-effort: a failing sink must never block or fail Log.
type Sink interface {
	Forward(e Entry) error
}

// Statistics is the aggregate view over the buffer. Type/severity
// breakdowns and cardinalities cover the last 24 hours only.
type Statistics struct {
	Total         int            `json:"total"`
	Last24h       int            `json:"last_24h"`
	LastHour      int            `json:"last_hour"`
	ByType        map[string]int `json:"by_type"`
	BySeverity    map[string]int `json:"by_severity"`
	UniqueIPs     int            `json:"unique_ips"`
	UniqueDevices int            `json:"unique_devices"`
}

// ============================
// 📋 In-memory audit logger
// ============================

// Logger keeps a newest-first bounded buffer of security events. It is an
// explicitly constructed service passed to handlers, never a package
// singleton, so tests and multi-instance deployments stay tractable.
type Logger struct {
	mu      sync.RWMutex
	entries []Entry // newest first

	critical CriticalStore
	sink     Sink

	now func() time.Time
}

// NewLogger builds a logger. critical may be nil (criticals then live only
// in the buffer); sink may be nil (no forwarding).
func NewLogger(critical CriticalStore, sink Sink) *Logger {
	return &Logger{
		critical: critical,
		sink:     sink,
		now:      time.Now,
	}
}

// Log assigns id and timestamp, prepends the entry and evicts the oldest
// past MaxBufferEntries. Critical entries are mirrored to the durable
// store; sink forwarding runs detached and cannot fail the call.
func (l *Logger) Log(e Entry) Entry {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = l.now().UnixMilli()
	}
	if e.Severity == "" {
		e.Severity = SeverityLow
	}
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}

	l.mu.Lock()
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > MaxBufferEntries {
		l.entries = l.entries[:MaxBufferEntries]
	}
	l.mu.Unlock()

	if e.Severity == SeverityCritical && l.critical != nil {
		if err := l.critical.Append(e); err != nil {
			fmt.Printf("⚠️ critical audit persistence failed: %v\n", err)
		}
	}

	if l.sink != nil {
		go func(copy Entry) {
			defer func() { _ = recover() }()
			if err := l.sink.Forward(copy); err != nil {
				fmt.Printf("⚠️ audit sink forward failed: %v\n", err)
			}
		}(e)
	}

	return e
}

// Logs returns up to limit entries, newest first. limit <= 0 means all.
func (l *Logger) Logs(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyLimit(l.entries, limit)
}

// LogsByType filters the buffer by event type, newest first.
func (l *Logger) LogsByType(eventType string, limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.EventType == eventType {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// Recent returns entries from the last n minutes, newest first.
func (l *Logger) Recent(minutes int) []Entry {
	cutoff := l.now().Add(-time.Duration(minutes) * time.Minute).UnixMilli()

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Timestamp < cutoff {
			break // newest-first, everything after is older
		}
		out = append(out, e)
	}
	return out
}

// LogsByIP filters the buffer by source IP, newest first.
func (l *Logger) LogsByIP(ip string, limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.IPAddress == ip {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// Critical returns critical-severity entries from the buffer, newest first.
func (l *Logger) Critical(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Severity == SeverityCritical {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// DurableCritical reads back the persisted critical entries.
func (l *Logger) DurableCritical() ([]Entry, error) {
	if l.critical == nil {
		return nil, nil
	}
	return l.critical.All()
}

// Statistics aggregates the buffer. Breakdowns are restricted to the
// trailing 24h window; totals also report the trailing hour.
func (l *Logger) Statistics() Statistics {
	now := l.now()
	dayCutoff := now.Add(-24 * time.Hour).UnixMilli()
	hourCutoff := now.Add(-time.Hour).UnixMilli()

	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Statistics{
		Total:      len(l.entries),
		ByType:     map[string]int{},
		BySeverity: map[string]int{},
	}

	ips := map[string]struct{}{}
	devices := map[string]struct{}{}

	for _, e := range l.entries {
		if e.Timestamp < dayCutoff {
			continue
		}
		stats.Last24h++
		if e.Timestamp >= hourCutoff {
			stats.LastHour++
		}
		stats.ByType[e.EventType]++
		stats.BySeverity[e.Severity]++
		if e.IPAddress != "" {
			ips[e.IPAddress] = struct{}{}
		}
		if e.DeviceID != "" {
			devices[e.DeviceID] = struct{}{}
		}
	}

	stats.UniqueIPs = len(ips)
	stats.UniqueDevices = len(devices)
	return stats
}

// Export serializes the full buffer as pretty JSON or CSV.
func (l *Logger) Export(format string) ([]byte, error) {
	entries := l.Logs(0)

	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(entries, "", "  ")

	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"timestamp", "event_type", "severity", "device_id", "ip_address", "details"}); err != nil {
			return nil, err
		}
		for _, e := range entries {
			details, err := json.Marshal(e.Details)
			if err != nil {
				details = []byte("{}")
			}
			row := []string{
				e.Time().UTC().Format(time.RFC3339),
				e.EventType,
				e.Severity,
				e.DeviceID,
				e.IPAddress,
				string(details),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Clear empties the buffer and the durable critical store.
func (l *Logger) Clear() error {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()

	if l.critical != nil {
		return l.critical.Clear()
	}
	return nil
}

func copyLimit(entries []Entry, limit int) []Entry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, entries[:n])
	return out
}
