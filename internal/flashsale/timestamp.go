package flashsale

import (
	"time"
)

// ParseInstant normalizes the timestamp shapes campaign documents show up
// with: a native time.Time, an ISO-8601 string, a Unix-epoch millisecond
// number, or a {seconds, nanoseconds} pair as produced by document-database
// client libraries. Anything else is treated as absent, never as an error.
func ParseInstant(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		return parseStringInstant(v)
	case float64:
		return fromEpochMillis(int64(v)), true
	case int64:
		return fromEpochMillis(v), true
	case int:
		return fromEpochMillis(int64(v)), true
	case map[string]any:
		return parseSecondsPair(v)
	default:
		return time.Time{}, false
	}
}

func parseStringInstant(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseSecondsPair(m map[string]any) (time.Time, bool) {
	secs, ok := numberField(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := numberField(m, "nanoseconds", "_nanoseconds")
	return time.Unix(secs, nanos).UTC(), true
}

func numberField(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int64(v), true
		case int64:
			return v, true
		case int:
			return int64(v), true
		}
	}
	return 0, false
}

func fromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
