package database

import (
	"fmt"
	"time"
)

// TimeLayout is the layout timestamps are written in. Both engines
// accept it for DATETIME and TEXT columns.
const TimeLayout = "2006-01-02 15:04:05"

var readLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
}

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Timestamp scans a timestamp column regardless of how the driver
// returns it: time.Time, a string or raw bytes.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time, ts.Valid = time.Time{}, false
		return nil
	case time.Time:
		ts.Time, ts.Valid = v.UTC(), true
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("scanning timestamp: unsupported type %T", src)
	}
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time, ts.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("scanning timestamp: unrecognised format %q", s)
}
