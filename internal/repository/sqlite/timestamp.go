package sqlite

import (
	"fmt"
	"time"
)

// timeLayouts are the text forms a DATETIME column may hold: ours, the
// CURRENT_TIMESTAMP default, and the driver's own time.Time encoding.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// formatTime renders t the way created_at columns are written
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timestamp scans a DATETIME column whatever storage class it came back in
type timestamp struct {
	t *time.Time
}

func scanTime(t *time.Time) timestamp {
	return timestamp{t: t}
}

// Scan implements sql.Scanner
func (s timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s.t = time.Time{}
		return nil
	case time.Time:
		*s.t = v.UTC()
		return nil
	case int64:
		*s.t = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s timestamp) parse(value string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", value)
}
