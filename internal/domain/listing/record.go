package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a listing row exactly as fetched from the catalog store.
// Values keep their driver types; accessors normalize them on read.
type Record map[string]any

// Common record fields.
const (
	FieldID          = "id"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldCreatedAt   = "created_at"

	FieldTitle        = "title"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldLocation     = "location"
	FieldPropertyType = "property_type"
	FieldCategory     = "category"
	FieldVehicleType  = "vehicle_type"
)

// timeLayouts are the textual timestamp formats accepted by Time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ID returns the record identifier as a string, or "" if absent.
func (r Record) ID() string {
	v, ok := r[FieldID]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		// JSON documents decode every number as float64.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// String returns a textual field. The second result is false when the field is
// absent, null or not textual.
func (r Record) String(key string) (string, bool) {
	switch t := r[key].(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	default:
		return "", false
	}
}

// Number returns a numeric field, or 0 when absent or unparsable.
func (r Record) Number(key string) float64 {
	f, ok := toFloat(r[key])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Rating returns the listing rating (0 when absent).
func (r Record) Rating() float64 { return r.Number(FieldRating) }

// ReviewCount returns the number of reviews (0 when absent).
func (r Record) ReviewCount() float64 { return r.Number(FieldReviewCount) }

// Time returns a timestamp field. Missing or unparsable values map to the Unix epoch.
func (r Record) Time(key string) time.Time {
	epoch := time.Unix(0, 0).UTC()
	switch t := r[key].(type) {
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return epoch
		}
		return *t
	case string:
		return parseTime(t, epoch)
	case []byte:
		return parseTime(string(t), epoch)
	default:
		// Redis documents store created_at as unix seconds.
		if f, ok := toFloat(t); ok {
			return time.Unix(int64(f), 0).UTC()
		}
		return epoch
	}
}

// CreatedAt returns the creation timestamp (epoch when absent).
func (r Record) CreatedAt() time.Time { return r.Time(FieldCreatedAt) }

func parseTime(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		return f, err == nil
	case *float64:
		if t == nil {
			return 0, false
		}
		return *t, true
	default:
		return 0, false
	}
}
