package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

// timestampLayouts are tried in order when decoding task timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// todoRecord is a task as the API sends it.
//
// List responses name the timestamp "createdAt" while create/update responses name it "created_at"; both are
// accepted on every response.
type todoRecord struct {
	ID             flexID   `json:"id"`
	Text           string   `json:"text"`
	Completed      flexBool `json:"completed"`
	CreatedAt      flexTime `json:"createdAt"`
	CreatedAtSnake flexTime `json:"created_at"`
}

// Task maps the record into [models.Task]. A record without an id is malformed.
func (r todoRecord) Task() (models.Task, error) {
	if !r.ID.valid {
		return models.Task{}, fmt.Errorf("%w: task record without id", shared.ErrMalformedResponse)
	}

	created := r.CreatedAt.Time
	if !r.CreatedAt.valid {
		created = r.CreatedAtSnake.Time
	}

	return models.Task{
		ID:        r.ID.value,
		Text:      r.Text,
		Completed: bool(r.Completed),
		CreatedAt: created,
	}, nil
}

// flexID accepts a JSON string or number.
type flexID struct {
	value string
	valid bool
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = flexID{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID{value: s, valid: true}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*f = flexID{value: n.String(), valid: true}
	}
	return nil
}

// flexBool coerces JSON values to a boolean the way a truthiness check would:
// false, 0, "", and null are false; everything else is true.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = flexBool(t)
	case float64:
		*f = t != 0
	case string:
		*f = t != ""
	default:
		*f = true
	}
	return nil
}

// flexTime accepts a timestamp string in any of [timestampLayouts] or a number of epoch milliseconds.
//
// Unparseable values decode to the zero time rather than failing the whole payload.
type flexTime struct {
	time.Time
	valid bool
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		*f = flexTime{Time: parseTimestamp(t), valid: true}
	case float64:
		*f = flexTime{Time: time.UnixMilli(int64(t)).UTC(), valid: true}
	default:
		*f = flexTime{}
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
