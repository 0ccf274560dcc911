package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

// Normalize converts an untyped JSON value into a structurally valid Dream.
//
// It reports false only when raw is not a JSON object. Every other input
// produces a dream, with absent or invalid fields replaced by defaults.
// Normalize never panics and never returns an error.
func Normalize(raw any) (dreams.Dream, bool) {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return dreams.Dream{}, false
	}

	now := dreams.Now()
	d := dreams.Dream{
		ID:                 identifier(obj["id"]),
		DreamText:          text(obj["dreamText"]),
		IsLucidDream:       truthy(obj["isLucidDream"]),
		IsNightmare:        truthy(obj["isNightmare"]),
		IsNormalDream:      truthy(obj["isNormalDream"]),
		Tone:               tone(obj["tone"]),
		Clarity:            optionalNumber(obj["clarity"]),
		EmotionBefore:      optionalNumber(obj["emotionBefore"]),
		EmotionAfter:       optionalNumber(obj["emotionAfter"]),
		TodayDate:          instant(obj["todayDate"], now),
		Characters:         characters(obj["characters"]),
		Location:           text(obj["location"]),
		PersonalMeaning:    text(obj["personalMeaning"]),
		EmotionalIntensity: numberOr(obj["emotionalIntensity"], 0),
		SleepQuality:       numberOr(obj["sleepQuality"], 0),
		SleepDate:          instant(obj["sleepDate"], now),
	}
	d.Hashtags = hashtags(obj["hashtags"], d.ID)

	return d, true
}

// Records normalizes a decoded JSON value that holds either one record or
// a list of records. Rejected elements are dropped.
func Records(v any) []dreams.Dream {
	switch val := v.(type) {
	case []any:
		out := make([]dreams.Dream, 0, len(val))
		for _, item := range val {
			if d, ok := Normalize(item); ok {
				out = append(out, d)
			}
		}
		return out
	default:
		if d, ok := Normalize(val); ok {
			return []dreams.Dream{d}
		}
		return []dreams.Dream{}
	}
}

// DecodeRecords parses data as JSON and normalizes the records it holds.
// Returns ErrMalformedImport if data is not JSON.
func DecodeRecords(data []byte) ([]dreams.Dream, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedImport, err)
	}
	return Records(v), nil
}

func identifier(v any) string {
	switch val := v.(type) {
	case string:
		if val != "" {
			return val
		}
	case float64:
		if val != 0 && !math.IsNaN(val) {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
	case json.Number:
		if s := val.String(); s != "" && s != "0" {
			return s
		}
	}
	return dreams.NewID()
}

func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	}
	return ""
}

// truthy follows JavaScript truthiness so files written by the mobile app
// decode the same way they were interpreted there.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case string:
		return val != ""
	}
	return true
}

func tone(v any) dreams.Tone {
	s, ok := v.(string)
	if !ok {
		return dreams.ToneAbsent
	}
	t, _ := dreams.ParseTone(s)
	return t
}

func number(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func optionalNumber(v any) *float64 {
	if f, ok := number(v); ok {
		return dreams.Rating(f)
	}
	return nil
}

func numberOr(v any, def float64) float64 {
	if f, ok := number(v); ok {
		return f
	}
	return def
}

var instantLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Epoch milliseconds of 0000-01-01T00:00:00Z and 9999-12-31T23:59:59.999Z,
// the range time.Time can encode as JSON.
const (
	minInstantMillis = -62167219200000
	maxInstantMillis = 253402300799999
)

func instant(v any, def time.Time) time.Time {
	switch val := v.(type) {
	case string:
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				if t = t.UTC(); encodable(t) {
					return t
				}
				return def
			}
		}
	default:
		if ms, ok := number(val); ok && ms >= minInstantMillis && ms <= maxInstantMillis {
			return time.UnixMilli(int64(ms)).UTC()
		}
	}
	return def
}

func encodable(t time.Time) bool {
	return t.Year() >= 0 && t.Year() <= 9999
}

func characters(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, text(item))
		}
		return out
	case []string:
		return append([]string{}, val...)
	}
	return []string{}
}

func hashtags(v any, dreamID string) *dreams.Hashtags {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil
	}

	h := &dreams.Hashtags{}
	for i, slot := range h.Slots() {
		raw, ok := obj[fmt.Sprintf("hashtag%d", i+1)].(map[string]any)
		if !ok {
			continue
		}
		slot.Label = text(raw["label"])
		if id, ok := raw["id"].(string); ok {
			slot.ID = id
		}
	}
	h.EnsureIDs(dreamID)
	return h
}
