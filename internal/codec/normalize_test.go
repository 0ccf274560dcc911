package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

func TestNormalize_RejectsNonObjects(t *testing.T) {
	inputs := []struct {
		name string
		raw  any
	}{
		{"Nil", nil},
		{"String", "dream"},
		{"Number", 42.0},
		{"Bool", true},
		{"List", []any{map[string]any{}}},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Normalize(tt.raw); ok {
				t.Errorf("Expected %v to be rejected", tt.raw)
			}
		})
	}
}

func TestNormalize_EmptyObjectGetsDefaults(t *testing.T) {
	before := time.Now().Add(-time.Second)

	d, ok := Normalize(map[string]any{})
	if !ok {
		t.Fatalf("Expected empty object to normalize")
	}

	if d.ID == "" {
		t.Errorf("Expected a synthesized id")
	}
	if d.DreamText != "" || d.Location != "" || d.PersonalMeaning != "" {
		t.Errorf("Expected empty text fields, got %+v", d)
	}
	if d.IsLucidDream || d.IsNightmare || d.IsNormalDream {
		t.Errorf("Expected no category flags")
	}
	if d.Tone != dreams.ToneAbsent {
		t.Errorf("Expected absent tone, got %q", d.Tone)
	}
	if d.Clarity != nil || d.EmotionBefore != nil || d.EmotionAfter != nil {
		t.Errorf("Expected optional ratings to be unset")
	}
	if d.EmotionalIntensity != 0 || d.SleepQuality != 0 {
		t.Errorf("Expected zero intensity and sleep quality")
	}
	if d.Characters == nil || len(d.Characters) != 0 {
		t.Errorf("Expected an empty characters list, got %v", d.Characters)
	}
	if d.Hashtags != nil {
		t.Errorf("Expected hashtags to stay absent")
	}
	if d.SleepDate.Before(before) || d.TodayDate.Before(before) {
		t.Errorf("Expected dates to default to now, got sleep=%s today=%s", d.SleepDate, d.TodayDate)
	}
}

func TestNormalize_SynthesizedIDsDiffer(t *testing.T) {
	a, _ := Normalize(map[string]any{})
	b, _ := Normalize(map[string]any{"id": ""})

	if a.ID == b.ID {
		t.Errorf("Expected distinct synthesized ids, both were %s", a.ID)
	}
}

func TestNormalize_KeepsValidFields(t *testing.T) {
	raw := map[string]any{
		"id":                 "dream_1",
		"dreamText":          "Flying over the sea",
		"isLucidDream":       true,
		"tone":               "positive",
		"clarity":            7.0,
		"emotionBefore":      3.0,
		"emotionAfter":       8.0,
		"characters":         []any{"Alice", "Bob", "Alice"},
		"location":           "Beach",
		"personalMeaning":    "Freedom",
		"emotionalIntensity": 9.0,
		"sleepQuality":       6.0,
		"sleepDate":          "2024-03-01T23:15:00.000Z",
		"todayDate":          "2024-03-02T07:00:00.000Z",
		"hashtags": map[string]any{
			"hashtag1": map[string]any{"id": "h1-old", "label": "sea"},
			"hashtag2": map[string]any{"label": "sky"},
		},
	}

	d, ok := Normalize(raw)
	if !ok {
		t.Fatalf("Expected record to normalize")
	}

	if d.ID != "dream_1" {
		t.Errorf("Expected id dream_1, got %s", d.ID)
	}
	if !d.IsLucidDream || d.Type() != dreams.TypeLucid {
		t.Errorf("Expected lucid dream")
	}
	if d.Tone != dreams.TonePositive {
		t.Errorf("Expected positive tone, got %q", d.Tone)
	}
	if d.Clarity == nil || *d.Clarity != 7 {
		t.Errorf("Expected clarity 7, got %v", d.Clarity)
	}
	if strings.Join(d.Characters, ",") != "Alice,Bob,Alice" {
		t.Errorf("Expected characters in entry order with duplicates, got %v", d.Characters)
	}
	wantSleep := time.Date(2024, 3, 1, 23, 15, 0, 0, time.UTC)
	if !d.SleepDate.Equal(wantSleep) {
		t.Errorf("Expected sleep date %s, got %s", wantSleep, d.SleepDate)
	}
	if d.Hashtags == nil {
		t.Fatalf("Expected hashtags")
	}
	if d.Hashtags.Hashtag1.ID != "h1-old" {
		t.Errorf("Expected existing hashtag id kept, got %s", d.Hashtags.Hashtag1.ID)
	}
	if d.Hashtags.Hashtag2.ID != "h2-dream_1" || d.Hashtags.Hashtag2.Label != "sky" {
		t.Errorf("Expected derived hashtag2, got %+v", d.Hashtags.Hashtag2)
	}
	if d.Hashtags.Hashtag3.ID != "h3-dream_1" {
		t.Errorf("Expected derived hashtag3 id, got %s", d.Hashtags.Hashtag3.ID)
	}
}

func TestNormalize_CoercesInvalidFields(t *testing.T) {
	raw := map[string]any{
		"id":                 123.0,
		"dreamText":          12.5,
		"isNightmare":        "yes",
		"tone":               "furious",
		"clarity":            "7",
		"emotionalIntensity": "high",
		"sleepQuality":       nil,
		"characters":         "Alice",
		"location":           nil,
		"sleepDate":          "last night",
		"todayDate":          1709337600000.0,
		"hashtags":           "sea",
	}

	d, ok := Normalize(raw)
	if !ok {
		t.Fatalf("Expected record to normalize")
	}

	if d.ID != "123" {
		t.Errorf("Expected numeric id to be stringified, got %s", d.ID)
	}
	if d.DreamText != "12.5" {
		t.Errorf("Expected dreamText 12.5, got %q", d.DreamText)
	}
	if !d.IsNightmare {
		t.Errorf("Expected non-empty string to be truthy")
	}
	if d.Tone != dreams.ToneAbsent {
		t.Errorf("Expected unknown tone to be absent")
	}
	if d.Clarity != nil {
		t.Errorf("Expected string clarity to be unset")
	}
	if d.EmotionalIntensity != 0 || d.SleepQuality != 0 {
		t.Errorf("Expected defaults for invalid numbers")
	}
	if len(d.Characters) != 0 {
		t.Errorf("Expected non-list characters to become empty, got %v", d.Characters)
	}
	if d.Location != "" {
		t.Errorf("Expected empty location, got %q", d.Location)
	}
	if d.SleepDate.IsZero() {
		t.Errorf("Expected unparseable sleep date to default to now")
	}
	if !d.TodayDate.Equal(time.UnixMilli(1709337600000)) {
		t.Errorf("Expected epoch millis to parse, got %s", d.TodayDate)
	}
	if d.Hashtags != nil {
		t.Errorf("Expected non-object hashtags to be absent")
	}
}

func TestNormalize_OutOfRangeDatesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"HugeSleepDate", "sleepDate", 1e17},
		{"NegativeTodayDate", "todayDate", -1e15},
		{"BeyondInt64", "sleepDate", 1e300},
		{"OffsetBeforeYearZero", "sleepDate", "0000-01-01T00:00:00+01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Normalize(map[string]any{"id": "x", tt.field: tt.value})
			if !ok {
				t.Fatalf("Expected record to normalize")
			}
			for _, ts := range []time.Time{d.SleepDate, d.TodayDate} {
				if ts.Year() < 0 || ts.Year() > 9999 {
					t.Errorf("Expected a date within year 0-9999, got %s", ts)
				}
			}
			if _, err := json.Marshal(d); err != nil {
				t.Errorf("Failed to encode normalized dream: %v", err)
			}
		})
	}
}

func TestDecodeRecords(t *testing.T) {
	t.Run("SingleObject", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`{"id":"a","dreamText":"one"}`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		if len(records) != 1 || records[0].ID != "a" {
			t.Errorf("Expected one record with id a, got %+v", records)
		}
	})

	t.Run("ListDropsRejected", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[{"id":"a"}, 5, "x", null, {"id":"b"}]`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].ID != "a" || records[1].ID != "b" {
			t.Errorf("Expected ids a,b in order, got %s,%s", records[0].ID, records[1].ID)
		}
	})

	t.Run("ScalarYieldsNothing", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`"hello"`))
		if err != nil {
			t.Fatalf("DecodeRecords failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Expected no records, got %d", len(records))
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := DecodeRecords([]byte(`{not json`))
		if !errors.Is(err, kerrors.ErrMalformedImport) {
			t.Errorf("Expected ErrMalformedImport, got %v", err)
		}
	})
}
