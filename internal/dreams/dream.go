package dreams

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tone is the overall feeling of a dream. ToneAbsent encodes as JSON null.
type Tone string

const (
	ToneAbsent   Tone = ""
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// ParseTone returns the tone named by s. Unknown names report false.
func ParseTone(s string) (Tone, bool) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case TonePositive:
		return TonePositive, true
	case ToneNegative:
		return ToneNegative, true
	case ToneNeutral:
		return ToneNeutral, true
	}
	return ToneAbsent, false
}

func (t Tone) MarshalJSON() ([]byte, error) {
	if t == ToneAbsent {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

func (t *Tone) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ToneAbsent
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t, _ = ParseTone(s)
	return nil
}

// DreamType is the category a dream belongs to.
type DreamType int

const (
	TypeUnset DreamType = iota
	TypeLucid
	TypeNightmare
	TypeNormal
)

func (t DreamType) String() string {
	switch t {
	case TypeLucid:
		return "lucid"
	case TypeNightmare:
		return "nightmare"
	case TypeNormal:
		return "normal"
	}
	return "unset"
}

// ParseDreamType accepts lucid, nightmare or normal.
func ParseDreamType(s string) (DreamType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lucid":
		return TypeLucid, nil
	case "nightmare":
		return TypeNightmare, nil
	case "normal":
		return TypeNormal, nil
	}
	return TypeUnset, fmt.Errorf("unknown dream type %q (expected lucid, nightmare or normal)", s)
}

// Dream is one journaled dream. JSON keys match the interchange files.
type Dream struct {
	ID            string `json:"id"`
	DreamText     string `json:"dreamText"`
	IsLucidDream  bool   `json:"isLucidDream"`
	IsNightmare   bool   `json:"isNightmare"`
	IsNormalDream bool   `json:"isNormalDream"`
	Tone          Tone   `json:"tone"`

	Clarity       *float64 `json:"clarity,omitempty"`
	EmotionBefore *float64 `json:"emotionBefore,omitempty"`
	EmotionAfter  *float64 `json:"emotionAfter,omitempty"`

	Hashtags *Hashtags `json:"hashtags,omitempty"`

	// TodayDate is set when the dream is first saved and never changes.
	TodayDate time.Time `json:"todayDate"`

	Characters         []string  `json:"characters"`
	Location           string    `json:"location"`
	PersonalMeaning    string    `json:"personalMeaning"`
	EmotionalIntensity float64   `json:"emotionalIntensity"`
	SleepQuality       float64   `json:"sleepQuality"`
	SleepDate          time.Time `json:"sleepDate"`
}

// SelectType makes t the only category flag set on d.
func (d *Dream) SelectType(t DreamType) {
	d.IsLucidDream = t == TypeLucid
	d.IsNightmare = t == TypeNightmare
	d.IsNormalDream = t == TypeNormal
}

// Type reports the dream's category. Flags are checked in lucid,
// nightmare, normal order so imported records with several flags set
// still classify deterministically.
func (d Dream) Type() DreamType {
	switch {
	case d.IsLucidDream:
		return TypeLucid
	case d.IsNightmare:
		return TypeNightmare
	case d.IsNormalDream:
		return TypeNormal
	}
	return TypeUnset
}

// Rating returns a pointer to v for the optional rating fields.
func Rating(v float64) *float64 {
	return &v
}

// Now is the timestamp used for new records: UTC, millisecond precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
