package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Ratings are entered on a 0 to 10 scale.
const (
	minRating = 0
	maxRating = 10
)

// dreamFields holds the flags shared by add and edit.
type dreamFields struct {
	text          string
	dreamType     string
	tone          string
	hashtags      string
	characters    string
	location      string
	meaning       string
	intensity     float64
	sleepQuality  float64
	clarity       float64
	emotionBefore float64
	emotionAfter  float64
	sleepDate     string
}

var fields dreamFields

func bindDreamFields(flags *pflag.FlagSet) {
	flags.StringVarP(&fields.text, "text", "t", "", "the dream itself (use - to read from stdin)")
	flags.StringVar(&fields.dreamType, "type", "", "dream category: lucid, nightmare or normal")
	flags.StringVar(&fields.tone, "tone", "", "overall tone: positive, negative or neutral (empty clears)")
	flags.StringVar(&fields.hashtags, "hashtags", "", "up to three comma-separated hashtags")
	flags.StringVar(&fields.characters, "characters", "", "comma-separated people or creatures in the dream")
	flags.StringVar(&fields.location, "location", "", "where the dream took place")
	flags.StringVar(&fields.meaning, "meaning", "", "what the dream means to you")
	flags.Float64Var(&fields.intensity, "intensity", 0, "emotional intensity (0-10)")
	flags.Float64Var(&fields.sleepQuality, "sleep-quality", 0, "sleep quality (0-10)")
	flags.Float64Var(&fields.clarity, "clarity", 0, "how clearly the dream is remembered (0-10)")
	flags.Float64Var(&fields.emotionBefore, "emotion-before", 0, "mood before sleeping (0-10)")
	flags.Float64Var(&fields.emotionAfter, "emotion-after", 0, "mood after waking (0-10)")
	flags.StringVar(&fields.sleepDate, "sleep-date", "", "night of the dream (YYYY-MM-DD or RFC 3339)")
}

var dreamFieldNames = []string{
	"text", "type", "tone", "hashtags", "characters", "location", "meaning",
	"intensity", "sleep-quality", "clarity", "emotion-before", "emotion-after", "sleep-date",
}

// anyDreamFieldChanged reports whether any field flag was given on cmd.
func anyDreamFieldChanged(cmd *cobra.Command) bool {
	for _, name := range dreamFieldNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resetDreamFieldState resets the add and edit commands' global state for testing.
func resetDreamFieldState() {
	fields = dreamFields{}
}

// applyDreamFields copies the flags that were set on cmd onto d. Flags that
// were not given leave d unchanged.
func applyDreamFields(cmd *cobra.Command, d *dreams.Dream) error {
	changed := cmd.Flags().Changed

	if changed("text") {
		text := fields.text
		if text == "-" {
			data, err := utils.ReadStdin()
			if err != nil {
				return err
			}
			text = strings.TrimRight(string(data), "\r\n")
		}
		d.DreamText = text
	}

	if changed("type") {
		t, err := dreams.ParseDreamType(fields.dreamType)
		if err != nil {
			return err
		}
		d.SelectType(t)
	}

	if changed("tone") {
		if strings.TrimSpace(fields.tone) == "" {
			d.Tone = dreams.ToneAbsent
		} else {
			tone, ok := dreams.ParseTone(fields.tone)
			if !ok {
				return fmt.Errorf("unknown tone %q (expected positive, negative or neutral)", fields.tone)
			}
			d.Tone = tone
		}
	}

	if changed("hashtags") {
		labels := utils.ParseHashtags(fields.hashtags, dreams.HashtagSlots)
		if d.Hashtags == nil {
			d.Hashtags = &dreams.Hashtags{}
		} else {
			h := *d.Hashtags
			d.Hashtags = &h
		}
		d.Hashtags.SetLabels(labels...)
	}

	if changed("characters") {
		d.Characters = utils.ParseList(fields.characters)
	}
	if changed("location") {
		d.Location = strings.TrimSpace(fields.location)
	}
	if changed("meaning") {
		d.PersonalMeaning = fields.meaning
	}

	ratings := []struct {
		name  string
		value float64
		set   func(v float64)
	}{
		{"intensity", fields.intensity, func(v float64) { d.EmotionalIntensity = v }},
		{"sleep-quality", fields.sleepQuality, func(v float64) { d.SleepQuality = v }},
		{"clarity", fields.clarity, func(v float64) { d.Clarity = dreams.Rating(v) }},
		{"emotion-before", fields.emotionBefore, func(v float64) { d.EmotionBefore = dreams.Rating(v) }},
		{"emotion-after", fields.emotionAfter, func(v float64) { d.EmotionAfter = dreams.Rating(v) }},
	}
	for _, r := range ratings {
		if !changed(r.name) {
			continue
		}
		if !(r.value >= minRating && r.value <= maxRating) {
			return fmt.Errorf("--%s must be between %d and %d, got %g", r.name, minRating, maxRating, r.value)
		}
		r.set(r.value)
	}

	if changed("sleep-date") {
		t, err := parseSleepDate(fields.sleepDate)
		if err != nil {
			return err
		}
		d.SleepDate = t
	}

	return nil
}

func parseSleepDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil && t.UTC().Year() >= 0 {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: --sleep-date must be YYYY-MM-DD or RFC 3339, got %q", kerrors.ErrInvalidDateFormat, value)
}
