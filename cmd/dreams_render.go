package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/utils"
)

const summaryWidth = 60

// outputJSON prints v as indented JSON.
func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatDreamLine renders d on one line for lists and search results.
func formatDreamLine(d dreams.Dream) string {
	category := d.Type().String()
	line := fmt.Sprintf("%s  %s  %-11s %s",
		d.SleepDate.Format("2006-01-02"),
		ui.Highlight.Sprint(d.ID),
		ui.Category(category).Sprint(category),
		utils.Truncate(d.DreamText, summaryWidth),
	)
	if labels := d.Hashtags.Labels(); len(labels) > 0 {
		line += "  " + ui.Muted.Sprint("#"+strings.Join(labels, " #"))
	}
	return line
}

// formatDream renders every field of d.
func formatDream(d dreams.Dream) string {
	var b strings.Builder
	category := d.Type().String()

	fmt.Fprintf(&b, "%s %s\n", ui.Highlight.Sprint(d.ID), ui.Category(category).Sprint(category))
	fmt.Fprintf(&b, "  %-16s %s\n", "Slept:", d.SleepDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  %-16s %s\n", "Recorded:", d.TodayDate.Format("2006-01-02 15:04"))
	if d.Tone != dreams.ToneAbsent {
		fmt.Fprintf(&b, "  %-16s %s\n", "Tone:", string(d.Tone))
	}
	if labels := d.Hashtags.Labels(); len(labels) > 0 {
		fmt.Fprintf(&b, "  %-16s %s\n", "Hashtags:", "#"+strings.Join(labels, " #"))
	}
	if len(d.Characters) > 0 {
		fmt.Fprintf(&b, "  %-16s %s\n", "Characters:", strings.Join(d.Characters, ", "))
	}
	if d.Location != "" {
		fmt.Fprintf(&b, "  %-16s %s\n", "Location:", d.Location)
	}
	fmt.Fprintf(&b, "  %-16s %g\n", "Intensity:", d.EmotionalIntensity)
	fmt.Fprintf(&b, "  %-16s %g\n", "Sleep quality:", d.SleepQuality)
	for _, r := range []struct {
		label string
		value *float64
	}{
		{"Clarity:", d.Clarity},
		{"Emotion before:", d.EmotionBefore},
		{"Emotion after:", d.EmotionAfter},
	} {
		if r.value != nil {
			fmt.Fprintf(&b, "  %-16s %g\n", r.label, *r.value)
		}
	}

	if d.DreamText != "" {
		fmt.Fprintf(&b, "\n%s\n", d.DreamText)
	}
	if d.PersonalMeaning != "" {
		fmt.Fprintf(&b, "\n%s %s\n", ui.Info.Sprint("Meaning:"), d.PersonalMeaning)
	}

	return b.String()
}
