package workflows

import (
	"math"
	"sort"
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
)

// TopN is how many entries the label distributions keep.
const TopN = 10

// UndefinedTone labels dreams without a tone in the tone distribution.
const UndefinedTone = "undefined"

// TypeCount is a category count and its share of all dreams.
type TypeCount struct {
	Count   int
	Percent int
}

// NumAgg summarizes one numeric field over the dreams that have it.
// All fields are zero when Count is zero.
type NumAgg struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// LabelCount is one bar of a distribution.
type LabelCount struct {
	Label string
	Count int
}

// Stats summarizes a journal.
type Stats struct {
	Total     int
	Lucid     TypeCount
	Nightmare TypeCount
	Normal    TypeCount
	Unset     TypeCount

	EmotionalIntensity NumAgg
	SleepQuality       NumAgg
	Clarity            NumAgg
	EmotionBefore      NumAgg
	EmotionAfter       NumAgg

	Tones      []LabelCount
	Hashtags   []LabelCount
	Characters []LabelCount
	Locations  []LabelCount
}

// ComputeStats summarizes list.
//
// Categories are counted by Dream.Type, so a record with several flags
// counts once. Percentages are rounded to whole numbers and averages to two
// decimals. Distributions are ordered by count, then label, and the hashtag,
// character and location ones keep the top TopN.
func ComputeStats(list []dreams.Dream) Stats {
	st := Stats{Total: len(list)}

	var intensity, sleep, clarity, before, after numAcc
	tones := newCounter()
	hashtags := newCounter()
	characters := newCounter()
	locations := newCounter()

	for _, d := range list {
		switch d.Type() {
		case dreams.TypeLucid:
			st.Lucid.Count++
		case dreams.TypeNightmare:
			st.Nightmare.Count++
		case dreams.TypeNormal:
			st.Normal.Count++
		default:
			st.Unset.Count++
		}

		intensity.add(&d.EmotionalIntensity)
		sleep.add(&d.SleepQuality)
		clarity.add(d.Clarity)
		before.add(d.EmotionBefore)
		after.add(d.EmotionAfter)

		tone := string(d.Tone)
		if tone == "" {
			tone = UndefinedTone
		}
		tones.add(tone)

		for _, label := range d.Hashtags.Labels() {
			hashtags.add(label)
		}
		for _, c := range d.Characters {
			characters.add(strings.TrimSpace(c))
		}
		locations.add(strings.TrimSpace(d.Location))
	}

	for _, tc := range []*TypeCount{&st.Lucid, &st.Nightmare, &st.Normal, &st.Unset} {
		tc.Percent = percent(tc.Count, st.Total)
	}

	st.EmotionalIntensity = intensity.result()
	st.SleepQuality = sleep.result()
	st.Clarity = clarity.result()
	st.EmotionBefore = before.result()
	st.EmotionAfter = after.result()

	st.Tones = tones.sorted(0)
	st.Hashtags = hashtags.sorted(TopN)
	st.Characters = characters.sorted(TopN)
	st.Locations = locations.sorted(TopN)

	return st
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

type numAcc struct {
	count    int
	sum      float64
	min, max float64
}

func (a *numAcc) add(v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	if a.count == 0 || *v < a.min {
		a.min = *v
	}
	if a.count == 0 || *v > a.max {
		a.max = *v
	}
	a.sum += *v
	a.count++
}

func (a numAcc) result() NumAgg {
	if a.count == 0 {
		return NumAgg{}
	}
	avg := math.Round(a.sum/float64(a.count)*100) / 100
	return NumAgg{Count: a.count, Avg: avg, Min: a.min, Max: a.max}
}

type counter struct {
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if label == "" {
		return
	}
	c.counts[label]++
}

func (c *counter) sorted(limit int) []LabelCount {
	out := make([]LabelCount, 0, len(c.counts))
	for label, count := range c.counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
