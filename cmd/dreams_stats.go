package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/ui"
	"github.com/PolarWolf314/dreamlog/internal/workflows"
	"github.com/spf13/cobra"
)

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

// resetStatsCommandState resets the stats command's global state for testing.
func resetStatsCommandState() {
	statsJSON = false
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting stats command")

		j, err := openJournal()
		if err != nil {
			return printError(err)
		}
		defer j.Close()

		list, err := workflows.ListDreams(context.Background(), j.store, workflows.ListOptions{})
		if err != nil {
			return printError(err)
		}

		st := workflows.ComputeStats(list)
		if statsJSON {
			return outputJSON(st)
		}

		fmt.Print(formatStats(st))
		return nil
	},
}

func formatStats(st workflows.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d dreams\n\n", ui.Info.Sprint("Total:"), st.Total)
	if st.Total == 0 {
		return b.String()
	}

	for _, c := range []struct {
		name  string
		count workflows.TypeCount
	}{
		{"lucid", st.Lucid},
		{"nightmare", st.Nightmare},
		{"normal", st.Normal},
		{"unset", st.Unset},
	} {
		fmt.Fprintf(&b, "  %-20s %4d  %3d%%\n", ui.Category(c.name).Sprint(c.name), c.count.Count, c.count.Percent)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-20s %6s %6s %6s %6s\n", "", "count", "avg", "min", "max")
	for _, n := range []struct {
		name string
		agg  workflows.NumAgg
	}{
		{"Emotional intensity", st.EmotionalIntensity},
		{"Sleep quality", st.SleepQuality},
		{"Clarity", st.Clarity},
		{"Emotion before", st.EmotionBefore},
		{"Emotion after", st.EmotionAfter},
	} {
		if n.agg.Count == 0 {
			fmt.Fprintf(&b, "  %-20s %6d %6s %6s %6s\n", n.name, 0, "-", "-", "-")
			continue
		}
		fmt.Fprintf(&b, "  %-20s %6d %6.2f %6g %6g\n", n.name, n.agg.Count, n.agg.Avg, n.agg.Min, n.agg.Max)
	}

	writeDistribution(&b, "Tones", st.Tones)
	writeDistribution(&b, "Hashtags", st.Hashtags)
	writeDistribution(&b, "Characters", st.Characters)
	writeDistribution(&b, "Locations", st.Locations)

	return b.String()
}

func writeDistribution(b *strings.Builder, title string, counts []workflows.LabelCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", ui.Info.Sprint(title+":"))
	for _, c := range counts {
		fmt.Fprintf(b, "  %-24s %4d\n", c.Label, c.Count)
	}
}
