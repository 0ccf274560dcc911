package workflows

import (
	"strings"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
)

// SearchQuery holds the search criteria. Empty fields are ignored.
type SearchQuery struct {
	Hashtag   string
	Character string
	Location  string
}

// IsEmpty reports whether no criterion is set.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Hashtag) == "" &&
		strings.TrimSpace(q.Character) == "" &&
		strings.TrimSpace(q.Location) == ""
}

// SearchDreams returns the dreams matching every non-empty criterion.
// Matching is a case-insensitive substring test against any hashtag label,
// any character, or the location. An empty query matches nothing.
func SearchDreams(list []dreams.Dream, q SearchQuery) []dreams.Dream {
	results := []dreams.Dream{}
	if q.IsEmpty() {
		return results
	}

	tag := strings.ToLower(strings.TrimSpace(q.Hashtag))
	person := strings.ToLower(strings.TrimSpace(q.Character))
	place := strings.ToLower(strings.TrimSpace(q.Location))

	for _, d := range list {
		if tag != "" && !anyContains(d.Hashtags.Labels(), tag) {
			continue
		}
		if person != "" && !anyContains(d.Characters, person) {
			continue
		}
		if place != "" && !strings.Contains(strings.ToLower(d.Location), place) {
			continue
		}
		results = append(results, d)
	}

	return results
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
