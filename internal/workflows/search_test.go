package workflows

import (
	"testing"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
)

func searchFixture() []dreams.Dream {
	beach := sampleDream("beach", "")
	beach.Hashtags = dreams.NewHashtags("beach", "Ocean", "sun")
	beach.Characters = []string{"Alice", "Bob"}
	beach.Location = "Beach House"

	city := sampleDream("city", "")
	city.Hashtags = dreams.NewHashtags("city", "night")
	city.Characters = []string{"Carol"}
	city.Location = "Paris"

	forest := sampleDream("forest", "")
	forest.Characters = []string{"alice"}
	forest.Location = "Black Forest"

	return []dreams.Dream{beach, city, forest}
}

func TestSearchDreams(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  []string
	}{
		{"HashtagSubstring", SearchQuery{Hashtag: "oce"}, []string{"beach"}},
		{"HashtagCaseInsensitive", SearchQuery{Hashtag: "NIGHT"}, []string{"city"}},
		{"CharacterMatchesAcrossDreams", SearchQuery{Character: "alice"}, []string{"beach", "forest"}},
		{"LocationTrimmed", SearchQuery{Location: "  forest "}, []string{"forest"}},
		{"CriteriaAreANDed", SearchQuery{Character: "alice", Location: "house"}, []string{"beach"}},
		{"NoMatch", SearchQuery{Hashtag: "ocean", Location: "paris"}, []string{}},
		{"MissingHashtagsNeverMatch", SearchQuery{Hashtag: "n"}, []string{"beach", "city"}},
		{"WhitespaceOnlyIsEmpty", SearchQuery{Hashtag: "   "}, []string{}},
		{"EmptyQuery", SearchQuery{}, []string{}},
	}

	list := searchFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := SearchDreams(list, tt.query)
			if results == nil {
				t.Fatalf("Expected non-nil results")
			}
			if len(results) != len(tt.want) {
				t.Fatalf("Got %d results, want %d", len(results), len(tt.want))
			}
			for i, d := range results {
				if d.ID != tt.want[i] {
					t.Errorf("Result %d: got %s, want %s", i, d.ID, tt.want[i])
				}
			}
		})
	}
}

func TestSearchQuery_IsEmpty(t *testing.T) {
	if !(SearchQuery{Location: " "}).IsEmpty() {
		t.Errorf("Expected whitespace query to be empty")
	}
	if (SearchQuery{Character: "x"}).IsEmpty() {
		t.Errorf("Expected query with a character to be non-empty")
	}
}
