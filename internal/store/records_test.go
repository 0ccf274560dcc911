package store

import (
	"testing"
	"time"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
)

func dream(id, text string) dreams.Dream {
	return dreams.Dream{ID: id, DreamText: text, Characters: []string{}}
}

func ids(list []dreams.Dream) []string {
	out := make([]string, len(list))
	for i, d := range list {
		out[i] = d.ID
	}
	return out
}

func equalIDs(t *testing.T, got []dreams.Dream, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("Expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("Expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestFind(t *testing.T) {
	list := []dreams.Dream{dream("a", "one"), dream("b", "two")}

	got, i := Find(list, "b")
	if i != 1 || got.DreamText != "two" {
		t.Errorf("Expected b at index 1, got %q at %d", got.ID, i)
	}

	if _, i := Find(list, "missing"); i != -1 {
		t.Errorf("Expected -1 for missing id, got %d", i)
	}
}

func TestUpsert_Appends(t *testing.T) {
	list := []dreams.Dream{dream("a", "one")}

	got := Upsert(list, dream("b", "two"))

	equalIDs(t, got, "a", "b")
	if len(list) != 1 {
		t.Errorf("Upsert modified its input")
	}
}

func TestUpsert_ReplacesInPlace(t *testing.T) {
	list := []dreams.Dream{dream("a", "one"), dream("b", "two"), dream("c", "three")}

	got := Upsert(list, dream("b", "edited"))

	equalIDs(t, got, "a", "b", "c")
	if got[1].DreamText != "edited" {
		t.Errorf("Expected edited text, got %q", got[1].DreamText)
	}
	if list[1].DreamText != "two" {
		t.Errorf("Upsert modified its input")
	}
}

func TestUpsert_KeepsTodayDate(t *testing.T) {
	created := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	existing := dream("a", "one")
	existing.TodayDate = created

	edit := dream("a", "edited")
	edit.TodayDate = created.Add(48 * time.Hour)

	got := Upsert([]dreams.Dream{existing}, edit)

	if !got[0].TodayDate.Equal(created) {
		t.Errorf("Expected todayDate %v to survive edit, got %v", created, got[0].TodayDate)
	}
}

func TestUpsert_KeepsHashtagIDs(t *testing.T) {
	existing := dream("a", "one")
	existing.Hashtags = dreams.NewHashtags("a", "flying", "ocean")
	existing.Hashtags.Hashtag1.ID = "custom-1"

	edit := dream("a", "edited")
	edit.Hashtags = &dreams.Hashtags{
		Hashtag1: dreams.Hashtag{Label: "falling"},
		Hashtag2: dreams.Hashtag{Label: "ocean"},
	}

	got := Upsert([]dreams.Dream{existing}, edit)
	h := got[0].Hashtags

	if h.Hashtag1.ID != "custom-1" || h.Hashtag1.Label != "falling" {
		t.Errorf("Expected slot 1 {custom-1 falling}, got %+v", h.Hashtag1)
	}
	if h.Hashtag3.ID != dreams.HashtagID(3, "a") {
		t.Errorf("Expected slot 3 id %s, got %s", dreams.HashtagID(3, "a"), h.Hashtag3.ID)
	}
}

func TestUpsert_NilHashtagsKeepsExisting(t *testing.T) {
	existing := dream("a", "one")
	existing.Hashtags = dreams.NewHashtags("a", "flying")

	got := Upsert([]dreams.Dream{existing}, dream("a", "edited"))

	if got[0].Hashtags == nil || got[0].Hashtags.Hashtag1.Label != "flying" {
		t.Errorf("Expected existing hashtags to be kept, got %+v", got[0].Hashtags)
	}
}

func TestRemove(t *testing.T) {
	list := []dreams.Dream{dream("a", "one"), dream("b", "two"), dream("c", "three")}

	equalIDs(t, Remove(list, "b"), "a", "c")
	equalIDs(t, Remove(list, "missing"), "a", "b", "c")
	if len(list) != 3 {
		t.Errorf("Remove modified its input")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name         string
		existing     []dreams.Dream
		incoming     []dreams.Dream
		wantIDs      []string
		wantAdded    int
		wantReplaced int
	}{
		{
			name:      "EmptyExisting",
			incoming:  []dreams.Dream{dream("a", "1"), dream("b", "2")},
			wantIDs:   []string{"a", "b"},
			wantAdded: 2,
		},
		{
			name:     "EmptyIncoming",
			existing: []dreams.Dream{dream("a", "1")},
			wantIDs:  []string{"a"},
		},
		{
			name:         "OverlapKeepsPosition",
			existing:     []dreams.Dream{dream("a", "1"), dream("b", "2")},
			incoming:     []dreams.Dream{dream("c", "3"), dream("a", "new")},
			wantIDs:      []string{"a", "b", "c"},
			wantAdded:    1,
			wantReplaced: 1,
		},
		{
			name:      "DuplicateIncomingLastWins",
			incoming:  []dreams.Dream{dream("a", "first"), dream("a", "second")},
			wantIDs:   []string{"a"},
			wantAdded: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, added, replaced := Merge(tt.existing, tt.incoming)
			equalIDs(t, merged, tt.wantIDs...)
			if added != tt.wantAdded {
				t.Errorf("Expected %d added, got %d", tt.wantAdded, added)
			}
			if replaced != tt.wantReplaced {
				t.Errorf("Expected %d replaced, got %d", tt.wantReplaced, replaced)
			}
		})
	}
}

func TestMerge_IncomingWins(t *testing.T) {
	existing := []dreams.Dream{dream("a", "old")}
	incoming := []dreams.Dream{dream("a", "new")}

	merged, _, _ := Merge(existing, incoming)

	if merged[0].DreamText != "new" {
		t.Errorf("Expected incoming record to win, got %q", merged[0].DreamText)
	}
	if existing[0].DreamText != "old" {
		t.Errorf("Merge modified its input")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := []dreams.Dream{dream("a", "1"), dream("b", "2")}
	incoming := []dreams.Dream{dream("b", "new"), dream("c", "3")}

	once, _, _ := Merge(existing, incoming)
	twice, added, replaced := Merge(once, incoming)

	equalIDs(t, twice, ids(once)...)
	if added != 0 || replaced != 2 {
		t.Errorf("Expected 0 added and 2 replaced on re-merge, got %d and %d", added, replaced)
	}
}
