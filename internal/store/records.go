package store

import "github.com/PolarWolf314/dreamlog/internal/dreams"

// Find returns the dream with id and its index, or -1 if absent.
func Find(list []dreams.Dream, id string) (dreams.Dream, int) {
	for i, d := range list {
		if d.ID == id {
			return d, i
		}
	}
	return dreams.Dream{}, -1
}

// Upsert replaces the dream with d.ID in place, or appends d.
//
// A replacement keeps the existing todayDate and hashtag identifiers, so an
// edit never moves the creation date or renames tag slots.
func Upsert(list []dreams.Dream, d dreams.Dream) []dreams.Dream {
	out := make([]dreams.Dream, len(list), len(list)+1)
	copy(out, list)

	if _, i := Find(out, d.ID); i >= 0 {
		out[i] = mergeEdit(out[i], d)
		return out
	}
	return append(out, d)
}

func mergeEdit(existing, incoming dreams.Dream) dreams.Dream {
	merged := incoming
	if !existing.TodayDate.IsZero() {
		merged.TodayDate = existing.TodayDate
	}

	switch {
	case incoming.Hashtags == nil:
		merged.Hashtags = existing.Hashtags
	case existing.Hashtags != nil:
		h := *incoming.Hashtags
		old := existing.Hashtags.Slots()
		for i, slot := range h.Slots() {
			if old[i].ID != "" {
				slot.ID = old[i].ID
			}
		}
		h.EnsureIDs(merged.ID)
		merged.Hashtags = &h
	}

	return merged
}

// Remove returns list without the dream whose id matches.
func Remove(list []dreams.Dream, id string) []dreams.Dream {
	out := make([]dreams.Dream, 0, len(list))
	for _, d := range list {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// Merge combines two collections by id. Incoming records overwrite existing
// records with the same id; novel ids are appended in arrival order.
// There is no conflict detection.
func Merge(existing, incoming []dreams.Dream) (merged []dreams.Dream, added, replaced int) {
	merged = make([]dreams.Dream, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))
	fromExisting := make(map[string]bool, len(existing))

	for _, d := range existing {
		if i, ok := index[d.ID]; ok {
			merged[i] = d
			continue
		}
		index[d.ID] = len(merged)
		fromExisting[d.ID] = true
		merged = append(merged, d)
	}

	counted := make(map[string]bool, len(incoming))
	for _, d := range incoming {
		if i, ok := index[d.ID]; ok {
			merged[i] = d
		} else {
			index[d.ID] = len(merged)
			merged = append(merged, d)
		}

		if counted[d.ID] {
			continue
		}
		counted[d.ID] = true
		if fromExisting[d.ID] {
			replaced++
		} else {
			added++
		}
	}

	return merged, added, replaced
}
