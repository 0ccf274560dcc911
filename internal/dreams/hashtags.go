package dreams

import "fmt"

// HashtagSlots is the fixed number of tag slots on a dream.
const HashtagSlots = 3

// Hashtag is one labeled tag slot.
type Hashtag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Hashtags holds exactly three tag slots.
type Hashtags struct {
	Hashtag1 Hashtag `json:"hashtag1"`
	Hashtag2 Hashtag `json:"hashtag2"`
	Hashtag3 Hashtag `json:"hashtag3"`
}

// HashtagID derives the identifier of a slot (1-based) from its dream's id.
func HashtagID(slot int, dreamID string) string {
	return fmt.Sprintf("h%d-%s", slot, dreamID)
}

// NewHashtags builds the three slots for dreamID. Missing labels are empty.
func NewHashtags(dreamID string, labels ...string) *Hashtags {
	h := &Hashtags{}
	for i, slot := range h.Slots() {
		if i < len(labels) {
			slot.Label = labels[i]
		}
	}
	h.EnsureIDs(dreamID)
	return h
}

// Slots returns the three slots in order.
func (h *Hashtags) Slots() [HashtagSlots]*Hashtag {
	return [HashtagSlots]*Hashtag{&h.Hashtag1, &h.Hashtag2, &h.Hashtag3}
}

// EnsureIDs derives identifiers only for slots that have none.
func (h *Hashtags) EnsureIDs(dreamID string) {
	for i, slot := range h.Slots() {
		if slot.ID == "" {
			slot.ID = HashtagID(i+1, dreamID)
		}
	}
}

// SetLabels replaces the slot labels, keeping the slot identifiers.
func (h *Hashtags) SetLabels(labels ...string) {
	for i, slot := range h.Slots() {
		slot.Label = ""
		if i < len(labels) {
			slot.Label = labels[i]
		}
	}
}

// Labels returns the non-empty labels in slot order.
func (h *Hashtags) Labels() []string {
	if h == nil {
		return nil
	}
	var labels []string
	for _, slot := range h.Slots() {
		if slot.Label != "" {
			labels = append(labels, slot.Label)
		}
	}
	return labels
}
