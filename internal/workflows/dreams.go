package workflows

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/PolarWolf314/dreamlog/internal/audit"
	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/PolarWolf314/dreamlog/internal/store"
)

// CreateDream stores draft as a new dream and returns it.
//
// The dream gets a fresh id, todayDate is set to now, and hashtag ids are
// derived from the new id. A zero sleepDate defaults to now.
//
// Returns ErrStorageRead, ErrStoreUnreadable or ErrStorageWrite on storage failures.
func CreateDream(ctx context.Context, s *store.Store, draft dreams.Dream) (*dreams.Dream, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	d := draft
	d.ID = dreams.NewID()
	d.TodayDate = dreams.Now()
	if d.SleepDate.IsZero() {
		d.SleepDate = d.TodayDate
	}
	if d.Characters == nil {
		d.Characters = []string{}
	}
	if d.Hashtags != nil {
		h := *d.Hashtags
		for _, slot := range h.Slots() {
			slot.ID = ""
		}
		h.EnsureIDs(d.ID)
		d.Hashtags = &h
	}

	if err := s.Save(ctx, append(list, d)); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithInstall("create")
	auditEntry.DreamID = d.ID
	audit.Log(auditEntry)

	return &d, nil
}

// EditDream applies fn to the stored dream with id and saves the result.
// The id, todayDate and existing hashtag ids survive whatever fn does.
//
// Returns ErrDreamNotFound if no dream has id.
// Returns any error fn returns, without saving.
func EditDream(ctx context.Context, s *store.Store, id string, fn func(d *dreams.Dream) error) (*dreams.Dream, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	d, i := store.Find(list, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrDreamNotFound, id)
	}

	if err := fn(&d); err != nil {
		return nil, err
	}
	d.ID = id
	if d.Characters == nil {
		d.Characters = []string{}
	}

	list = store.Upsert(list, d)
	if err := s.Save(ctx, list); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithInstall("edit")
	auditEntry.DreamID = id
	audit.Log(auditEntry)

	updated := list[i]
	return &updated, nil
}

// DeleteDream removes the dream with id.
//
// Returns ErrDreamNotFound if no dream has id.
func DeleteDream(ctx context.Context, s *store.Store, id string) error {
	list, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if _, i := store.Find(list, id); i < 0 {
		return fmt.Errorf("%w: %s", kerrors.ErrDreamNotFound, id)
	}

	if err := s.Save(ctx, store.Remove(list, id)); err != nil {
		return err
	}

	auditEntry := audit.LogWithInstall("remove")
	auditEntry.DreamID = id
	audit.Log(auditEntry)

	return nil
}

// ResetDreams clears the whole journal and returns how many dreams were
// removed. An unreadable collection is cleared too.
func ResetDreams(ctx context.Context, s *store.Store) (int, error) {
	list, err := s.Load(ctx)
	if err != nil && !errors.Is(err, kerrors.ErrStoreUnreadable) {
		return 0, err
	}

	if err := s.Save(ctx, nil); err != nil {
		return 0, err
	}

	auditEntry := audit.LogWithInstall("reset")
	auditEntry.RecordsCount = len(list)
	audit.Log(auditEntry)

	return len(list), nil
}

// GetDream returns the dream with id.
//
// Returns ErrDreamNotFound if no dream has id.
func GetDream(ctx context.Context, s *store.Store, id string) (*dreams.Dream, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	d, i := store.Find(list, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrDreamNotFound, id)
	}
	return &d, nil
}

// ListOptions configures ListDreams.
type ListOptions struct {
	// Types keeps only dreams of these categories. Empty keeps all.
	Types []dreams.DreamType

	// Newest orders by sleep date, most recent first. Otherwise stored order.
	Newest bool

	// Limit caps the number of dreams returned. 0 means no limit.
	Limit int
}

// ListDreams returns the stored dreams filtered and ordered per opts.
//
// An unreadable collection yields an empty list together with
// ErrStoreUnreadable, so callers can still render an empty view.
func ListDreams(ctx context.Context, s *store.Store, opts ListOptions) ([]dreams.Dream, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return list, err
	}

	if len(opts.Types) > 0 {
		keep := make(map[dreams.DreamType]bool, len(opts.Types))
		for _, t := range opts.Types {
			keep[t] = true
		}
		filtered := make([]dreams.Dream, 0, len(list))
		for _, d := range list {
			if keep[d.Type()] {
				filtered = append(filtered, d)
			}
		}
		list = filtered
	}

	if opts.Newest {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SleepDate.After(list[j].SleepDate)
		})
	}

	if opts.Limit > 0 && len(list) > opts.Limit {
		list = list[:opts.Limit]
	}

	return list, nil
}
