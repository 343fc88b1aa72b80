package posimport

import (
	"sort"

	"github.com/THuebbe/pantrypro/internal/menu"
	"github.com/THuebbe/pantrypro/internal/pos"
)

// Options controls how an import treats items that already exist locally
// and local items the POS feed no longer carries.
type Options struct {
	UpdateExisting    bool
	DeactivateMissing bool
}

// Action classifies what the import did (or would do) with one item.
type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionSkipped     Action = "skipped"
	ActionNoChange    Action = "no-change"
	ActionDeactivated Action = "deactivated"
	ActionError       Action = "error"
)

// MatchedPair joins a local menu item to the POS item sharing its
// external id.
type MatchedPair struct {
	Local    menu.Item
	Incoming pos.MenuItem
}

// Plan is the pure classification of a POS feed against local state.
// Missing holds local items that carry a POS id absent from the feed;
// whether they get deactivated is an apply-time decision.
type Plan struct {
	Creates []pos.MenuItem
	Updates []MatchedPair
	Skips   []pos.MenuItem
	Missing []menu.Item
}

// BuildPlan matches POS items to local items by external id. Each local
// item is consumed at most once; locals without a POS id never match and
// are never reported missing. Feed order is preserved within each bucket.
func BuildPlan(posItems []pos.MenuItem, existing []menu.Item, updateExisting bool) Plan {
	byPOSID := make(map[string]menu.Item, len(existing))
	for _, item := range existing {
		if item.POSMenuItemID != nil && *item.POSMenuItemID != "" {
			byPOSID[*item.POSMenuItemID] = item
		}
	}

	var plan Plan
	for _, posItem := range posItems {
		local, ok := byPOSID[posItem.POSMenuItemID]
		if !ok {
			plan.Creates = append(plan.Creates, posItem)
			continue
		}

		if updateExisting {
			plan.Updates = append(plan.Updates, MatchedPair{Local: local, Incoming: posItem})
		} else {
			plan.Skips = append(plan.Skips, posItem)
		}

		delete(byPOSID, posItem.POSMenuItemID)
	}

	for _, item := range byPOSID {
		plan.Missing = append(plan.Missing, item)
	}
	sort.Slice(plan.Missing, func(i, j int) bool {
		return plan.Missing[i].Name < plan.Missing[j].Name
	})

	return plan
}

// FieldChange records one before/after diff for a preview.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Changes is the per-field diff of a matched pair. A nil field means no
// change. Activation flips make a pair count as changed but are not
// broken out here, matching what the dashboard renders.
type Changes struct {
	Name     *FieldChange `json:"name"`
	Category *FieldChange `json:"category"`
	Price    *FieldChange `json:"price"`
}

// Diff compares a matched pair field by field. The second return reports
// whether anything differs at all, including the active flag.
func Diff(pair MatchedPair) (Changes, bool) {
	var changes Changes

	if pair.Local.Name != pair.Incoming.Name {
		changes.Name = &FieldChange{Old: pair.Local.Name, New: pair.Incoming.Name}
	}
	if pair.Local.Category != pair.Incoming.Category {
		changes.Category = &FieldChange{Old: pair.Local.Category, New: pair.Incoming.Category}
	}
	if !pair.Local.Price.Equal(pair.Incoming.Price) {
		changes.Price = &FieldChange{
			Old: pair.Local.Price.InexactFloat64(),
			New: pair.Incoming.Price.InexactFloat64(),
		}
	}

	changed := changes.Name != nil ||
		changes.Category != nil ||
		changes.Price != nil ||
		pair.Local.IsActive != pair.Incoming.IsActive

	return changes, changed
}
