package menu

// Snapshot is the frozen copy of a confirmed menu version that an order embeds at
// creation. It is never refreshed from later menu edits.
type Snapshot struct {
	Version string `json:"version"`
	Items   []Item `json:"items"`
}

// NewSnapshot deep-copies items so later mutation of the source cannot leak in.
func NewSnapshot(version string, items []Item) Snapshot {
	return Snapshot{
		Version: version,
		Items:   cloneItems(items),
	}
}

func (s Snapshot) FindItem(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
