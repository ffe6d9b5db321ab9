package bandit

import "mapsearch/trace"

// Table maps choice-site identifiers to the bandit observed there.
type Table struct {
	bandits map[trace.SiteID]*Bandit
}

// NewTable returns an empty bandit table.
func NewTable() *Table {
	return &Table{bandits: make(map[trace.SiteID]*Bandit)}
}

// Get returns the bandit at id, if one has been created yet.
func (t *Table) Get(id trace.SiteID) (*Bandit, bool) {
	b, ok := t.bandits[id]
	return b, ok
}

// GetOrCreate returns the bandit at id, creating an empty one if absent.
func (t *Table) GetOrCreate(id trace.SiteID) *Bandit {
	b, ok := t.bandits[id]
	if !ok {
		b = New()
		t.bandits[id] = b
	}
	return b
}

// Len returns the number of distinct sites with a bandit in this table.
func (t *Table) Len() int {
	return len(t.bandits)
}
