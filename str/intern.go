package str

import (
	"sync"

	"github.com/arloliu/ustring/internal/collision"
	"github.com/arloliu/ustring/internal/hash"
)

// internTable deduplicates constant strings by content. Entries live for
// the life of the process.
type internTable struct {
	mu      sync.RWMutex
	keys    []string
	entries []*String
	index   *collision.Tracker
}

var (
	internOnce sync.Once
	interned   *internTable
)

func internTableInstance() *internTable {
	internOnce.Do(func() {
		interned = &internTable{index: collision.NewTracker()}
	})

	return interned
}

func (t *internTable) find(id uint64, key string) (*String, bool) {
	idx, ok := t.index.Find(id, func(i int) bool { return t.keys[i] == key })
	if !ok {
		return nil, false
	}

	return t.entries[idx], true
}

// Intern returns the process-wide constant String for s, creating it on
// first use. Retain and Release on the result are no-ops.
func Intern(s string) *String {
	table := internTableInstance()
	id := hash.ID(s)

	table.mu.RLock()
	cs, ok := table.find(id, s)
	table.mu.RUnlock()
	if ok {
		return cs
	}

	table.mu.Lock()
	defer table.mu.Unlock()
	if cs, ok := table.find(id, s); ok {
		return cs
	}

	cs = FromGoString(s)
	cs.flags |= flagConstant
	table.keys = append(table.keys, s)
	table.entries = append(table.entries, cs)
	table.index.Track(id, len(table.entries)-1, func(int) bool { return false })

	return cs
}

// InternedCount returns the number of distinct interned strings.
func InternedCount() int {
	table := internTableInstance()
	table.mu.RLock()
	defer table.mu.RUnlock()

	return table.index.Count()
}
