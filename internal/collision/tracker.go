// Package collision tracks content hashes and resolves hash collisions by
// comparing the content behind each candidate.
package collision

// Tracker maps 64-bit content hashes to the indexes of the entries carrying
// them. Several distinct entries may share a hash; the caller decides
// equality through the callback passed to Track and Find.
type Tracker struct {
	buckets      map[uint64][]int // hash → entry indexes
	count        int              // number of distinct entries
	hasCollision bool             // whether two distinct entries share a hash
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		buckets: make(map[uint64][]int),
	}
}

// Find returns the index of a tracked entry with the given hash for which
// same reports true.
func (t *Tracker) Find(hash uint64, same func(index int) bool) (int, bool) {
	for _, idx := range t.buckets[hash] {
		if same(idx) {
			return idx, true
		}
	}

	return -1, false
}

// Track records index under hash unless an equal entry is already tracked.
//
// Returns:
//   - int: The index of the equal entry when one exists, otherwise index
//   - bool: true if an equal entry already existed (index was not recorded)
func (t *Tracker) Track(hash uint64, index int, same func(index int) bool) (int, bool) {
	if existing, ok := t.Find(hash, same); ok {
		return existing, true
	}

	if len(t.buckets[hash]) > 0 {
		t.hasCollision = true
	}
	t.buckets[hash] = append(t.buckets[hash], index)
	t.count++

	return index, false
}

// HasCollision returns true if two distinct entries have shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of distinct tracked entries.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked entries and collision state.
func (t *Tracker) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.count = 0
	t.hasCollision = false
}
