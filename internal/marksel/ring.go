package marksel

// DefaultRingSize is the default mark ring capacity.
const DefaultRingSize = 16

// Ring is a bounded history of mark positions.
//
// The cycle position starts at the tail, just past the newest entry. Prev
// walks toward older entries and Next back toward the tail. Leaving the tail
// drops a breadcrumb at the current cursor so Next can return to it.
type Ring struct {
	entries []int
	size    int
	pos     int
}

// NewRing creates a ring holding at most size entries.
func NewRing(size int) *Ring {
	if size < 1 {
		size = DefaultRingSize
	}
	return &Ring{size: size}
}

// Len returns the number of entries.
func (r *Ring) Len() int {
	return len(r.entries)
}

// Entries returns the entries from oldest to newest.
func (r *Ring) Entries() []int {
	out := make([]int, len(r.entries))
	copy(out, r.entries)
	return out
}

// Push records offset as the newest entry and resets cycling to the tail.
// An offset equal to the newest entry is not recorded twice.
func (r *Ring) Push(offset int) {
	r.append(offset)
	r.pos = len(r.entries)
}

func (r *Ring) append(offset int) (dropped bool) {
	if n := len(r.entries); n > 0 && r.entries[n-1] == offset {
		return false
	}
	r.entries = append(r.entries, offset)
	if len(r.entries) > r.size {
		r.entries = r.entries[1:]
		return true
	}
	return false
}

// Prev returns the next older entry that differs from cursor.
func (r *Ring) Prev(cursor int) (int, bool) {
	i := r.pos - 1
	for i >= 0 && r.entries[i] == cursor {
		i--
	}
	if i < 0 {
		return 0, false
	}
	if r.pos == len(r.entries) {
		if r.append(cursor) {
			i--
		}
		if i < 0 {
			return 0, false
		}
	}
	r.pos = i
	return r.entries[i], true
}

// Next returns the next newer entry that differs from cursor.
func (r *Ring) Next(cursor int) (int, bool) {
	i := r.pos + 1
	for i < len(r.entries) && r.entries[i] == cursor {
		i++
	}
	if i >= len(r.entries) {
		return 0, false
	}
	r.pos = i
	return r.entries[i], true
}

// Resize changes the capacity, dropping the oldest entries if needed.
func (r *Ring) Resize(size int) {
	if size < 1 {
		size = DefaultRingSize
	}
	r.size = size
	if over := len(r.entries) - size; over > 0 {
		r.entries = r.entries[over:]
		r.pos = max(r.pos-over, 0)
	}
}
