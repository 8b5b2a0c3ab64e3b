package contextbuilder

// recencyList is a capped most-recent-first list with no duplicates.
// Adding an existing entry moves it to the front.
type recencyList struct {
	capacity int
	entries  []string
}

func newRecencyList(capacity int) *recencyList {
	if capacity < 1 {
		capacity = 1
	}
	return &recencyList{capacity: capacity}
}

func (l *recencyList) Add(entry string) {
	if entry == "" {
		return
	}

	for i, existing := range l.entries {
		if existing == entry {
			copy(l.entries[1:i+1], l.entries[:i])
			l.entries[0] = entry
			return
		}
	}

	l.entries = append([]string{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Snapshot returns a copy, most-recent-first.
func (l *recencyList) Snapshot() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *recencyList) Len() int {
	return len(l.entries)
}
