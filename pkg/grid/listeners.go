package grid

type listenerEntry struct {
	fn      Listener
	removed bool
}

// listenerSet keeps registration order only as an implementation detail;
// callers must not rely on it.
type listenerSet struct {
	entries []*listenerEntry
}

func (s *listenerSet) add(fn Listener) func() {
	e := &listenerEntry{fn: fn}
	s.entries = append(s.entries, e)
	return func() { s.remove(e) }
}

func (s *listenerSet) remove(e *listenerEntry) {
	if e.removed {
		return
	}
	e.removed = true
	for i, cur := range s.entries {
		if cur == e {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *listenerSet) len() int { return len(s.entries) }

// dispatch iterates over a snapshot so listeners may subscribe or
// unsubscribe while being notified. An entry removed mid-dispatch is skipped.
func (s *listenerSet) dispatch(c *Config) {
	if len(s.entries) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(s.entries))
	copy(snapshot, s.entries)
	for _, e := range snapshot {
		if e.removed {
			continue
		}
		e.fn(c)
	}
}
