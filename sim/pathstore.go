package sim

// PathKey identifies a (src_AS, dst_AS) entry in the path store.
type PathKey struct {
	Src, Dst string
}

// PathStore maps (src_AS, dst_AS) to an ordered, append-only list of
// router-level paths, and tracks which paths are currently marked down
// (spec §3, §4.6). It is single-owner (the algorithm) and single-threaded,
// so no locking is required (spec §5). A slice returned by Get is not
// disturbed by later registrations, which only append; Snapshot() copies
// the whole store for callers that need a stable view of every pair.
type PathStore struct {
	paths       map[PathKey][][]string
	unavailable map[string]bool // keyed by PathSignature
}

// NewPathStore creates an empty path store.
func NewPathStore() *PathStore {
	return &PathStore{
		paths:       make(map[PathKey][][]string),
		unavailable: make(map[string]bool),
	}
}

// Register appends path under (src,dst) unless an exactly-equal router
// sequence is already stored there (spec §4.6, "idempotence laws").
func (s *PathStore) Register(src, dst string, path []string) {
	key := PathKey{src, dst}
	for _, existing := range s.paths[key] {
		if samePath(existing, path) {
			return
		}
	}
	stored := make([]string, len(path))
	copy(stored, path)
	s.paths[key] = append(s.paths[key], stored)
}

// Get returns the ordered list of paths registered for (src,dst). The
// returned slice shares backing arrays with the store and must not be
// mutated by the caller.
func (s *PathStore) Get(src, dst string) [][]string {
	return s.paths[PathKey{src, dst}]
}

// Snapshot returns a shallow copy of the whole store, safe to range over
// while registration continues to mutate the original (spec §5).
func (s *PathStore) Snapshot() map[PathKey][][]string {
	out := make(map[PathKey][][]string, len(s.paths))
	for k, v := range s.paths {
		cp := make([][]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// LeavesFor returns every AS id L such that a (core, L) segment is known,
// used by beacon segment combination to enumerate leaf pairs (spec §4.5).
func (s *PathStore) LeavesFor(core string) []string {
	seen := make(map[string]bool)
	var out []string
	for k := range s.paths {
		if k.Src == core && k.Dst != core && !seen[k.Dst] {
			seen[k.Dst] = true
			out = append(out, k.Dst)
		}
	}
	return out
}

// MarkDown marks path unavailable and returns every (src,dst) pair whose
// stored list contains it (spec §4.6). Idempotent: marking an already-down
// path again returns the same affected set without further side effects.
func (s *PathStore) MarkDown(path []string) []PathKey {
	sig := PathSignature(path)
	s.unavailable[sig] = true
	return s.affectedPairs(path)
}

// MarkUp restores availability for path (idempotent) and returns every
// affected (src,dst) pair.
func (s *PathStore) MarkUp(path []string) []PathKey {
	sig := PathSignature(path)
	delete(s.unavailable, sig)
	return s.affectedPairs(path)
}

// IsAvailable reports whether path is not currently marked down. Paths that
// were never registered are considered available (no implicit transitions
// except "initial = available", spec §4.11).
func (s *PathStore) IsAvailable(path []string) bool {
	return !s.unavailable[PathSignature(path)]
}

func (s *PathStore) affectedPairs(path []string) []PathKey {
	var affected []PathKey
	for key, list := range s.paths {
		for _, p := range list {
			if samePath(p, path) {
				affected = append(affected, key)
				break
			}
		}
	}
	return affected
}

func samePath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
