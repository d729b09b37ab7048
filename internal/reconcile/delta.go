package reconcile

import "ufcstats/internal/records"

// EventDelta is the set of events a run has to (re)fetch fights for.
type EventDelta struct {
	// New events are in the fresh listing but were never persisted.
	New []records.Event
	// Incomplete events were persisted but have no fight rows, usually because
	// an earlier run stopped before writing them.
	Incomplete []records.Event
}

func (d EventDelta) Empty() bool {
	return len(d.New) == 0 && len(d.Incomplete) == 0
}

// Targets returns the new events followed by the incomplete ones.
func (d EventDelta) Targets() []records.Event {
	out := make([]records.Event, 0, len(d.New)+len(d.Incomplete))
	out = append(out, d.New...)
	out = append(out, d.Incomplete...)
	return out
}

func (d EventDelta) names() map[string]bool {
	names := make(map[string]bool, len(d.New)+len(d.Incomplete))
	for _, e := range d.Targets() {
		names[e.Name] = true
	}
	return names
}

// ComputeEventDelta compares a fresh listing against what is persisted. The
// url of an incomplete event is taken from the fresh listing when it is
// still listed there.
func ComputeEventDelta(fresh, persisted []records.Event, fights []records.Fight) EventDelta {
	persistedNames := make(map[string]bool, len(persisted))
	for _, e := range persisted {
		persistedNames[e.Name] = true
	}
	withFights := make(map[string]bool)
	for _, f := range fights {
		withFights[f.Event] = true
	}
	freshByName := make(map[string]records.Event, len(fresh))
	for _, e := range fresh {
		freshByName[e.Name] = e
	}

	var delta EventDelta
	seen := make(map[string]bool)
	for _, e := range fresh {
		if seen[e.Name] || persistedNames[e.Name] {
			continue
		}
		seen[e.Name] = true
		delta.New = append(delta.New, e)
	}
	for _, e := range persisted {
		if seen[e.Name] || withFights[e.Name] {
			continue
		}
		seen[e.Name] = true
		if listed, ok := freshByName[e.Name]; ok {
			e = listed
		}
		delta.Incomplete = append(delta.Incomplete, e)
	}
	return delta
}

// ComputeFighterDelta returns the fighters of the fresh listing whose url was
// never persisted, without duplicates.
func ComputeFighterDelta(fresh, persisted []records.FighterDetail) []records.FighterDetail {
	known := make(map[string]bool, len(persisted))
	for _, f := range persisted {
		known[f.URL] = true
	}
	var unseen []records.FighterDetail
	for _, f := range fresh {
		if known[f.URL] {
			continue
		}
		known[f.URL] = true
		unseen = append(unseen, f)
	}
	return unseen
}

// mergeByKey returns `fresh` followed by every row of `persisted` whose key
// is not in `fresh`. Within each side the first row of a key wins.
func mergeByKey[T any](fresh, persisted []T, key func(T) string) []T {
	seen := make(map[string]bool, len(fresh))
	out := make([]T, 0, len(fresh)+len(persisted))
	for _, side := range [][]T{fresh, persisted} {
		for _, row := range side {
			k := key(row)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, row)
		}
	}
	return out
}

// appendByKey returns `persisted` with `fresh` appended. A fresh row whose
// key is already persisted replaces that row in place instead.
func appendByKey[T any](persisted, fresh []T, key func(T) string) []T {
	replacements := make(map[string]T, len(fresh))
	for _, row := range fresh {
		if _, ok := replacements[key(row)]; !ok {
			replacements[key(row)] = row
		}
	}
	seen := make(map[string]bool, len(persisted)+len(fresh))
	out := make([]T, 0, len(persisted)+len(fresh))
	for _, side := range [][]T{persisted, fresh} {
		for _, row := range side {
			k := key(row)
			if seen[k] {
				continue
			}
			seen[k] = true
			if replacement, ok := replacements[k]; ok {
				row = replacement
			}
			out = append(out, row)
		}
	}
	return out
}

// withoutEvents drops the rows belonging to any of `events`.
func withoutEvents[T any](rows []T, events map[string]bool, event func(T) string) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if events[event(row)] {
			continue
		}
		out = append(out, row)
	}
	return out
}
