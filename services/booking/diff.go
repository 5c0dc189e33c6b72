package booking

// DiffNewIDs returns the ids of current that are absent from previous, in
// the order they appear in current. Duplicates in current are reported once.
func DiffNewIDs(previous, current []string) []string {
	seen := make(map[string]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	fresh := []string{}
	for _, id := range current {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}
	return fresh
}
