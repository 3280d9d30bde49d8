package ids

import "strings"

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
func UniquePrefixLengths(ids []string) map[string]int {
	uniqueIDs := NormalizeUnique(ids)

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}

	return lengths
}

// NormalizeUnique lowercases IDs and drops empty and duplicate entries,
// preserving first-seen order.
func NormalizeUnique(ids []string) []string {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := Normalize(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}
	return uniqueIDs
}

// MatchPrefix finds the ID that prefix identifies. An exact match always
// wins; otherwise the prefix must match exactly one ID.
func MatchPrefix(ids []string, prefix string) (match string, found bool, ambiguous bool) {
	prefix = Normalize(prefix)
	if prefix == "" {
		return "", false, false
	}

	for _, id := range ids {
		if Normalize(id) == prefix {
			return id, true, false
		}
	}

	for _, id := range ids {
		if !strings.HasPrefix(Normalize(id), prefix) {
			continue
		}
		if found {
			return "", true, true
		}
		match = id
		found = true
	}

	return match, found, false
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
