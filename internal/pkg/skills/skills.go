// Package skills computes the matching/missing partition between a
// candidate's skill list and a posting's required skills.
package skills

import "strings"

// MatchResult partitions a posting's required skills against a candidate's.
type MatchResult struct {
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
}

// Match compares candidate skills with required skills. Matching keeps the
// candidate's order and spelling; missing keeps the posting's. Comparison is
// case-insensitive on trimmed values, and duplicates collapse to the first
// occurrence.
func Match(candidate, required []string) MatchResult {
	requiredSet := make(map[string]struct{}, len(required))
	for _, skill := range required {
		if key := normalize(skill); key != "" {
			requiredSet[key] = struct{}{}
		}
	}

	res := MatchResult{Matching: []string{}, Missing: []string{}}

	matched := make(map[string]struct{}, len(candidate))
	for _, skill := range candidate {
		key := normalize(skill)
		if key == "" {
			continue
		}
		if _, ok := matched[key]; ok {
			continue
		}
		if _, ok := requiredSet[key]; ok {
			matched[key] = struct{}{}
			res.Matching = append(res.Matching, strings.TrimSpace(skill))
		}
	}

	seenMissing := make(map[string]struct{}, len(required))
	for _, skill := range required {
		key := normalize(skill)
		if key == "" {
			continue
		}
		if _, ok := matched[key]; ok {
			continue
		}
		if _, ok := seenMissing[key]; ok {
			continue
		}
		seenMissing[key] = struct{}{}
		res.Missing = append(res.Missing, strings.TrimSpace(skill))
	}

	return res
}

func normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
