package filter

import "strings"

// FuzzyMatch performs fuzzy subsequence matching
// Returns whether the pattern matches and the positions of matched characters
// Matching is case-insensitive
func FuzzyMatch(pattern, target string) (bool, []int) {
	if pattern == "" {
		return true, []int{}
	}

	patternRunes := []rune(strings.ToLower(pattern))
	targetRunes := []rune(strings.ToLower(target))

	positions := make([]int, 0, len(patternRunes))
	patternIdx := 0

	for i := 0; i < len(targetRunes) && patternIdx < len(patternRunes); i++ {
		if targetRunes[i] == patternRunes[patternIdx] {
			positions = append(positions, i)
			patternIdx++
		}
	}

	if patternIdx == len(patternRunes) {
		return true, positions
	}
	return false, nil
}
