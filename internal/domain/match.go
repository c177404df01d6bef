package domain

import (
	"math"
	"unicode/utf8"
)

// MatchPercent is the Jaccard similarity of two tag sets scaled to 0-100 and
// rounded. Two empty sets score 0.
func MatchPercent(a, b []int) int {
	setA := make(map[int]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[int]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}

	common := 0
	for id := range setA {
		if _, ok := setB[id]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	if union == 0 {
		return 0
	}
	return int(math.Round(float64(common) / float64(union) * 100))
}

// UniqueTags drops duplicate ids, keeping first-seen order.
func UniqueTags(ids []int) []int {
	if ids == nil {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
