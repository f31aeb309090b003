package missiondata

import (
	"sort"

	"github.com/andrescamacho/mission-optimizer-core/pkg/utils"
)

// FirstWeek returns min(weeks). weeks must be non-empty; callers validate
// the entity sets before reaching here.
func FirstWeek(weeks []int) int {
	first := weeks[0]
	for _, w := range weeks[1:] {
		first = utils.Min(first, w)
	}
	return first
}

// SortedWeeks returns a sorted copy of weeks.
func SortedWeeks(weeks []int) []int {
	sorted := append([]int(nil), weeks...)
	sort.Ints(sorted)
	return sorted
}

// PrevWeekIndex maps each week (other than the first, in sorted order) to
// its immediate predecessor. The first week has no entry.
func PrevWeekIndex(weeks []int) map[int]int {
	sorted := SortedWeeks(weeks)
	prev := make(map[int]int, len(sorted))
	for i := 1; i < len(sorted); i++ {
		prev[sorted[i]] = sorted[i-1]
	}
	return prev
}
