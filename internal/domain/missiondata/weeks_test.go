package missiondata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstWeekIsMinimum(t *testing.T) {
	assert.Equal(t, 2, FirstWeek([]int{5, 3, 2, 8}))
}

func TestFirstWeekNotHardcodedToOne(t *testing.T) {
	// Weeks need not start at 1; first week is always min(weeks).
	assert.Equal(t, 10, FirstWeek([]int{12, 10, 11}))
}

func TestPrevWeekIndex(t *testing.T) {
	prev := PrevWeekIndex([]int{4, 1, 2, 8})
	assert.Equal(t, map[int]int{2: 1, 4: 2, 8: 4}, prev)
	_, hasFirst := prev[1]
	assert.False(t, hasFirst, "first week must have no predecessor")
}

func TestSortedWeeksDoesNotMutateInput(t *testing.T) {
	weeks := []int{3, 1, 2}
	sorted := SortedWeeks(weeks)
	assert.Equal(t, []int{1, 2, 3}, sorted)
	assert.Equal(t, []int{3, 1, 2}, weeks)
}
