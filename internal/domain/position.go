package domain

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"time"
)

// NonNumericPositionRank orders finish codes (DNF, DSQ, blank) after every numeric position.
const NonNumericPositionRank = 999999

var numericPosition = regexp.MustCompile(`^[0-9]+$`)

// NumericPosition returns the integer value of a position made only of digits.
func NumericPosition(pos string) (int, bool) {
	if !numericPosition.MatchString(pos) {
		return 0, false
	}
	n, err := strconv.Atoi(pos)
	if err != nil || n >= NonNumericPositionRank {
		return NonNumericPositionRank, false
	}
	return n, true
}

// PositionRank is the sort key for a position string.
func PositionRank(pos string) int {
	if n, ok := NumericPosition(pos); ok {
		return n
	}
	return NonNumericPositionRank
}

// ComparePositions orders numeric positions ascending, then finish codes by text,
// then blank positions.
func ComparePositions(a, b string) int {
	if c := cmp.Compare(PositionRank(a), PositionRank(b)); c != 0 {
		return c
	}
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return cmp.Compare(a, b)
}

// CompareDatesDesc orders later dates first; undated values go last.
func CompareDatesDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return b.Compare(*a)
}

// SortByDateThenPosition sorts records by regatta date descending, then position ascending.
// The sort is stable.
func SortByDateThenPosition(records []ResultRecord) {
	slices.SortStableFunc(records, func(a, b ResultRecord) int {
		if c := CompareDatesDesc(a.RegattaDate, b.RegattaDate); c != 0 {
			return c
		}
		return ComparePositions(a.Position, b.Position)
	})
}

// SortByPosition sorts records by position ascending. The sort is stable.
func SortByPosition(records []ResultRecord) {
	slices.SortStableFunc(records, func(a, b ResultRecord) int {
		return ComparePositions(a.Position, b.Position)
	})
}
