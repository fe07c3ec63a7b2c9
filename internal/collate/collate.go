// Package collate orders titles for list views. Most of the catalog is
// Korean, so plain byte ordering interleaves Hangul badly; the x/text
// collator gets jamo ordering right and still sorts Latin titles sanely.
package collate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var titleCollator = collate.New(language.Korean)

// SortTitles sorts the slice in place in Korean collation order.
func SortTitles(titles []string) {
	sort.SliceStable(titles, func(i, j int) bool {
		return titleCollator.CompareString(titles[i], titles[j]) < 0
	})
}
