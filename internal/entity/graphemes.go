package entity

import "github.com/clipperhouse/uax29/v2/graphemes"

// graphemeCount returns the number of Unicode grapheme clusters in s. A
// Devanagari consonant with several attached matras/marks is one grapheme
// cluster but several codepoints, so this is a materially different number
// than len([]rune(s)) and is only used for input-size diagnostics, never
// for segmentation — segmentation always walks codepoints, never code
// units, so it stays well-defined on malformed UTF-8.
func graphemeCount(s string) int {
	g := graphemes.FromString(s)
	n := 0
	for g.Next() {
		n++
	}
	return n
}
