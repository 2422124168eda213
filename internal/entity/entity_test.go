package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
)

func TestSegmentTotality(t *testing.T) {
	cases := []string{
		"",
		"राम",
		"रामलाल शर्मा",
		"ईसिडोर तिर्की",
		"क्षत्रिय",
		"   बहुत   सारे   शब्द  ",
		"123 abc",
	}
	for _, s := range cases {
		stripped := devnorm.StripMarks(s)
		segs := Segment(stripped)
		require.Equal(t, stripped, strings.Join(segs, ""), "segmentation must reproduce input for %q", s)
	}
}

func TestSegmentLongestMatch(t *testing.T) {
	segs := Segment(devnorm.StripMarks("क्षत्रिय"))
	require.NotEmpty(t, segs)
	assert.Contains(t, segs, "कष")
}

func TestSubstTypeOrdering(t *testing.T) {
	assert.Equal(t, Exact, Subst("क", "क"))
	assert.Equal(t, Phonetic, Subst("क", "ख"))
	assert.Equal(t, Phonetic, Subst("ब", "व"))
	assert.Equal(t, VisualP0, Subst("क", "र"))
	assert.Equal(t, VisualP1, Subst("ट", "ठ"))
	assert.Equal(t, VisualP2, Subst("न", "म"))
	assert.Equal(t, Other, Subst("क", "प"))
}

func TestSafeGraphemeCount(t *testing.T) {
	// "राँची" is five codepoints but two grapheme clusters: the matra and
	// candrabindu ride on the base consonants.
	assert.Equal(t, 2, SafeGraphemeCount("राँची"))
	assert.Equal(t, 0, SafeGraphemeCount(""))
	assert.Equal(t, 3, SafeGraphemeCount("abc"))
}

func TestIsMatraLike(t *testing.T) {
	assert.True(t, IsMatraLike("ी"))
	assert.False(t, IsMatraLike("क"))
	assert.False(t, IsMatraLike("क्ष"))
}
