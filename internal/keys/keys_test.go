package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eci-voterfind/voterfind/internal/devnorm"
)

func identity(s string) string { return s }

func TestBuildSingleToken(t *testing.T) {
	got := Build(identity, 3, "रामलाल")
	assert.Equal(t, []string{"राम"}, got)
}

func TestBuildShortTokenUsesWholeToken(t *testing.T) {
	got := Build(identity, 3, "अब")
	assert.Equal(t, []string{"अब"}, got)
}

func TestBuildTwoTokensIncludesJoinVariants(t *testing.T) {
	got := Build(identity, 3, "राम कुमार")
	assert.Contains(t, got, "राम")
	assert.Contains(t, got, "कुम")
	// join: "रामकुमार"[:3] and the full join are the same string here.
	assert.Contains(t, got, "राम")
}

func TestBuildFourTokensCollapsesJoinVariantSpaces(t *testing.T) {
	got := Build(identity, 2, "क ख ग घ")
	// every adjacent-pair merge collapses to the same spaceless full join
	// once spaces are stripped for n>=4, so all join-variant keys coincide.
	assert.Contains(t, got, "कख")
}

func TestBuildEmpty(t *testing.T) {
	assert.Nil(t, Build(devnorm.NormStrict, 3, ""))
	assert.Nil(t, Build(devnorm.NormStrict, 3, "   "))
}

func TestBuildDefaults(t *testing.T) {
	assert.NotEmpty(t, BuildStrict("राम कुमार"))
	assert.NotEmpty(t, BuildExact("राम कुमार"))
	assert.NotEmpty(t, BuildLoose("राम कुमार"))
}
