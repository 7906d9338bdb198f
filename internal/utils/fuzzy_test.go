package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

func TestFuzzyRank_EmptyQueryKeepsOrder(t *testing.T) {
	names := []string{"Clerks", "Drivers", "Metalworkers"}
	assert.Equal(t, []int{0, 1, 2}, utils.FuzzyRank("", names))
	assert.Equal(t, []int{0, 1, 2}, utils.FuzzyRank("   ", names))
}

func TestFuzzyRank_SubstringBeatsEditDistance(t *testing.T) {
	names := []string{"Clerk", "Metalworkers"}
	// "metal" is a substring of one and a distant edit of the other.
	got := utils.FuzzyRank("metal", names)
	require.NotEmpty(t, got)
	assert.Equal(t, 1, got[0])
}

func TestFuzzyRank_EarlierSubstringHitRanksHigher(t *testing.T) {
	names := []string{"Greater Dockside", "Dockside"}
	got := utils.FuzzyRank("dock", names)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 0, got[1])
}

func TestFuzzyRank_ToleratesTypos(t *testing.T) {
	names := []string{"Clerks", "Drivers"}
	got := utils.FuzzyRank("Clercs", names)
	require.NotEmpty(t, got)
	assert.Equal(t, 0, got[0])
}

func TestFuzzyRank_DropsPoorMatches(t *testing.T) {
	names := []string{"Metalworkers"}
	assert.Empty(t, utils.FuzzyRank("zzz", names))
}

func TestFuzzyRank_CaseInsensitive(t *testing.T) {
	names := []string{"METALWORKERS"}
	got := utils.FuzzyRank("metalworkers", names)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0])
}
