package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// tenWords has ten one-syllable words across two lines and a blank line.
func tenWords() scansion.Scansion {
	return scansion.Scansion{
		{"u", "u", "u", "u", "u"},
		{},
		{"u", "u", "u", "u", "u"},
	}
}

func stressFirst(t *testing.T, s scansion.Scansion, n int) scansion.Scansion {
	t.Helper()
	out := s
	for k := 0; k < n; k++ {
		line := 0
		word := k
		if k >= 5 {
			line, word = 2, k-5
		}
		var err error
		out, err = scansion.Toggle(out, line, word, 0)
		require.NoError(t, err)
	}
	return out
}

func TestCompareWithSelf(t *testing.T) {
	ref := tenWords()
	diff, err := Compare(ref, ref.Clone())
	require.NoError(t, err)
	assert.Empty(t, diff.Mismatches)
	assert.Equal(t, 10, diff.Words)
	assert.Equal(t, 0, diff.Percentage)
}

func TestCompareScoresBoundaries(t *testing.T) {
	ref := tenWords()
	cases := []struct {
		differ  int
		percent int
		points  Points
	}{
		{1, 10, Won},
		{3, 30, Kept},
		{4, 40, Lost},
	}
	for _, tc := range cases {
		diff, err := Compare(ref, stressFirst(t, ref, tc.differ))
		require.NoError(t, err)
		assert.Len(t, diff.Mismatches, tc.differ)
		assert.Equal(t, tc.percent, diff.Percentage)
		assert.Equal(t, tc.points, Score(diff.Percentage))
	}
}

func TestCompareOrderAndAgreement(t *testing.T) {
	ref := tenWords()
	cand, err := scansion.Toggle(ref, 2, 3, 0)
	require.NoError(t, err)
	cand, err = scansion.Toggle(cand, 0, 1, 0)
	require.NoError(t, err)

	diff, err := Compare(ref, cand)
	require.NoError(t, err)
	assert.Equal(t, []scansion.Coord{{Line: 0, Word: 1}, {Line: 2, Word: 3}}, diff.Mismatches)
	assert.False(t, diff.Agrees(scansion.Coord{Line: 2, Word: 3}))
	assert.True(t, diff.Agrees(scansion.Coord{Line: 2, Word: 2}))

	agreement := diff.Agreement(cand)
	require.Len(t, agreement, 3)
	assert.Equal(t, []bool{true, false, true, true, true}, agreement[0])
	assert.Empty(t, agreement[1])
	assert.Equal(t, []bool{true, true, true, false, true}, agreement[2])
}

func TestCompareLengthMismatchDisagrees(t *testing.T) {
	ref := scansion.Scansion{{"u", "/u"}}
	cand := scansion.Scansion{{"u", "/uu"}}
	diff, err := Compare(ref, cand)
	require.NoError(t, err)
	assert.Equal(t, []scansion.Coord{{Line: 0, Word: 1}}, diff.Mismatches)
	assert.Equal(t, 50, diff.Percentage)
}

func TestCompareIsSymmetricInMismatches(t *testing.T) {
	a := scansion.Scansion{{"u", "/u", "/"}, {"u/"}}
	b := scansion.Scansion{{"/", "/u", "/"}, {"u"}}
	ab, err := Compare(a, b)
	require.NoError(t, err)
	ba, err := Compare(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab.Mismatches, ba.Mismatches)
	assert.Equal(t, ab.Percentage, ba.Percentage)
}

func TestCompareRejectsShapeMismatch(t *testing.T) {
	_, err := Compare(scansion.Scansion{{"u"}}, scansion.Scansion{{"u"}, {"u"}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = Compare(scansion.Scansion{{"u", "u"}}, scansion.Scansion{{"u"}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCompareRejectsEmpty(t *testing.T) {
	_, err := Compare(scansion.Scansion{{}, {}}, scansion.Scansion{{}, {}})
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestPercentageRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 13, Percentage(1, 8))  // 12.5
	assert.Equal(t, 33, Percentage(1, 3))  // 33.3
	assert.Equal(t, 67, Percentage(2, 3))  // 66.7
	assert.Equal(t, 100, Percentage(3, 3))
}

func TestScoreThresholds(t *testing.T) {
	assert.Equal(t, Won, Score(0))
	assert.Equal(t, Won, Score(ExcellentThreshold))
	assert.Equal(t, Kept, Score(ExcellentThreshold+1))
	assert.Equal(t, Kept, Score(AcceptableThreshold))
	assert.Equal(t, Lost, Score(AcceptableThreshold+1))
	assert.Equal(t, Lost, Score(100))
}

func TestPointsVerb(t *testing.T) {
	assert.Equal(t, "gained", Won.Verb())
	assert.Equal(t, "neither gained nor lost", Kept.Verb())
	assert.Equal(t, "lost", Lost.Verb())
}
