package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

func TestWords(t *testing.T) {
	got := Words("The rain -- it falls\r\non roofs,  &\n\nand/or stones—yes\n")
	want := [][]string{
		{"The", "rain", "it", "falls"},
		{"on", "roofs,"},
		{},
		{"and", "or", "stones", "yes"},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Words("  \n"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Full fathom five", FirstLine("\n  Full fathom five  \nOf his bones"))
	assert.Equal(t, "", FirstLine(""))
}

func TestLoadPoemFile(t *testing.T) {
	poem, err := Load(filepath.Join("testdata", "stanzas.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Two Stanzas", poem.Title)
	assert.Equal(t, "Anonymous", poem.Poet)
	assert.False(t, poem.HasAuthoritative())
	require.Len(t, poem.Words, 4)
	assert.Empty(t, poem.Words[2])

	assert.Equal(t, []string{scansion.BlankSlate, scansion.DefaultReference, "Simple Scan"}, poem.Labels())
	ref, err := poem.Reference()
	require.NoError(t, err)
	assert.Equal(t, "u / u /\nu /\n\nu /u /", ref.String())

	blank, err := poem.Named(scansion.BlankSlate)
	require.NoError(t, err)
	assert.Equal(t, "u u u u\nu u\n\nu uu u", blank.Scansion.String())
	assert.Equal(t, scansion.Pattern("?"), poem.Scansions["Simple Scan"].Scansion[1][0])
}

func TestSeed(t *testing.T) {
	poem, err := Seed()
	require.NoError(t, err)
	assert.Equal(t, "A Sea Dirge", poem.Title)
	require.True(t, poem.HasAuthoritative())
	assert.Len(t, poem.Authoritative, 9)
	assert.Equal(t, 48, poem.Authoritative.WordCount())
}

func TestDecodeRejectsSkeletonMismatch(t *testing.T) {
	_, err := Decode(strings.NewReader(`
text = "one two"
authoritative = "u"
`))
	require.ErrorIs(t, err, ErrSkeleton)
}

func TestDecodeRejectsUnknownInAuthoritative(t *testing.T) {
	_, err := Decode(strings.NewReader(`
text = "one two"
authoritative = "u ?"
`))
	require.ErrorIs(t, err, scansion.ErrInvalidSymbol)
}

func TestDecodeRequiresReference(t *testing.T) {
	_, err := Decode(strings.NewReader(`text = "one two"`))
	require.ErrorIs(t, err, scansion.ErrNoReference)
}

func TestDecodeRejectsDuplicateLabels(t *testing.T) {
	_, err := Decode(strings.NewReader(`
text = "one"
[[scansions]]
label = "A"
scansion = "u"
[[scansions]]
label = "A"
scansion = "/"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
