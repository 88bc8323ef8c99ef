package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// ErrSkeleton is returned when a scansion does not line up with the poem's words.
var ErrSkeleton = errors.New("scansion does not match poem words")

//go:embed seed/sea-dirge.toml
var seedSeaDirge string

// PoemFile is the TOML representation of a poem.
type PoemFile struct {
	Title         string          `toml:"title"`
	Poet          string          `toml:"poet"`
	Text          string          `toml:"text"`
	Authoritative string          `toml:"authoritative"`
	Scansions     []ScansionEntry `toml:"scansions"`
}

// ScansionEntry maps one named machine scansion.
type ScansionEntry struct {
	Label     string `toml:"label"`
	About     string `toml:"about"`
	Preferred bool   `toml:"preferred"`
	Scansion  string `toml:"scansion"`
}

// Load reads and validates a poem file.
func Load(path string) (scansion.Poem, error) {
	if path == "" {
		return scansion.Poem{}, fmt.Errorf("poem path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return scansion.Poem{}, fmt.Errorf("failed to open poem: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only poem file.
			_ = cerr
		}
	}()
	poem, err := Decode(f)
	if err != nil {
		return scansion.Poem{}, fmt.Errorf("%s: %w", path, err)
	}
	return poem, nil
}

// Decode parses a poem file and checks every scansion against the text's words.
func Decode(r io.Reader) (scansion.Poem, error) {
	var pf PoemFile
	if _, err := toml.NewDecoder(r).Decode(&pf); err != nil {
		return scansion.Poem{}, fmt.Errorf("failed to decode poem: %w", err)
	}
	return Build(pf)
}

// Seed returns the built-in poem used when the catalog is empty.
func Seed() (scansion.Poem, error) {
	return Decode(strings.NewReader(seedSeaDirge))
}

// Build converts a decoded poem file into a poem.
func Build(pf PoemFile) (scansion.Poem, error) {
	if strings.TrimSpace(pf.Text) == "" {
		return scansion.Poem{}, fmt.Errorf("poem text is empty")
	}
	words := Words(pf.Text)
	poem := scansion.Poem{
		Title:     strings.TrimSpace(pf.Title),
		Poet:      strings.TrimSpace(pf.Poet),
		Text:      pf.Text,
		Words:     words,
		Scansions: map[string]scansion.Named{},
	}
	if strings.TrimSpace(pf.Authoritative) != "" {
		s, err := parseFor(words, pf.Authoritative, false)
		if err != nil {
			return scansion.Poem{}, fmt.Errorf("authoritative scansion: %w", err)
		}
		poem.Authoritative = s
	}
	for _, entry := range pf.Scansions {
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			return scansion.Poem{}, fmt.Errorf("scansion label is empty")
		}
		if _, dup := poem.Scansions[label]; dup {
			return scansion.Poem{}, fmt.Errorf("duplicate scansion %q", label)
		}
		s, err := parseFor(words, entry.Scansion, true)
		if err != nil {
			return scansion.Poem{}, fmt.Errorf("scansion %q: %w", label, err)
		}
		poem.Scansions[label] = scansion.Named{
			Label:     label,
			About:     strings.TrimSpace(entry.About),
			Preferred: entry.Preferred,
			Scansion:  s,
		}
	}
	if _, err := poem.Reference(); err != nil {
		return scansion.Poem{}, err
	}
	return poem, nil
}

func parseFor(words [][]string, text string, allowUnknown bool) (scansion.Scansion, error) {
	s, err := scansion.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(allowUnknown); err != nil {
		return nil, err
	}
	if err := CheckSkeleton(words, s); err != nil {
		return nil, err
	}
	return s, nil
}

// CheckSkeleton verifies that s has one pattern per word on every line.
func CheckSkeleton(words [][]string, s scansion.Scansion) error {
	if len(words) != len(s) {
		return fmt.Errorf("poem has %d lines, scansion %d: %w", len(words), len(s), ErrSkeleton)
	}
	for i := range words {
		if len(words[i]) != len(s[i]) {
			return fmt.Errorf("line %d: poem has %d words, scansion %d: %w", i+1, len(words[i]), len(s[i]), ErrSkeleton)
		}
	}
	return nil
}
