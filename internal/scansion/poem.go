package scansion

import (
	"errors"
	"sort"
)

const (
	// BlankSlate is the conventional starting point: every syllable unstressed.
	BlankSlate = "Blank Slate"
	// DefaultReference names the machine scansion used when a poem has no authoritative one.
	DefaultReference = "House Robber Scan"
	// AuthoritativeLabel names the curated scansion in listings.
	AuthoritativeLabel = "Authoritative"
)

var (
	ErrNoReference  = errors.New("poem has no reference scansion")
	ErrUnknownLabel = errors.New("unknown scansion label")
)

// Named binds a label to a stored scansion.
type Named struct {
	Label     string
	About     string
	Preferred bool
	Scansion  Scansion
}

// Poem is a catalog entry with its word skeleton and available scansions.
type Poem struct {
	ID    int64
	Title string
	Poet  string
	Text  string
	// Words holds the display words per line, matching the scansion skeleton.
	Words         [][]string
	Authoritative Scansion
	Scansions     map[string]Named
}

// HasAuthoritative reports whether the poem carries a curated scansion.
func (p Poem) HasAuthoritative() bool {
	return len(p.Authoritative) > 0
}

// ReferenceLabel names the scansion Reference resolves to, or "" when there is none.
// A curated authoritative scansion always wins over the designated machine scansion.
func (p Poem) ReferenceLabel() string {
	if p.HasAuthoritative() {
		return AuthoritativeLabel
	}
	if _, ok := p.Scansions[DefaultReference]; ok {
		return DefaultReference
	}
	for _, label := range p.Labels() {
		if p.Scansions[label].Preferred {
			return label
		}
	}
	return ""
}

// Reference resolves the scansion a submission is scored against.
func (p Poem) Reference() (Scansion, error) {
	switch label := p.ReferenceLabel(); label {
	case "":
		return nil, ErrNoReference
	case AuthoritativeLabel:
		return p.Authoritative, nil
	default:
		return p.Scansions[label].Scansion, nil
	}
}

// Named returns the scansion stored under label. Blank Slate is synthesized when the catalog has none.
func (p Poem) Named(label string) (Named, error) {
	if n, ok := p.Scansions[label]; ok {
		return n, nil
	}
	if label == BlankSlate {
		return p.BlankSlate()
	}
	return Named{}, ErrUnknownLabel
}

// BlankSlate derives an all-unstressed scansion from the reference's syllable counts.
func (p Poem) BlankSlate() (Named, error) {
	if n, ok := p.Scansions[BlankSlate]; ok {
		return n, nil
	}
	ref, err := p.Reference()
	if err != nil {
		return Named{}, err
	}
	return Named{Label: BlankSlate, Scansion: ref.Blank()}, nil
}

// Labels lists starting scansions: Blank Slate first, then preferred ones, then the rest alphabetically.
func (p Poem) Labels() []string {
	labels := make([]string, 0, len(p.Scansions)+1)
	for label := range p.Scansions {
		if label != BlankSlate {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		pi := p.Scansions[labels[i]].Preferred
		pj := p.Scansions[labels[j]].Preferred
		if pi != pj {
			return pi
		}
		return labels[i] < labels[j]
	})
	return append([]string{BlankSlate}, labels...)
}
