// Package alphabet holds the read-only grapheme catalog the tone engine is
// run against.
package alphabet

import (
	"fmt"

	"github.com/eNzyOfficial/gai-er/internal/thai"
)

// Catalog is an ordered, immutable set of grapheme records. Order matters:
// lookups that could match several records return the first one.
type Catalog struct {
	records    []thai.Grapheme
	consonants map[string]int
	byChar     map[string]int
	vowels     []int
}

// New builds a catalog from records. The slice is copied, so later changes
// by the caller do not leak into the catalog.
func New(records []thai.Grapheme) *Catalog {
	c := &Catalog{
		records:    make([]thai.Grapheme, len(records)),
		consonants: make(map[string]int),
		byChar:     make(map[string]int),
	}
	copy(c.records, records)

	for i, r := range c.records {
		if _, ok := c.byChar[r.Character]; !ok {
			c.byChar[r.Character] = i
		}
		switch r.Type {
		case thai.TypeConsonant:
			if _, ok := c.consonants[r.Character]; !ok {
				c.consonants[r.Character] = i
			}
		case thai.TypeVowel:
			c.vowels = append(c.vowels, i)
		}
	}

	return c
}

// Validate checks that every record has a known type and that every
// consonant declares its class.
func Validate(records []thai.Grapheme) error {
	for i, r := range records {
		if r.Character == "" {
			return fmt.Errorf("record %d: empty character", i)
		}
		if !r.Type.Valid() {
			return fmt.Errorf("record %d (%s): unknown type %q", i, r.Character, r.Type)
		}
		if r.Type == thai.TypeConsonant && !r.Class.Valid() {
			return fmt.Errorf("record %d (%s): consonant without a valid class", i, r.Character)
		}
	}
	return nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of all records in catalog order.
func (c *Catalog) Records() []thai.Grapheme {
	out := make([]thai.Grapheme, len(c.records))
	copy(out, c.records)
	return out
}

// Consonant returns the first consonant record for ch.
func (c *Catalog) Consonant(ch string) (thai.Grapheme, bool) {
	i, ok := c.consonants[ch]
	if !ok {
		return thai.Grapheme{}, false
	}
	return c.records[i], true
}

// Lookup returns the first record of any type for ch.
func (c *Catalog) Lookup(ch string) (thai.Grapheme, bool) {
	i, ok := c.byChar[ch]
	if !ok {
		return thai.Grapheme{}, false
	}
	return c.records[i], true
}

// Vowels returns the vowel records in catalog order.
func (c *Catalog) Vowels() []thai.Grapheme {
	out := make([]thai.Grapheme, 0, len(c.vowels))
	for _, i := range c.vowels {
		out = append(out, c.records[i])
	}
	return out
}

// Group returns the records belonging to a study group.
func (c *Catalog) Group(g thai.AlphabetGroup) []thai.Grapheme {
	var out []thai.Grapheme
	for _, r := range c.records {
		if inGroup(r, g) {
			out = append(out, r)
		}
	}
	return out
}

func inGroup(r thai.Grapheme, g thai.AlphabetGroup) bool {
	switch g {
	case thai.GroupConsonant, thai.GroupClass:
		return r.Type == thai.TypeConsonant
	case thai.GroupVowel:
		return r.Type == thai.TypeVowel
	case thai.GroupNumber:
		return r.Type == thai.TypeNumber
	case thai.GroupMark:
		return r.Type == thai.TypeMark
	case thai.GroupLiveDead:
		return r.Type == thai.TypeConsonant && r.IsLive != nil
	case thai.GroupLength:
		return r.Type == thai.TypeVowel && r.IsShort != nil
	}
	return false
}
