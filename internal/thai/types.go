// Package thai provides the core types shared by the tone engine, the
// alphabet catalog and the user-facing surfaces.
package thai

// Class is the consonant class that governs the default tone of a syllable.
type Class string

const (
	ClassMid  Class = "mid"
	ClassHigh Class = "high"
	ClassLow  Class = "low"
)

// Valid reports whether c is one of the three consonant classes.
func (c Class) Valid() bool {
	switch c {
	case ClassMid, ClassHigh, ClassLow:
		return true
	}
	return false
}

// GraphemeType is the kind of a catalog record.
type GraphemeType string

const (
	TypeConsonant GraphemeType = "consonant"
	TypeVowel     GraphemeType = "vowel"
	TypeNumber    GraphemeType = "number"
	TypeMark      GraphemeType = "mark"
)

// Valid reports whether t is a known grapheme type.
func (t GraphemeType) Valid() bool {
	switch t {
	case TypeConsonant, TypeVowel, TypeNumber, TypeMark:
		return true
	}
	return false
}

// Grapheme is one record of the alphabet catalog. The character string is
// its identity.
type Grapheme struct {
	Character      string       `yaml:"character" json:"character"`
	Name           string       `yaml:"name" json:"name"`
	Class          Class        `yaml:"class,omitempty" json:"class,omitempty"` // consonants only
	Type           GraphemeType `yaml:"type" json:"type"`
	IsLive         *bool        `yaml:"is_live,omitempty" json:"is_live,omitempty"`
	IsShort        *bool        `yaml:"is_short,omitempty" json:"is_short,omitempty"`
	IPA            string       `yaml:"ipa,omitempty" json:"ipa,omitempty"`
	FinalConsonant string       `yaml:"final_consonant,omitempty" json:"final_consonant,omitempty"` // sound code when used as a final, e.g. "k", "ng"
	Example        string       `yaml:"example,omitempty" json:"example,omitempty"`
	ExampleEnglish string       `yaml:"example_english,omitempty" json:"example_english,omitempty"`
}

// Short reports whether the record is flagged as a short vowel.
func (g Grapheme) Short() bool {
	return g.IsShort != nil && *g.IsShort
}

// VowelLength is the effective length category of a syllable's vowel.
type VowelLength string

const (
	Short VowelLength = "short"
	Long  VowelLength = "long"
)

// Tone is a computed Thai tone label.
type Tone string

const (
	ToneMid     Tone = "Mid"
	ToneLow     Tone = "Low"
	ToneFalling Tone = "Falling"
	ToneHigh    Tone = "High"
	ToneRising  Tone = "Rising"
	ToneUnknown Tone = "Unknown"
)

// Confidence rates how far an analysis can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Severity orders confidences so that a stricter rating compares greater.
func (c Confidence) Severity() int {
	switch c {
	case ConfidenceMedium:
		return 1
	case ConfidenceLow:
		return 2
	}
	return 0
}

// Max returns the stricter of two confidences.
func Max(a, b Confidence) Confidence {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// Origin tells where the record behind a Sign came from.
type Origin string

const (
	OriginCatalog     Origin = "catalog"     // found in the caller's catalog
	OriginSynthesized Origin = "synthesized" // built by the engine, minimal fields only
)

// Sign fills the vowel and tone-mark slots of an analysis. A synthesized sign
// carries no catalog record, so callers must go through Record to get one.
type Sign struct {
	Origin    Origin    `yaml:"origin" json:"origin"`
	Character string    `yaml:"character" json:"character"`
	Name      string    `yaml:"name" json:"name"`
	IsShort   bool      `yaml:"is_short" json:"is_short"`
	record    *Grapheme // nil unless Origin == OriginCatalog
}

// Resolved wraps a catalog record.
func Resolved(g Grapheme) *Sign {
	return &Sign{
		Origin:    OriginCatalog,
		Character: g.Character,
		Name:      g.Name,
		IsShort:   g.Short(),
		record:    &g,
	}
}

// Synthesized builds a placeholder for a sign the catalog does not describe.
func Synthesized(character, name string, short bool) *Sign {
	return &Sign{
		Origin:    OriginSynthesized,
		Character: character,
		Name:      name,
		IsShort:   short,
	}
}

// Record returns the catalog record behind the sign, if there is one.
func (s *Sign) Record() (Grapheme, bool) {
	if s == nil || s.record == nil {
		return Grapheme{}, false
	}
	return *s.record, true
}

// IsSynthesized reports whether the sign was built by the engine.
func (s *Sign) IsSynthesized() bool {
	return s != nil && s.Origin == OriginSynthesized
}

// RuleStep is one structured entry of a derivation trail.
type RuleStep struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// ToneAnalysis is the result for one segmented syllable.
type ToneAnalysis struct {
	Syllable         string      `yaml:"syllable" json:"syllable"`
	InitialConsonant *Grapheme   `yaml:"initial_consonant,omitempty" json:"initial_consonant,omitempty"`
	Vowel            *Sign       `yaml:"vowel,omitempty" json:"vowel,omitempty"` // nil when no vowel is written
	FinalConsonant   *Grapheme   `yaml:"final_consonant,omitempty" json:"final_consonant,omitempty"`
	ToneMark         *Sign       `yaml:"tone_mark,omitempty" json:"tone_mark,omitempty"`
	ConsonantClass   Class       `yaml:"consonant_class,omitempty" json:"consonant_class,omitempty"` // empty when unresolved
	VowelLength      VowelLength `yaml:"vowel_length" json:"vowel_length"`
	IsLive           bool        `yaml:"is_live" json:"is_live"`
	Tone             Tone        `yaml:"tone" json:"tone"`
	Explanation      []string    `yaml:"explanation" json:"explanation"`
	RuleTrace        []RuleStep  `yaml:"rule_trace" json:"rule_trace"`
	Confidence       Confidence  `yaml:"confidence" json:"confidence"`
}

// AlphabetGroup selects a study slice of the catalog.
type AlphabetGroup string

const (
	GroupConsonant AlphabetGroup = "consonant"
	GroupVowel     AlphabetGroup = "vowel"
	GroupNumber    AlphabetGroup = "number"
	GroupMark      AlphabetGroup = "mark"
	GroupClass     AlphabetGroup = "class"     // consonants, studied by class
	GroupLiveDead  AlphabetGroup = "live_dead" // consonants that carry an is_live flag
	GroupLength    AlphabetGroup = "length"    // vowels that carry an is_short flag
)

// Groups lists every AlphabetGroup in display order.
var Groups = []AlphabetGroup{
	GroupConsonant, GroupVowel, GroupNumber, GroupMark,
	GroupClass, GroupLiveDead, GroupLength,
}
