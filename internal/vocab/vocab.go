// Package vocab normalizes free-text replies into canonical tokens.
//
// Matching follows the button-driven flows of the bot: a fixed, ordered list
// of phrase variants per question, matched by substring and case-sensitively,
// so the variant lists must be ordered to avoid ambiguous overlap. The first
// variant that matches wins.
package vocab

import (
	"strconv"
	"strings"
)

// Kind describes what kind of reply a dialog state expects.
type Kind int

const (
	// KindText accepts any non-empty reply verbatim.
	KindText Kind = iota
	// KindNumeric requires the entire reply to parse as an integer.
	KindNumeric
	// KindChoice matches the reply against an ordered variant list.
	KindChoice
)

// Entry maps one phrase variant to its canonical token.
type Entry struct {
	Variant string
	Token   string
}

// Spec declares the expected vocabulary for a single dialog state.
type Spec struct {
	Kind    Kind
	Entries []Entry
}

// Result tags the outcome of a classification.
type Result int

const (
	// Unrecognized means the reply did not fit the expected vocabulary.
	Unrecognized Result = iota
	// Matched means a variant matched; Token carries the canonical value.
	Matched
	// Numeric means the reply parsed as an integer; Number carries it.
	Numeric
)

// Classification is the outcome of classifying one reply.
type Classification struct {
	Result Result
	Token  string
	Number int
}

// Text builds a free-text spec.
func Text() Spec {
	return Spec{Kind: KindText}
}

// Integer builds a numeric spec.
func Integer() Spec {
	return Spec{Kind: KindNumeric}
}

// Choice builds a choice spec from an ordered variant list.
func Choice(entries ...Entry) Spec {
	return Spec{Kind: KindChoice, Entries: entries}
}

// YesNo returns the shared affirmative/negative variant list, including the
// Basque pair used alongside the Spanish one.
func YesNo(yesToken, noToken string) []Entry {
	return []Entry{
		{Variant: "Sí", Token: yesToken},
		{Variant: "Si", Token: yesToken},
		{Variant: "sí", Token: yesToken},
		{Variant: "si", Token: yesToken},
		{Variant: "Bai", Token: yesToken},
		{Variant: "bai", Token: yesToken},
		{Variant: "No", Token: noToken},
		{Variant: "no", Token: noToken},
		{Variant: "Ez", Token: noToken},
		{Variant: "ez", Token: noToken},
	}
}

// Classify reduces a raw reply to a classification against the given spec.
// It is a pure function with no side effects; a reply that does not fit is
// always Unrecognized, never an error.
func Classify(text string, spec Spec) Classification {
	switch spec.Kind {
	case KindNumeric:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return Classification{Result: Unrecognized}
		}
		return Classification{Result: Numeric, Number: n}

	case KindChoice:
		for _, e := range spec.Entries {
			if strings.Contains(text, e.Variant) {
				return Classification{Result: Matched, Token: e.Token}
			}
		}
		return Classification{Result: Unrecognized}

	default:
		if text == "" {
			return Classification{Result: Unrecognized}
		}
		return Classification{Result: Matched, Token: text}
	}
}
