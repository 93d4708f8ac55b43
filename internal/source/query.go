// Package source fetches external market signals for a startup idea.
// Every adapter degrades to an error-as-data payload instead of
// returning an error: a missing signal must never abort a validation.
package source

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxQueryTerms caps the number of terms in a derived search phrase.
// Google Trends rejects long phrases, and shorter queries generalize
// better across sources.
const maxQueryTerms = 5

// stopWords are filler terms stripped from idea text before it becomes
// a search phrase.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"for": true, "to": true, "of": true, "in": true, "on": true,
	"with": true, "that": true, "this": true, "is": true, "are": true,
	"be": true, "by": true, "as": true, "at": true, "it": true,
	"app": true, "platform": true, "service": true, "using": true,
	"based": true, "helps": true, "help": true, "allows": true,
	"lets": true, "users": true, "people": true, "new": true,
	"my": true, "our": true, "your": true, "their": true,
	"would": true, "will": true, "can": true, "like": true,
}

var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeQuery derives a compact search phrase from free-form idea
// text: diacritics folded, punctuation dropped, stop words removed,
// and at most five significant terms kept in their original order.
func NormalizeQuery(idea string) string {
	folded, _, err := transform.String(stripDiacritics, idea)
	if err != nil {
		folded = idea
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	terms := make([]string, 0, maxQueryTerms)
	for _, term := range strings.Fields(b.String()) {
		if stopWords[term] || len(term) < 2 {
			continue
		}
		terms = append(terms, term)
		if len(terms) == maxQueryTerms {
			break
		}
	}

	// Everything was filler: fall back to the raw terms.
	if len(terms) == 0 {
		raw := strings.Fields(b.String())
		if len(raw) > maxQueryTerms {
			raw = raw[:maxQueryTerms]
		}
		return strings.Join(raw, " ")
	}

	return strings.Join(terms, " ")
}

// BroaderQuery reduces a normalized phrase to its first n terms, used
// by fallback passes when the full phrase returns nothing.
func BroaderQuery(phrase string, n int) string {
	terms := strings.Fields(phrase)
	if len(terms) <= n {
		return phrase
	}
	return strings.Join(terms[:n], " ")
}
