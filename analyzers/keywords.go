// Package analyzers contains the five stateless heuristic analyzers.
// Each maps message text (plus an optional sender) to a structured
// partial verdict and is total: no input makes them fail.
package analyzers

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	apperrors "agent-lab/errors"
)

// keywordSet wraps an Aho-Corasick automaton over a fixed list of
// lowercase indicator phrases, so a whole indicator family is matched
// in a single pass over the message.
type keywordSet struct {
	matcher  *goahocorasick.Machine
	patterns int
}

func newKeywordSet(words []string) (*keywordSet, error) {
	if len(words) == 0 {
		return nil, apperrors.ErrEmptyWords
	}

	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = []rune(strings.ToLower(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &keywordSet{matcher: m, patterns: len(patterns)}, nil
}

// occurrences counts every match of every indicator in the text.
func (k *keywordSet) occurrences(text string) int {
	return len(k.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false))
}

// distinct counts how many different indicators appear at least once.
func (k *keywordSet) distinct(text string) int {
	seen := make(map[string]struct{})
	for _, term := range k.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false) {
		seen[string(term.Word)] = struct{}{}
	}
	return len(seen)
}

// containsAny reports whether any of the given plain substrings occurs
// in the lowered text. Used by the analyzers that only need a handful
// of indicators, where building an automaton would be overkill.
func containsAny(lowered string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// tokenize splits text into whitespace-delimited tokens, preserving
// punctuation so that token-equality checks stay strict.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}
