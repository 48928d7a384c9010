package analyzers

// Set bundles the five analyzers behind one handle. The keyword
// automatons are built once at startup and shared; all methods are
// safe for concurrent use.
type Set struct {
	urgent     *keywordSet
	low        *keywordSet
	categories []categoryMatcher
}

type categoryMatcher struct {
	name     string
	keywords *keywordSet
}

func NewSet() (*Set, error) {
	urgent, err := newKeywordSet(urgentIndicators)
	if err != nil {
		return nil, err
	}
	low, err := newKeywordSet(lowIndicators)
	if err != nil {
		return nil, err
	}

	// Order matters: ties between categories resolve to the first one.
	matchers := make([]categoryMatcher, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		ks, err := newKeywordSet(categoryKeywords[name])
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, categoryMatcher{name: name, keywords: ks})
	}

	return &Set{urgent: urgent, low: low, categories: matchers}, nil
}
