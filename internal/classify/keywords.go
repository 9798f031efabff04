package classify

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/linkminder/linkminder/internal/domain"
)

// DefaultKeywordMax is the standard cap for extracted keywords.
// The clusterer uses the tighter ClusterKeywordMax.
const (
	DefaultKeywordMax = 5
	ClusterKeywordMax = 4
)

// stopWords are dropped during tokenization: English function words,
// Korean particles and copula forms, and web boilerplate. The list is
// tuned for the mixed Korean/English pages the rule set targets.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "you": {}, "are": {}, "was": {}, "were": {}, "will": {},
	"have": {}, "has": {}, "had": {}, "your": {}, "into": {}, "about": {},
	"https": {}, "http": {}, "www": {}, "com": {}, "org": {}, "net": {},
	"co": {}, "kr": {}, "blog": {}, "html": {}, "amp": {}, "rt": {},
	"nbsp": {}, "of": {}, "in": {}, "to": {}, "a": {}, "on": {}, "at": {},
	"by": {}, "is": {}, "it": {}, "be": {}, "or": {}, "as": {}, "an": {},
	"we": {}, "if": {}, "so": {}, "but": {}, "can": {}, "do": {},
	"did": {}, "not": {}, "no": {}, "yes": {}, "use": {}, "using": {},
	"used": {}, "see": {}, "more": {}, "less": {},
	"한": {}, "이": {}, "가": {}, "은": {}, "는": {}, "을": {}, "를": {},
	"에": {}, "의": {}, "으로": {}, "에서": {}, "하다": {}, "있다": {},
	"없다": {}, "이다": {}, "하기": {}, "하는": {}, "했다": {}, "보기": {},
	"소개": {}, "정리": {},
}

// Tokenize splits text into significant lowercase tokens: the input is
// NFC-normalized, every rune that is not a letter, digit or whitespace
// is replaced by a space, whitespace runs split tokens, and tokens
// shorter than two runes or present in the stopword set are dropped.
func Tokenize(text string) []string {
	lowered := strings.ToLower(norm.NFC.String(text))

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, token := range fields {
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ExtractKeywords produces up to max deduplicated keywords from the
// candidate's title, description and selection text, ranked by
// combined frequency across the three fields. The page's own keyword
// hints are metadata only and do not feed the ranking. Equal
// frequencies are tie-broken by ascending lexicographic order so
// output is deterministic.
func ExtractKeywords(candidate domain.LinkCandidate, max int) []string {
	counts := make(map[string]int)
	order := make([]string, 0, 16)

	parts := []string{candidate.Title, candidate.Description, candidate.SelectionText}
	for _, part := range parts {
		for _, token := range Tokenize(part) {
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	if max >= 0 && len(order) > max {
		order = order[:max]
	}
	return order
}
