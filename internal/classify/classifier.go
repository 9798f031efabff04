package classify

import (
	"regexp"
	"strings"

	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/logger"
)

// Version is the classifier schema version. It is stamped on every
// result and persisted with each record; bump it whenever scoring
// semantics change so stored records become eligible for
// re-classification.
const Version = 1

const (
	// Matcher weights. Independent signals, additive: every matcher
	// that fires contributes.
	ScoreHostMatch    = 3
	ScorePathMatch    = 2
	ScoreKeywordMatch = 2
	ScoreRegexMatch   = 4

	// Confidence is derived from the winning score:
	// min(1, ConfidenceBase + score*ConfidencePerPoint).
	ConfidenceBase     = 0.2
	ConfidencePerPoint = 0.15
)

// Result is the outcome of classifying one link candidate.
type Result struct {
	Category domain.Category

	Tags []string

	// Confidence is in [0,1], monotonic in the winning rule's score.
	Confidence float64

	// RuleID names the winning rule; nil means a fallback heuristic
	// produced the result.
	RuleID *string

	// Version is the classifier schema version the result was computed
	// under.
	Version int

	// Evidence names the matchers that fired, for debugging and the
	// record inspector. Never parsed back.
	Evidence []string
}

// Classifier scores link candidates against user rules followed by the
// built-in defaults and falls back to coarse URL/text heuristics when
// nothing matches. Pure and synchronous; the only side effect is a
// warning log for unparseable rule regexes.
type Classifier struct {
	log logger.Logger
}

func NewClassifier(log logger.Logger) *Classifier {
	return &Classifier{log: log}
}

// Classify picks the single highest-scoring rule across customRules
// followed by DefaultRules. Scoring is cumulative per rule; ties keep
// the first-encountered rule, so user rules beat defaults on equal
// score and earlier-declared rules beat later ones. A rule scoring zero
// is never considered, even if it is the only rule.
func (c *Classifier) Classify(candidate domain.LinkCandidate, customRules []domain.Rule) Result {
	type best struct {
		score    int
		rule     *domain.Rule
		evidence []string
	}

	var winner *best
	for _, list := range [][]domain.Rule{customRules, DefaultRules} {
		for i := range list {
			rule := &list[i]
			score, evidence := c.scoreRule(rule, candidate)
			if score <= 0 {
				continue
			}
			if winner == nil || score > winner.score {
				winner = &best{score: score, rule: rule, evidence: evidence}
			}
		}
	}

	if winner != nil {
		confidence := ConfidenceBase + float64(winner.score)*ConfidencePerPoint
		if confidence > 1 {
			confidence = 1
		}
		tags := winner.rule.Tags
		if tags == nil {
			tags = []string{}
		}
		ruleID := winner.rule.ID
		return Result{
			Category:   winner.rule.Category,
			Tags:       tags,
			Confidence: confidence,
			RuleID:     &ruleID,
			Version:    Version,
			Evidence:   winner.evidence,
		}
	}

	return applyFallbacks(candidate)
}

// scoreRule computes the cumulative score and evidence for one rule.
// Malformed URLs degrade to empty host/path rather than failing, so a
// candidate with an unparseable URL can still match on keywords or
// regex.
func (c *Classifier) scoreRule(rule *domain.Rule, candidate domain.LinkCandidate) (int, []string) {
	score := 0
	var evidence []string

	host := domain.HostOf(candidate.URL)
	path := domain.PathOf(candidate.URL)
	bodyText := strings.ToLower(candidate.Title + " " + candidate.Description + " " + candidate.SelectionText)

	if len(rule.HostIncludes) > 0 {
		for _, fragment := range rule.HostIncludes {
			if strings.Contains(host, strings.ToLower(fragment)) {
				score += ScoreHostMatch
				evidence = append(evidence, "domain:"+strings.Join(rule.HostIncludes, ","))
				break
			}
		}
	}

	if len(rule.PathIncludes) > 0 {
		for _, fragment := range rule.PathIncludes {
			if strings.Contains(path, fragment) {
				score += ScorePathMatch
				evidence = append(evidence, "path:"+strings.Join(rule.PathIncludes, ","))
				break
			}
		}
	}

	if len(rule.Keywords) > 0 {
		for _, keyword := range rule.Keywords {
			if strings.Contains(bodyText, strings.ToLower(keyword)) {
				score += ScoreKeywordMatch
				evidence = append(evidence, "keyword:"+strings.Join(rule.Keywords, ","))
				break
			}
		}
	}

	if rule.Regex != "" {
		matcher, err := regexp.Compile("(?i)" + rule.Regex)
		if err != nil {
			c.log.Warnf("invalid rule regex %q (rule %s): %v", rule.Regex, rule.ID, err)
		} else if matcher.MatchString(candidate.URL) {
			score += ScoreRegexMatch
			evidence = append(evidence, "regex:"+rule.Regex)
		}
	}

	return score, evidence
}

// applyFallbacks runs the coarse heuristics in fixed priority order,
// stopping at the first match.
func applyFallbacks(candidate domain.LinkCandidate) Result {
	url := strings.ToLower(candidate.URL)
	text := strings.ToLower(candidate.Title + " " + candidate.Description + " " + candidate.SelectionText)

	switch {
	case strings.Contains(url, "blog") || strings.Contains(text, "blog"):
		return fallbackResult(domain.CategoryDocument, []string{"blog"}, 0.3, "fallback:blog")
	case strings.Contains(url, "youtube") || strings.Contains(url, "vimeo") || strings.Contains(url, "video"):
		return fallbackResult(domain.CategoryVideo, []string{"video"}, 0.35, "fallback:video")
	case strings.Contains(url, "news") || strings.Contains(text, "breaking news"):
		return fallbackResult(domain.CategoryNews, []string{"news"}, 0.3, "fallback:news")
	default:
		return fallbackResult(domain.CategoryOther, []string{}, 0.1, "fallback:default")
	}
}

func fallbackResult(category domain.Category, tags []string, confidence float64, evidence string) Result {
	return Result{
		Category:   category.OrDefault(),
		Tags:       tags,
		Confidence: confidence,
		RuleID:     nil,
		Version:    Version,
		Evidence:   []string{evidence},
	}
}
