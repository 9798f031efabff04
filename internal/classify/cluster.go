package classify

import (
	"regexp"
	"strings"

	"github.com/linkminder/linkminder/internal/domain"
)

// clusterLabelSeparator joins the top keywords into a cluster label.
const clusterLabelSeparator = " · "

var clusterSlugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// buildClusterID derives a deterministic cluster id from the category
// and keyword set. Non-alphanumeric runs collapse to hyphens, so two
// different keyword sets can collide on the same slug; accepted as a
// known limitation.
func buildClusterID(category domain.Category, keywords []string) string {
	parts := make([]string, 0, len(keywords)+1)
	if category != "" {
		parts = append(parts, string(category))
	} else {
		parts = append(parts, "misc")
	}
	parts = append(parts, keywords...)

	base := strings.ToLower(strings.Join(parts, "-"))
	return clusterSlugPattern.ReplaceAllString("cluster-"+base, "-")
}

// AssignCluster places a freshly classified candidate into a topic
// cluster: the existing cluster (same category only) with the highest
// Jaccard similarity between keyword sets, or a new cluster when no
// similarity exceeds zero.
//
// Greedy online single pass: past links are never re-clustered, clusters
// only grow, and snapshots embedded in older records stay as they were.
// The scan requires strict improvement, so among equally similar
// clusters the first one seen wins; existing links arrive newest-first,
// which makes that the most recently created cluster.
func AssignCluster(candidate domain.LinkCandidate, category domain.Category, existing []*domain.LinkRecord) domain.Cluster {
	keywords := ExtractKeywords(candidate, ClusterKeywordMax)

	if len(keywords) == 0 {
		// Terminal no-match branch: the empty keyword set means this
		// cluster can never be joined by later links.
		label := string(category)
		if label == "" {
			label = string(domain.CategoryOther)
		}
		return domain.Cluster{
			ID:       buildClusterID(category, []string{"general"}),
			Label:    label,
			Keywords: []string{},
			Size:     0,
		}
	}

	if category == "" {
		category = domain.CategoryOther
	}

	var bestMatch *domain.Cluster
	bestScore := 0.0
	for _, link := range existing {
		if link.Category != category {
			continue
		}
		if link.Cluster == nil || len(link.Cluster.Keywords) == 0 {
			continue
		}
		score := jaccard(link.Cluster.Keywords, keywords)
		if score > bestScore {
			bestScore = score
			bestMatch = link.Cluster
		}
	}

	if bestMatch != nil && bestMatch.ID != "" {
		return domain.Cluster{
			ID:       bestMatch.ID,
			Label:    bestMatch.Label,
			Keywords: mergeKeywords(bestMatch.Keywords, keywords, ClusterKeywordMax),
			Size:     bestMatch.Size + 1,
		}
	}

	label := strings.Join(firstN(keywords, 2), clusterLabelSeparator)
	if label == "" {
		label = string(category)
	}
	return domain.Cluster{
		ID:       buildClusterID(category, keywords),
		Label:    label,
		Keywords: keywords,
		Size:     1,
	}
}

// jaccard computes |intersection| / |union| over two keyword sets.
func jaccard(a, b []string) float64 {
	inB := make(map[string]struct{}, len(b))
	for _, token := range b {
		inB[token] = struct{}{}
	}

	intersection := 0
	union := make(map[string]struct{}, len(a)+len(b))
	for _, token := range a {
		if _, ok := inB[token]; ok {
			intersection++
		}
		union[token] = struct{}{}
	}
	for _, token := range b {
		union[token] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// mergeKeywords unions two keyword lists, deduplicated in first-seen
// order, truncated to max.
func mergeKeywords(current, incoming []string, max int) []string {
	seen := make(map[string]struct{}, len(current)+len(incoming))
	merged := make([]string, 0, max)
	for _, token := range append(append([]string{}, current...), incoming...) {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		merged = append(merged, token)
		if len(merged) == max {
			break
		}
	}
	return merged
}

func firstN(tokens []string, n int) []string {
	if len(tokens) > n {
		return tokens[:n]
	}
	return tokens
}
