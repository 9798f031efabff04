package collection

import (
	"sort"

	"github.com/linkminder/linkminder/internal/domain"
)

// TreeGroup is one branch of a grouped listing.
type TreeGroup struct {
	Key   string               `json:"key"`
	Count int                  `json:"count"`
	Links []*domain.LinkRecord `json:"links"`
}

// GraphNode is one cluster in the relation graph.
type GraphNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Size     int      `json:"size"`
}

// GraphEdge ties a link to the cluster it was assigned to.
type GraphEdge struct {
	LinkID    string `json:"linkId"`
	ClusterID string `json:"clusterId"`
}

// Graph is the cluster relation view.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GroupBy distinguishes the tree views.
const (
	GroupByTag     = "tag"
	GroupByTime    = "time"
	GroupByDomain  = "domain"
	GroupByCluster = "cluster"
)

const (
	groupUntagged    = "untagged"
	groupNoDomain    = "unknown"
	groupUnclustered = "unclustered"
)

// Tree groups the scoped records into named branches. Tag grouping may
// place a record under several branches; the others partition. Branch
// keys are sorted; records inside a branch keep newest-first order.
func (c *Collection) Tree(scope Scope, by string) []TreeGroup {
	links := c.List(scope)
	groups := make(map[string][]*domain.LinkRecord)

	add := func(key string, link *domain.LinkRecord) {
		if key == "" {
			return
		}
		groups[key] = append(groups[key], link)
	}

	for _, link := range links {
		switch by {
		case GroupByTime:
			add(link.CreatedAt.Format("2006-01-02"), link)
		case GroupByDomain:
			key := link.Meta.Domain
			if key == "" {
				key = groupNoDomain
			}
			add(key, link)
		case GroupByCluster:
			if link.Cluster != nil && link.Cluster.Label != "" {
				add(link.Cluster.Label, link)
			} else {
				add(groupUnclustered, link)
			}
		default:
			if len(link.Tags) == 0 {
				add(groupUntagged, link)
				continue
			}
			for _, tag := range link.Tags {
				add(tag, link)
			}
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]TreeGroup, 0, len(keys))
	for _, key := range keys {
		out = append(out, TreeGroup{Key: key, Count: len(groups[key]), Links: groups[key]})
	}
	return out
}

// ClusterGraph builds the cluster relation view for a scope. Node sizes
// count the records actually present in the scope, not the stored
// cluster size; a cluster grown by private saves should not leak its
// true size into the public view.
func (c *Collection) ClusterGraph(scope Scope) *Graph {
	links := c.List(scope)

	nodes := make(map[string]*GraphNode)
	order := make([]string, 0)
	edges := make([]GraphEdge, 0, len(links))

	for _, link := range links {
		if link.Cluster == nil || link.Cluster.ID == "" {
			continue
		}
		node, ok := nodes[link.Cluster.ID]
		if !ok {
			node = &GraphNode{
				ID:       link.Cluster.ID,
				Label:    link.Cluster.Label,
				Category: string(link.Category),
				Keywords: link.Cluster.Keywords,
				Size:     0,
			}
			nodes[link.Cluster.ID] = node
			order = append(order, link.Cluster.ID)
		}
		node.Size++
		edges = append(edges, GraphEdge{LinkID: link.ID, ClusterID: link.Cluster.ID})
	}

	graph := &Graph{Nodes: make([]GraphNode, 0, len(order)), Edges: edges}
	for _, id := range order {
		graph.Nodes = append(graph.Nodes, *nodes[id])
	}
	return graph
}

// Stats summarizes the collection for the dashboard endpoint.
type Stats struct {
	Total      int            `json:"total"`
	Archived   int            `json:"archived"`
	Private    int            `json:"private"`
	Categories map[string]int `json:"categories"`
	Clusters   int            `json:"clusters"`
	Rules      int            `json:"rules"`
}

// Summarize computes collection-wide counters over all records.
func (c *Collection) Summarize() *Stats {
	stats := &Stats{Categories: make(map[string]int)}
	clusters := make(map[string]struct{})
	for _, link := range c.idx.Links() {
		stats.Total++
		if link.Archived {
			stats.Archived++
		}
		if link.Private {
			stats.Private++
		}
		stats.Categories[string(link.Category)]++
		if link.Cluster != nil && link.Cluster.ID != "" {
			clusters[link.Cluster.ID] = struct{}{}
		}
	}
	stats.Clusters = len(clusters)
	stats.Rules = c.idx.RuleCount()
	return stats
}
