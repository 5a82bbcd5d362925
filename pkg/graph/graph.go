// Package graph models node-link diagrams and positions them with force,
// radial and hierarchical layouts.
package graph

import (
	"sort"
)

// Strength bounds for links. Strength feeds the force layout's target distance.
const (
	MinStrength     = 0.05
	MaxStrength     = 1.0
	DefaultStrength = 0.5
)

// Dangling reasons.
const (
	ReasonUnknownSource = "unknown source"
	ReasonUnknownTarget = "unknown target"
	ReasonSelfLink      = "self link"
)

// Node is one vertex of a diagram.
type Node struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Level    string            `json:"level"`
	Value    int               `json:"value"` // proficiency or score, 0-100
	Size     float64           `json:"size"`  // drawn radius
	Status   string            `json:"status,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Link is an undirected edge between two nodes.
type Link struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
}

// Dangling records a link dropped at construction.
type Dangling struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Graph is an immutable, validated node-link set.
type Graph struct {
	nodes    []Node
	index    map[string]int
	links    []Link
	adjacent [][]int // node index -> link indices
	dangling []Dangling
}

// New validates nodes and links. Duplicate or empty node ids are errors.
// Links whose endpoints are missing, and self links, are dropped and reported
// by Dangling. Repeated links between the same pair keep the strongest one.
// Strength is clamped to MinStrength..MaxStrength; zero means DefaultStrength.
func New(nodes []Node, links []Link) (g *Graph, err error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			err = newError(ErrInvalidNode, "node at index %d has empty id", i)
			return g, err
		}
		if _, exists := index[n.ID]; exists {
			err = newError(ErrDuplicateNode, "%s", n.ID)
			return g, err
		}
		index[n.ID] = i
	}

	g = &Graph{
		nodes:    append([]Node(nil), nodes...),
		index:    index,
		links:    make([]Link, 0, len(links)),
		adjacent: make([][]int, len(nodes)),
		dangling: make([]Dangling, 0),
	}

	pairs := make(map[[2]string]int, len(links))
	for _, l := range links {
		_, sourceOK := index[l.Source]
		_, targetOK := index[l.Target]

		switch {
		case !sourceOK:
			g.dangling = append(g.dangling, Dangling{Source: l.Source, Target: l.Target, Reason: ReasonUnknownSource})
			continue
		case !targetOK:
			g.dangling = append(g.dangling, Dangling{Source: l.Source, Target: l.Target, Reason: ReasonUnknownTarget})
			continue
		case l.Source == l.Target:
			g.dangling = append(g.dangling, Dangling{Source: l.Source, Target: l.Target, Reason: ReasonSelfLink})
			continue
		}

		l.Strength = clampStrength(l.Strength)

		key := pairKey(l.Source, l.Target)
		if existing, seen := pairs[key]; seen {
			if l.Strength > g.links[existing].Strength {
				g.links[existing].Strength = l.Strength
			}
			continue
		}

		pairs[key] = len(g.links)
		g.links = append(g.links, l)
	}

	for li, l := range g.links {
		s := index[l.Source]
		t := index[l.Target]
		g.adjacent[s] = append(g.adjacent[s], li)
		g.adjacent[t] = append(g.adjacent[t], li)
	}

	return g, err
}

// Len returns the number of nodes.
func (g *Graph) Len() (n int) {
	n = len(g.nodes)
	return n
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() (empty bool) {
	empty = len(g.nodes) == 0
	return empty
}

// Nodes returns a copy of the nodes in construction order.
func (g *Graph) Nodes() (nodes []Node) {
	nodes = append([]Node(nil), g.nodes...)
	return nodes
}

// Links returns a copy of the retained links.
func (g *Graph) Links() (links []Link) {
	links = append([]Link(nil), g.links...)
	return links
}

// Dangling returns the links dropped at construction.
func (g *Graph) Dangling() (dangling []Dangling) {
	dangling = append([]Dangling(nil), g.dangling...)
	return dangling
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (node Node, found bool) {
	i, found := g.index[id]
	if !found {
		return node, found
	}
	node = g.nodes[i]
	return node, found
}

// Degree returns the number of links touching id.
func (g *Graph) Degree(id string) (degree int) {
	i, found := g.index[id]
	if !found {
		return degree
	}
	degree = len(g.adjacent[i])
	return degree
}

// Neighbors returns the nodes linked to id, sorted by name.
func (g *Graph) Neighbors(id string) (neighbors []Node) {
	neighbors = make([]Node, 0)
	i, found := g.index[id]
	if !found {
		return neighbors
	}

	for _, li := range g.adjacent[i] {
		l := g.links[li]
		other := l.Target
		if other == id {
			other = l.Source
		}
		neighbors = append(neighbors, g.nodes[g.index[other]])
	}

	sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].Name < neighbors[b].Name })
	return neighbors
}

// Detail is the tooltip payload for a hovered node.
type Detail struct {
	Node      Node     `json:"node"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
	Links     []Link   `json:"links"`
}

// Detail returns the tooltip metadata for id.
func (g *Graph) Detail(id string) (detail Detail, err error) {
	i, found := g.index[id]
	if !found {
		err = newError(ErrUnknownNode, "%s", id)
		return detail, err
	}

	detail = Detail{
		Node:      g.nodes[i],
		Degree:    len(g.adjacent[i]),
		Neighbors: make([]string, 0, len(g.adjacent[i])),
		Links:     make([]Link, 0, len(g.adjacent[i])),
	}

	for _, n := range g.Neighbors(id) {
		detail.Neighbors = append(detail.Neighbors, n.Name)
	}
	for _, li := range g.adjacent[i] {
		detail.Links = append(detail.Links, g.links[li])
	}

	return detail, err
}

// Categories returns the distinct node categories, sorted.
func (g *Graph) Categories() (categories []string) {
	seen := map[string]bool{}
	categories = make([]string, 0)
	for _, n := range g.nodes {
		if !seen[n.Category] {
			seen[n.Category] = true
			categories = append(categories, n.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

func pairKey(a, b string) (key [2]string) {
	if a > b {
		a, b = b, a
	}
	key = [2]string{a, b}
	return key
}

func clampStrength(s float64) (clamped float64) {
	clamped = s
	if clamped == 0 {
		clamped = DefaultStrength
	}
	if clamped < MinStrength {
		clamped = MinStrength
	}
	if clamped > MaxStrength {
		clamped = MaxStrength
	}
	return clamped
}
