package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrResourceCycle is returned when a dependency cycle between
	// resources is found. It always indicates a misconfiguration: a
	// script or stylesheet ends up having to load after itself, through
	// the After lists or the order Components list their resources in.
	ErrResourceCycle = errors.New("resource cycle detected")
)

type resource interface {
	resourceKey() string
	resourceAfter() []string
	implicitOrder() bool
}

// graph is a directed acyclic graph of resources. It's used to ensure
// ordering constraints of CSS and JS assets are met.
type graph[Node resource] struct {
	// nodes holds the nodes in the graph.
	nodes []Node

	// edgesTo holds graph edges, keyed by the position of the node the
	// edges point to.
	//
	// nodes point to their dependencies and dependencies are always
	// walked first; i.e., if there's a node 1 and a node 2, and an edge
	// from 1->2, 2 will always appear before 1 when walking the graph.
	edgesTo map[int]map[int]struct{}

	// edgesFrom holds graph edges, keyed by the position of the node the
	// edges point from.
	edgesFrom map[int]map[int]struct{}
}

func (g *graph[Node]) addEdge(from, to int) {
	if from == to {
		return
	}
	if g.edgesFrom[from] == nil {
		g.edgesFrom[from] = map[int]struct{}{}
	}
	if g.edgesTo[to] == nil {
		g.edgesTo[to] = map[int]struct{}{}
	}
	g.edgesFrom[from][to] = struct{}{}
	g.edgesTo[to][from] = struct{}{}
}

// buildGraph creates a graph containing the resources of every Component, one
// slice per Component, with all their dependencies computed.
//
// Each Component's resources have an implicit dependency on the resource the
// Component listed before them, so their order within the slice is
// preserved when rendering them. Resources that appear more than once are
// only included the first time.
func buildGraph[Node resource](components [][]Node) graph[Node] {
	result := graph[Node]{
		edgesTo:   map[int]map[int]struct{}{},
		edgesFrom: map[int]map[int]struct{}{},
	}
	positions := map[string]int{}
	for _, resources := range components {
		last := -1
		for _, res := range resources {
			thisNode, ok := positions[res.resourceKey()]
			if !ok {
				result.nodes = append(result.nodes, res)
				thisNode = len(result.nodes) - 1
				positions[res.resourceKey()] = thisNode
			}
			if last >= 0 && res.implicitOrder() {
				result.addEdge(thisNode, last)
			}
			last = thisNode
		}
	}
	for pos, node := range result.nodes {
		for _, dep := range node.resourceAfter() {
			depPos, ok := positions[dep]
			if !ok {
				// not on this page, nothing to wait for
				continue
			}
			result.addEdge(pos, depPos)
		}
	}
	return result
}

// walkGraph returns the nodes of the graph with every node after the nodes
// it depends on. Nodes that are free to go in any order are sorted by their
// key, so the output is stable.
func walkGraph[Node resource](_ context.Context, resources graph[Node]) ([]Node, error) {
	byKey := func(a, b int) int {
		return strings.Compare(resources.nodes[a].resourceKey(), resources.nodes[b].resourceKey())
	}
	noParents := make([]int, 0, len(resources.nodes))
	results := make([]Node, 0, len(resources.nodes))
	for pos := range resources.nodes {
		if len(resources.edgesFrom[pos]) < 1 {
			noParents = append(noParents, pos)
		}
	}
	slices.SortFunc(noParents, byKey)
	for len(noParents) > 0 {
		pos := noParents[0]
		noParents = noParents[1:]
		results = append(results, resources.nodes[pos])
		var noParentsChanged bool
		for child := range resources.edgesTo[pos] {
			delete(resources.edgesFrom[child], pos)
			if len(resources.edgesFrom[child]) < 1 {
				delete(resources.edgesFrom, child)
				noParents = append(noParents, child)
				noParentsChanged = true
			}
		}
		delete(resources.edgesTo, pos)
		if noParentsChanged {
			slices.SortFunc(noParents, byKey)
		}
	}
	if len(resources.edgesFrom) > 0 {
		var stuck []string
		for pos := range resources.edgesFrom {
			stuck = append(stuck, resources.nodes[pos].resourceKey())
		}
		slices.Sort(stuck)
		return results, fmt.Errorf("%w: resources=[%s]", ErrResourceCycle, strings.Join(stuck, ", "))
	}
	return results, nil
}
