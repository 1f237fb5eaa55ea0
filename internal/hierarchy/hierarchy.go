// Package hierarchy turns flat parent-referencing records into a forest.
package hierarchy

import (
	"github.com/orgdesk/admin/internal/record"
)

// Node is one record in the forest.
type Node struct {
	ID       record.ID `json:"id"`
	Label    string    `json:"label"`
	Children []*Node   `json:"children"`
}

// Keys extracts the fields the builder needs from a record.
type Keys[T any] struct {
	ID     func(T) record.ID
	Parent func(T) record.ID
	Label  func(T) string
}

// Build returns the roots of the forest formed by items, in input order.
//
// A record whose parent is missing becomes a root. Records that form a
// parent cycle are not dropped: the member of each cycle that comes first in
// items becomes a root and the rest hang below it. Duplicate ids keep the
// first occurrence.
func Build[T any](items []T, keys Keys[T]) []*Node {
	index := make(map[record.ID]int, len(items))
	nodes := make([]*Node, len(items))
	parents := make([]int, len(items))

	for i, item := range items {
		id := keys.ID(item)
		nodes[i] = &Node{ID: id, Label: keys.Label(item), Children: []*Node{}}

		if _, dup := index[id]; !dup {
			index[id] = i
		}
	}

	for i, item := range items {
		parents[i] = -1

		pid := keys.Parent(item)
		if pid.IsZero() {
			continue
		}

		if p, ok := index[pid]; ok {
			parents[i] = p
		}
	}

	breakCycles(parents)

	roots := make([]*Node, 0)

	for i := range items {
		if index[nodes[i].ID] != i {
			continue
		}

		if p := parents[i]; p >= 0 {
			nodes[p].Children = append(nodes[p].Children, nodes[i])
			continue
		}

		roots = append(roots, nodes[i])
	}

	return roots
}

// breakCycles walks every parent chain once and detaches, in each cycle, the
// member with the lowest index.
func breakCycles(parents []int) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]int, len(parents))

	for start := range parents {
		if state[start] != unvisited {
			continue
		}

		var path []int

		cur := start
		for cur >= 0 && state[cur] == unvisited {
			state[cur] = visiting
			path = append(path, cur)
			cur = parents[cur]
		}

		if cur >= 0 && state[cur] == visiting {
			root := cur
			for i := len(path) - 1; path[i] != cur; i-- {
				root = min(root, path[i])
			}

			parents[root] = -1
		}

		for _, n := range path {
			state[n] = done
		}
	}
}

// Walk visits every node depth-first, passing its depth.
func Walk(roots []*Node, fn func(n *Node, depth int)) {
	var visit func(nodes []*Node, depth int)

	visit = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}

	visit(roots, 0)
}
