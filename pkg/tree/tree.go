// Package tree assembles ordered forests out of flat, self-referencing
// record lists. The category tree and the comment tree share this code;
// each one supplies its own sibling ordering.
package tree

import "sort"

// Node is implemented by tree-shaped records. T is the concrete node
// type, typically a pointer to a domain struct.
type Node[T any] interface {
	TreeID() uint64
	TreeParentID() *uint64
	AddChild(T)
	TreeChildren() []T
}

// Build assembles an ordered forest from a flat slice. Wiring is done in
// one pass over an id map, so a whole subtree costs a single bulk query
// plus O(n log n) ordering. less orders siblings at every level; nodes
// whose parent is missing from the slice are treated as roots, which is
// what subtree views rely on.
func Build[T Node[T]](flat []T, less func(a, b T) bool) []T {
	byID := make(map[uint64]T, len(flat))
	for _, n := range flat {
		byID[n.TreeID()] = n
	}

	var roots []T
	for _, n := range flat {
		pid := n.TreeParentID()
		if pid == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[*pid]
		if !ok || *pid == n.TreeID() {
			roots = append(roots, n)
			continue
		}
		parent.AddChild(n)
	}

	sortForest(roots, less)
	return roots
}

// sortForest orders siblings recursively. TreeChildren shares its
// backing array with the node, so sorting in place is enough.
func sortForest[T Node[T]](nodes []T, less func(a, b T) bool) {
	if less == nil {
		return
	}
	sort.SliceStable(nodes, func(i, j int) bool { return less(nodes[i], nodes[j]) })
	for _, n := range nodes {
		sortForest(n.TreeChildren(), less)
	}
}

// Walk visits the forest in pre-order. visit returning false stops the
// traversal; Walk reports whether it ran to completion. Calling Walk
// again restarts from the top.
func Walk[T Node[T]](roots []T, visit func(node T, depth int) bool) bool {
	return walk(roots, 0, visit)
}

func walk[T Node[T]](nodes []T, depth int, visit func(node T, depth int) bool) bool {
	for _, n := range nodes {
		if !visit(n, depth) {
			return false
		}
		if !walk(n.TreeChildren(), depth+1, visit) {
			return false
		}
	}
	return true
}

// Flatten returns the forest as a pre-order slice.
func Flatten[T Node[T]](roots []T) []T {
	var out []T
	Walk(roots, func(n T, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// DescendantIDs collects the ids of node and everything below it.
func DescendantIDs[T Node[T]](node T) []uint64 {
	var ids []uint64
	Walk([]T{node}, func(n T, _ int) bool {
		ids = append(ids, n.TreeID())
		return true
	})
	return ids
}
