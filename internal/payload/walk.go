package payload

import "strconv"

// Visit describes one node reached during a walk.
type Visit struct {
	// Key is the mapping key or the sequence index of the node. Empty for the root.
	Key string

	// InMapping is true when Key is a mapping key rather than a sequence index.
	InMapping bool

	// Node is the visited node.
	Node *Node

	// Depth is 0 for the root.
	Depth int
}

// Walk visits every node of the tree in document order (pre-order).
// It uses an explicit stack, so depth is bounded only by memory.
func Walk(root *Node, fn func(Visit)) {
	if root == nil {
		return
	}
	stack := []Visit{{Node: root}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(v)

		n := v.Node
		switch n.Kind {
		case Mapping:
			for i := len(n.Entries) - 1; i >= 0; i-- {
				e := n.Entries[i]
				if e.Value == nil {
					continue
				}
				stack = append(stack, Visit{Key: e.Key, InMapping: true, Node: e.Value, Depth: v.Depth + 1})
			}
		case Sequence:
			for i := len(n.Items) - 1; i >= 0; i-- {
				if n.Items[i] == nil {
					continue
				}
				stack = append(stack, Visit{Key: strconv.Itoa(i), Node: n.Items[i], Depth: v.Depth + 1})
			}
		}
	}
}

// Leaves visits every non-container node below the root in document order.
func Leaves(root *Node, fn func(Visit)) {
	Walk(root, func(v Visit) {
		if v.Depth == 0 || v.Node.IsContainer() {
			return
		}
		fn(v)
	})
}
