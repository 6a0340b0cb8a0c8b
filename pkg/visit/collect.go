package visit

// Collect returns every node reachable from root in pre-order. Nodes
// referenced more than once appear once per reference.
func Collect(root Node) ([]Node, error) {
	var nodes []Node
	err := Walk(root, Funcs{EnterFn: func(n Node) bool {
		nodes = append(nodes, n)
		return true
	}})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// Count returns the number of nodes Collect would return
func Count(root Node) (int, error) {
	count := 0
	err := Walk(root, Funcs{EnterFn: func(Node) bool {
		count++
		return true
	}})
	return count, err
}

// Unique returns the distinct nodes reachable from root in first-visit order
func Unique(root Node) ([]Node, error) {
	seen := make(map[Node]bool)
	var nodes []Node
	err := Walk(root, Funcs{EnterFn: func(n Node) bool {
		if seen[n] {
			return false
		}
		seen[n] = true
		nodes = append(nodes, n)
		return true
	}})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
