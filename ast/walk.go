package ast

// Walk traverses the tree rooted at n in depth-first source order,
// calling fn for each node. If fn returns false the node's children are
// skipped. Nil nodes are not visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch node := n.(type) {
	case *Program:
		for _, s := range node.Statements {
			Walk(s, fn)
		}
	case *QubitsDecl:
		Walk(node.Count, fn)
	case *Mapping:
		Walk(node.Target, fn)
		if node.Alias != nil {
			Walk(node.Alias, fn)
		}
	case *SubcircuitLabel:
		if node.Name != nil {
			Walk(node.Name, fn)
		}
		if node.Count != nil {
			Walk(node.Count, fn)
		}
	case *Instruction:
		if node.Name != nil {
			Walk(node.Name, fn)
		}
		for _, op := range node.Operands {
			Walk(op, fn)
		}
	case *Bundle:
		for _, item := range node.Items {
			Walk(item, fn)
		}
	case *IndexedRef:
		if node.Target != nil {
			Walk(node.Target, fn)
		}
		for _, item := range node.Indices {
			Walk(item, fn)
		}
	case *IndexItem:
		Walk(node.First, fn)
		if node.Last != nil {
			Walk(node.Last, fn)
		}
	}
}
