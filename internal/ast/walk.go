package ast

// Walk traverses the AST in depth-first order, calling fn for each node.
// If fn returns false, the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *StatementBlock:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *FunctionPrototype:
		for _, p := range n.Params {
			Walk(p, fn)
		}

	case *FunctionDefinition:
		Walk(n.Prototype, fn)
		Walk(n.Body, fn)

	case *ReturnStatement:
		Walk(n.Value, fn)

	case *ForLoop:
		for _, id := range n.IDs {
			Walk(id, fn)
		}
		Walk(n.Iterable, fn)
		Walk(n.Body, fn)

	case *WhileLoop:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)

	case *Assignment:
		Walk(n.Value, fn)

	case *IfStatement:
		Walk(n.Condition, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)

	case *BinaryExpression:
		Walk(n.LHS, fn)
		Walk(n.RHS, fn)

	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Subscription:
		Walk(n.Base, fn)
		Walk(n.Index, fn)

	case *AttributeReference:
		Walk(n.Object, fn)
		Walk(n.Attribute, fn)

	case *IterableLiteral:
		for _, elem := range n.Elements {
			Walk(elem, fn)
		}

	case *Slice:
		Walk(n.Base, fn)
		Walk(n.Start, fn)
		Walk(n.Stop, fn)

	case *Set:
		for _, elem := range n.Elements {
			Walk(elem, fn)
		}

	case *Generator:
		Walk(n.Start, fn)
		Walk(n.Step, fn)
		Walk(n.Stop, fn)

	case *ListComprehension:
		Walk(n.Body, fn)
		for _, id := range n.IDs {
			Walk(id, fn)
		}
		Walk(n.Source, fn)
		Walk(n.Filter, fn)
	}
}

// Count returns the number of nodes reachable from node, node included.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}

// isNil reports whether node is nil, including a nil pointer held by the
// interface, such as an unset Else block.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *StatementBlock:
		return n == nil
	case *FunctionPrototype:
		return n == nil
	case *Parameter:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}
