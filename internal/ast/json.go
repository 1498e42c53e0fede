package ast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToJSON renders node as indented JSON keyed by node kind. level is the
// starting indentation depth in tabs. The output depends only on the tree.
func ToJSON(node Node, level int) string {
	w := &jsonWriter{indent: "\t", level: level}
	w.writeValue(node)
	return w.b.String()
}

// ToJSON renders the whole program.
func (p *Program) ToJSON(level int) string {
	return ToJSON(p, level)
}

// field is one key of a node object. val is a Node, a []Node, a string,
// []string, float64, bool, or nil.
type field struct {
	key string
	val any
}

type jsonWriter struct {
	b      strings.Builder
	indent string   // Indentation string
	cache  []string // Cache of indentation strings
	level  int      // Current nesting level
}

func (w *jsonWriter) indentFor(level int) string {
	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		w.cache[level] = strings.Repeat(w.indent, level)
	}
	return w.cache[level]
}

func (w *jsonWriter) newline() {
	w.b.WriteByte('\n')
	w.b.WriteString(w.indentFor(w.level))
}

func (w *jsonWriter) writeQuoted(s string) {
	// json.Marshal on a string cannot fail.
	out, _ := json.Marshal(s)
	w.b.Write(out)
}

// writeLeaf renders {"Kind": value} on a single line.
func (w *jsonWriter) writeLeaf(kind string, val any) {
	w.b.WriteString("{")
	w.writeQuoted(kind)
	w.b.WriteString(": ")
	w.writeValue(val)
	w.b.WriteString("}")
}

// writeNode renders {"Kind": {fields...}}.
func (w *jsonWriter) writeNode(kind string, fields ...field) {
	w.b.WriteString("{")
	w.level++
	w.newline()
	w.writeQuoted(kind)
	w.b.WriteString(": {")
	w.level++
	for i, f := range fields {
		if i > 0 {
			w.b.WriteString(",")
		}
		w.newline()
		w.writeQuoted(f.key)
		w.b.WriteString(": ")
		w.writeValue(f.val)
	}
	w.level--
	if len(fields) > 0 {
		w.newline()
	}
	w.b.WriteString("}")
	w.level--
	w.newline()
	w.b.WriteString("}")
}

func (w *jsonWriter) writeArray(vals []any) {
	if len(vals) == 0 {
		w.b.WriteString("[]")
		return
	}
	w.b.WriteString("[")
	w.level++
	for i, v := range vals {
		if i > 0 {
			w.b.WriteString(",")
		}
		w.newline()
		w.writeValue(v)
	}
	w.level--
	w.newline()
	w.b.WriteString("]")
}

func (w *jsonWriter) writeValue(val any) {
	switch v := val.(type) {
	case nil:
		w.b.WriteString("null")
	case string:
		w.writeQuoted(v)
	case bool:
		w.b.WriteString(strconv.FormatBool(v))
	case float64:
		w.b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case []string:
		vals := make([]any, len(v))
		for i, s := range v {
			vals[i] = s
		}
		w.writeArray(vals)
	case []Node:
		vals := make([]any, len(v))
		for i, n := range v {
			vals[i] = n
		}
		w.writeArray(vals)
	case Node:
		if isNil(v) {
			w.b.WriteString("null")
			return
		}
		w.writeNodeValue(v)
	}
}

func (w *jsonWriter) writeNodeValue(node Node) {
	switch n := node.(type) {
	case *Program:
		w.writeNode("Program", field{"statements", stmtNodes(n.Statements)})
	case *StatementBlock:
		w.writeNode("StatementBlock", field{"statements", stmtNodes(n.Statements)})
	case *Parameter:
		w.writeNode("Parameter", field{"id", n.Name}, field{"type", n.Type})
	case *FunctionPrototype:
		params := make([]Node, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}
		w.writeNode("FunctionPrototype",
			field{"name", n.Name},
			field{"params", params},
			field{"return_type", n.ReturnType})
	case *FunctionDefinition:
		w.writeNode("FunctionDefinition", field{"proto", n.Prototype}, field{"body", n.Body})
	case *ReturnStatement:
		w.writeNode("ReturnStatement", field{"expr", n.Value})
	case *ForLoop:
		w.writeNode("ForLoop",
			field{"ids", identNodes(n.IDs)},
			field{"iterable", n.Iterable},
			field{"body", n.Body})
	case *WhileLoop:
		w.writeNode("WhileLoop", field{"condition", n.Condition}, field{"body", n.Body})
	case *Assignment:
		w.writeNode("Assignment",
			field{"id", n.Target},
			field{"type", n.Type},
			field{"expr", n.Value})
	case *IfStatement:
		w.writeNode("IfStatement",
			field{"condition", n.Condition},
			field{"ifblock", n.Then},
			field{"elseblock", n.Else})
	case *BinaryExpression:
		w.writeNode("BinaryExpression",
			field{"operator", n.Operator},
			field{"lhs", n.LHS},
			field{"rhs", n.RHS})
	case *FunctionCall:
		w.writeNode("FunctionCall", field{"name", n.Name}, field{"args", exprNodes(n.Args)})
	case *Identifier:
		w.writeLeaf("Identifier", n.Name)
	case *NumericLiteral:
		w.writeLeaf("NumericLiteral", n.Value)
	case *BooleanLiteral:
		w.writeLeaf("BooleanLiteral", n.Value)
	case *NullLiteral:
		w.writeLeaf("NullLiteral", nil)
	case *StringLiteral:
		w.writeLeaf("StringLiteral", n.Value)
	case *Subscription:
		w.writeNode("Subscription", field{"id", n.Base}, field{"index", n.Index})
	case *AttributeReference:
		w.writeNode("AttributeReference", field{"id", n.Object}, field{"attr", n.Attribute})
	case *IterableLiteral:
		w.writeNode("IterableLiteral", field{"elements", exprNodes(n.Elements)})
	case *Slice:
		w.writeNode("Slice",
			field{"id", n.Base},
			field{"start", optional(n.Start)},
			field{"stop", optional(n.Stop)})
	case *List:
		w.writeNode("List", field{"elements", n.Elements})
	case *Set:
		w.writeNode("Set",
			field{"elements", exprNodes(n.Elements)},
			field{"type", n.ElemType.String()})
	case *Generator:
		w.writeNode("Generator",
			field{"start", n.Start},
			field{"step", n.Step},
			field{"stop", n.Stop})
	case *ListComprehension:
		w.writeNode("ListComprehension",
			field{"expr", n.Body},
			field{"ids", identNodes(n.IDs)},
			field{"iterable", n.Source},
			field{"filter", n.Filter})
	default:
		w.b.WriteString("null")
	}
}

// optional keeps a nil Expr as an untyped nil so it renders as null.
func optional(e Expr) any {
	if e == nil {
		return nil
	}
	return e
}

func stmtNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func identNodes(ids []*Identifier) []Node {
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
