package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// Template grammar:
//
//	{{Name}}               scalar substitution, looked up through enclosing blocks
//	{{#name}} ... {{/name}} block repeated once per row of ctx.Blocks[name]
//	{{@comma}}             "," on every block row but the last
//
// A block tag alone on its line removes the whole line. A scalar tag preceded
// only by indentation repeats that indentation on every following line of a
// multi-line value.

const (
	openDelim  = "{{"
	closeDelim = "}}"
	commaTag   = "@comma"
)

var (
	// ErrTemplateSyntax indicates a malformed template.
	ErrTemplateSyntax = errors.New("template syntax error")
	// ErrUnknownPlaceholder indicates a tag with no value or block in the context.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
)

// Context is the data a template is rendered with.
type Context struct {
	// Values holds scalar substitutions.
	Values map[string]string
	// Blocks holds the rows of each repeatable region.
	Blocks map[string][]Context
}

type nodeKind int

const (
	textNode nodeKind = iota
	valueNode
	blockNode
	commaNode
)

type node struct {
	kind   nodeKind
	text   string // literal text, or the tag name
	indent string // indentation preceding a value tag
	body   []node
	line   int
}

// Render expands tmpl with ctx.
func Render(tmpl string, ctx Context) (string, error) {
	nodes, err := parse(tmpl)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	r := renderer{out: &b}
	if err := r.render(nodes, []Context{ctx}, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

func parse(src string) ([]node, error) {
	type frame struct {
		name  string
		line  int
		nodes []node
	}
	stack := []frame{{}}
	push := func(n node) {
		top := &stack[len(stack)-1]
		top.nodes = append(top.nodes, n)
	}

	pos := 0
	for {
		rel := strings.Index(src[pos:], openDelim)
		if rel < 0 {
			if pos < len(src) {
				push(node{kind: textNode, text: src[pos:]})
			}
			break
		}
		start := pos + rel
		line := strings.Count(src[:start], "\n") + 1
		relEnd := strings.Index(src[start+len(openDelim):], closeDelim)
		if relEnd < 0 {
			return nil, fmt.Errorf("%w: line %d: unterminated tag", ErrTemplateSyntax, line)
		}
		end := start + len(openDelim) + relEnd + len(closeDelim)
		tag := strings.TrimSpace(src[start+len(openDelim) : end-len(closeDelim)])
		if tag == "" {
			return nil, fmt.Errorf("%w: line %d: empty tag", ErrTemplateSyntax, line)
		}

		text := src[pos:start]
		lineStart := strings.LastIndexByte(src[:start], '\n') + 1
		prefix := ""
		if lineStart >= pos {
			prefix = src[lineStart:start]
		}
		indented := lineStart >= pos && isBlank(prefix)

		isSection := tag[0] == '#' || tag[0] == '/'
		if isSection && indented {
			lineEnd := strings.IndexByte(src[end:], '\n')
			suffix := src[end:]
			if lineEnd >= 0 {
				suffix = src[end : end+lineEnd]
			}
			if isBlank(suffix) {
				text = text[:len(text)-len(prefix)]
				if lineEnd >= 0 {
					end += lineEnd + 1
				} else {
					end = len(src)
				}
			}
		}
		if text != "" {
			push(node{kind: textNode, text: text})
		}

		switch {
		case tag[0] == '#':
			name := strings.TrimSpace(tag[1:])
			stack = append(stack, frame{name: name, line: line})
		case tag[0] == '/':
			name := strings.TrimSpace(tag[1:])
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: line %d: unexpected {{/%s}}", ErrTemplateSyntax, line, name)
			}
			top := stack[len(stack)-1]
			if top.name != name {
				return nil, fmt.Errorf("%w: line %d: {{/%s}} closes {{#%s}} opened on line %d",
					ErrTemplateSyntax, line, name, top.name, top.line)
			}
			stack = stack[:len(stack)-1]
			push(node{kind: blockNode, text: name, body: top.nodes, line: top.line})
		case tag == commaTag:
			push(node{kind: commaNode, line: line})
		default:
			n := node{kind: valueNode, text: tag, line: line}
			if indented {
				n.indent = prefix
			}
			push(n)
		}
		pos = end
	}

	if len(stack) != 1 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("%w: line %d: {{#%s}} is never closed", ErrTemplateSyntax, top.line, top.name)
	}
	return stack[0].nodes, nil
}

type loop struct {
	index, count int
}

type renderer struct {
	out *strings.Builder
}

// render writes nodes; scopes is the chain of contexts, innermost last.
func (r renderer) render(nodes []node, scopes []Context, l *loop) error {
	for _, n := range nodes {
		switch n.kind {
		case textNode:
			r.out.WriteString(n.text)
		case valueNode:
			v, ok := lookupValue(scopes, n.text)
			if !ok {
				return fmt.Errorf("%w: line %d: {{%s}}", ErrUnknownPlaceholder, n.line, n.text)
			}
			if n.indent != "" {
				v = strings.ReplaceAll(v, "\n", "\n"+n.indent)
			}
			r.out.WriteString(v)
		case commaNode:
			if l == nil {
				return fmt.Errorf("%w: line %d: {{%s}} outside a block", ErrTemplateSyntax, n.line, commaTag)
			}
			if l.index < l.count-1 {
				r.out.WriteString(",")
			}
		case blockNode:
			rows, ok := lookupBlock(scopes, n.text)
			if !ok {
				return fmt.Errorf("%w: line %d: {{#%s}}", ErrUnknownPlaceholder, n.line, n.text)
			}
			for i, row := range rows {
				inner := append(scopes[:len(scopes):len(scopes)], row)
				if err := r.render(n.body, inner, &loop{index: i, count: len(rows)}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func lookupValue(scopes []Context, name string) (string, bool) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if v, ok := scopes[i].Values[name]; ok {
			return v, true
		}
	}
	return "", false
}

func lookupBlock(scopes []Context, name string) ([]Context, bool) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if rows, ok := scopes[i].Blocks[name]; ok {
			return rows, true
		}
	}
	return nil, false
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t\r") == ""
}
