// Package filtergraph builds declarative ffmpeg filter graphs as typed
// nodes and serializes them to -filter_complex syntax only at the process
// boundary. Building graphs from typed parts instead of string concatenation
// keeps user-supplied payloads (subtitle text, paths) from being parsed as
// graph syntax.
package filtergraph

import (
	"strconv"
	"strings"
)

// Arg is a single filter argument. An empty Key produces a positional value.
type Arg struct {
	Key   string
	Value string
}

// String creates a text-valued argument. The value is escaped at
// serialization time so it can carry arbitrary user content.
func String(key, value string) Arg {
	return Arg{Key: key, Value: Escape(value)}
}

// Expr creates an argument whose value is an ffmpeg expression and is
// emitted verbatim. Only use with compile-time constant expressions.
func Expr(key, expr string) Arg {
	return Arg{Key: key, Value: expr}
}

// Int creates an integer-valued argument.
func Int(key string, v int) Arg {
	return Arg{Key: key, Value: strconv.Itoa(v)}
}

// Float creates a float-valued argument with minimal decimal formatting.
func Float(key string, v float64) Arg {
	return Arg{Key: key, Value: FormatFloat(v)}
}

// FormatFloat renders a float the way filter arguments expect: shortest
// decimal form, no exponent for the magnitudes a timeline produces.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filter is a single named filter with its arguments.
type Filter struct {
	Name string
	Args []Arg
}

// NewFilter creates a Filter.
func NewFilter(name string, args ...Arg) Filter {
	return Filter{Name: name, Args: args}
}

func (f Filter) serialize(sb *strings.Builder) {
	sb.WriteString(f.Name)
	for i, a := range f.Args {
		if i == 0 {
			sb.WriteByte('=')
		} else {
			sb.WriteByte(':')
		}
		if a.Key != "" {
			sb.WriteString(a.Key)
			sb.WriteByte('=')
		}
		sb.WriteString(a.Value)
	}
}

// Chain is a comma-joined sequence of filters sharing a linear data path,
// with labeled input and output pads. A source filter (color, testsrc) has
// no inputs.
type Chain struct {
	Inputs  []string
	Filters []Filter
	Outputs []string
}

// NewChain creates a chain with the given pad labels and filters.
func NewChain(inputs []string, outputs []string, filters ...Filter) Chain {
	return Chain{Inputs: inputs, Filters: filters, Outputs: outputs}
}

func (c Chain) serialize(sb *strings.Builder) {
	for _, in := range c.Inputs {
		sb.WriteByte('[')
		sb.WriteString(in)
		sb.WriteByte(']')
	}
	for i, f := range c.Filters {
		if i > 0 {
			sb.WriteByte(',')
		}
		f.serialize(sb)
	}
	for _, out := range c.Outputs {
		sb.WriteByte('[')
		sb.WriteString(out)
		sb.WriteByte(']')
	}
}

// String serializes a standalone chain, used for simple -af / -vf filter
// arguments that carry no pad labels.
func (c Chain) String() string {
	var sb strings.Builder
	c.serialize(&sb)
	return sb.String()
}

// Graph is an ordered list of chains. Order is meaningful: downstream
// consumers (concat in particular) read pads in declaration order.
type Graph struct {
	chains []Chain
}

// Add appends a chain to the graph.
func (g *Graph) Add(c Chain) {
	g.chains = append(g.chains, c)
}

// Len returns the number of chains in the graph.
func (g *Graph) Len() int {
	return len(g.chains)
}

// String serializes the graph to ffmpeg -filter_complex syntax.
func (g *Graph) String() string {
	var sb strings.Builder
	for i, c := range g.chains {
		if i > 0 {
			sb.WriteByte(';')
		}
		c.serialize(&sb)
	}
	return sb.String()
}

// escapeSet is the characters with meaning inside filter argument values or
// the surrounding graph syntax.
const escapeSet = `\':,;[]=`

// Escape backslash-escapes graph metacharacters so arbitrary text can be
// embedded in a filter argument value.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(escapeSet, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
