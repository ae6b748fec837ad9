// Package formula compiles and evaluates the small arithmetic language
// used by work-pattern definitions to express monthly operating hours.
//
// An expression combines numeric literals, the four arithmetic operators,
// parentheses, and two brace-delimited placeholders: {days} for working
// days in the month and {excl} for the pattern's monthly exclusion hours.
// The Japanese spellings {月間稼働日数} and {月除外時間} are accepted as
// aliases. Example: "{days} * 7.5 * 2 - {excl}".
package formula

import (
	"strconv"
	"strings"
	"unicode"

	perr "lineload/internal/platform/errors"
)

// Inputs carries the per-month values substituted into placeholders
type Inputs struct {
	Days           float64
	ExclusionHours float64
}

// Expr is a compiled expression, safe to evaluate repeatedly
type Expr struct {
	src  string
	root node
}

// Compile parses src into a reusable expression. Unknown placeholders,
// stray characters, and malformed arithmetic all return a formula error.
func Compile(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, perr.Formulaf("unexpected %q in formula %q", p.peek().text, src)
	}
	return &Expr{src: src, root: root}, nil
}

// Source returns the original expression text
func (e *Expr) Source() string { return e.src }

// Eval computes the expression for one month's inputs. Division by zero
// is a formula error rather than an Inf result.
func (e *Expr) Eval(in Inputs) (float64, error) {
	return e.root.eval(in, e.src)
}

// Eval is a convenience for one-shot use; prefer Compile when evaluating
// the same formula across many months.
func Eval(src string, in Inputs) (float64, error) {
	ex, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return ex.Eval(in)
}

type node interface {
	eval(in Inputs, src string) (float64, error)
}

type numNode float64

func (n numNode) eval(Inputs, string) (float64, error) { return float64(n), nil }

type placeholderKind int

const (
	phDays placeholderKind = iota
	phExclusion
)

type placeholderNode placeholderKind

func (n placeholderNode) eval(in Inputs, _ string) (float64, error) {
	if placeholderKind(n) == phDays {
		return in.Days, nil
	}
	return in.ExclusionHours, nil
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(in Inputs, src string) (float64, error) {
	l, err := n.left.eval(in, src)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(in, src)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	default:
		if r == 0 {
			return 0, perr.Formulaf("division by zero in formula %q", src)
		}
		return l / r, nil
	}
}

type negNode struct{ inner node }

func (n negNode) eval(in Inputs, src string) (float64, error) {
	v, err := n.inner.eval(in, src)
	return -v, err
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokPlaceholder
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	num  float64
	ph   placeholderKind
}

func lex(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case r == '{':
			end := i + 1
			for end < len(rs) && rs[end] != '}' {
				end++
			}
			if end == len(rs) {
				return nil, perr.Formulaf("unterminated placeholder in formula %q", src)
			}
			name := string(rs[i+1 : end])
			ph, ok := placeholderByName(name)
			if !ok {
				return nil, perr.Formulaf("unknown placeholder {%s} in formula %q", name, src)
			}
			toks = append(toks, token{kind: tokPlaceholder, text: "{" + name + "}", ph: ph})
			i = end + 1
		case r >= '0' && r <= '9' || r == '.':
			end := i
			for end < len(rs) && (rs[end] >= '0' && rs[end] <= '9' || rs[end] == '.') {
				end++
			}
			text := string(rs[i:end])
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, perr.Formulaf("bad number %q in formula %q", text, src)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: num})
			i = end
		default:
			return nil, perr.Formulaf("invalid character %q in formula %q", string(r), src)
		}
	}
	if len(toks) == 0 {
		return nil, perr.Formulaf("empty formula")
	}
	return toks, nil
}

func placeholderByName(name string) (placeholderKind, bool) {
	switch strings.TrimSpace(name) {
	case "days", "月間稼働日数":
		return phDays, true
	case "excl", "exclusion", "月除外時間":
		return phExclusion, true
	default:
		return 0, false
	}
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) done() bool  { return p.pos >= len(p.toks) }
func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for !p.done() && p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.advance().text[0]
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for !p.done() && p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.advance().text[0]
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if !p.done() && p.peek().kind == tokOp && p.peek().text == "-" {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negNode{inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (node, error) {
	if p.done() {
		return nil, perr.Formulaf("formula %q ends mid-expression", p.src)
	}
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return numNode(t.num), nil
	case tokPlaceholder:
		return placeholderNode(t.ph), nil
	case tokLParen:
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.done() || p.peek().kind != tokRParen {
			return nil, perr.Formulaf("missing closing parenthesis in formula %q", p.src)
		}
		p.advance()
		return inner, nil
	default:
		return nil, perr.Formulaf("unexpected %q in formula %q", t.text, p.src)
	}
}
