package eval

import (
	"github.com/quarkw/constfit/schema"
)

// AST node types. The tree is evaluated node-by-node in eval.go; nothing
// here executes during parsing.
type (
	node interface{ position() int }

	numberNode struct {
		lit string
		pos int
	}

	identNode struct {
		name string
		pos  int
	}

	callNode struct {
		fn  string
		arg node
		pos int
	}

	unaryNode struct {
		negate  bool
		operand node
		pos     int
	}

	binaryNode struct {
		op          tokenKind
		left, right node
		pos         int
	}
)

func (n *numberNode) position() int { return n.pos }
func (n *identNode) position() int  { return n.pos }
func (n *callNode) position() int   { return n.pos }
func (n *unaryNode) position() int  { return n.pos }
func (n *binaryNode) position() int { return n.pos }

// parser is a recursive-descent parser over the closed token set.
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = [ "+" | "-" ] power
//	power  = atom [ "^" unary ]          (right-associative)
//	atom   = NUMBER | IDENT | IDENT "(" expr ")" | "(" expr ")"
type parser struct {
	toks []token
	pos  int
}

// parse turns expr into an AST or a ParseError.
func parse(expr string) (node, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, schema.NewEvalError(schema.ParseError,
			"unexpected %s %q at position %d", tok.kind, tok.text, tok.pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return tok, schema.NewEvalError(schema.ParseError,
			"expected %s but found %s at position %d", kind, tok.kind, tok.pos)
	}
	return p.next(), nil
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right, pos: tok.pos}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right, pos: tok.pos}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind == tokPlus || tok.kind == tokMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokPlus {
			return operand, nil
		}
		return &unaryNode{negate: true, operand: operand, pos: tok.pos}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	tok := p.next()
	// Right-associative: 2^3^2 parses as 2^(3^2). The exponent may carry
	// its own unary sign, e.g. 2^-3.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: tokCaret, left: base, right: exp, pos: tok.pos}, nil
}

func (p *parser) parseAtom() (node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber:
		p.next()
		return &numberNode{lit: tok.text, pos: tok.pos}, nil
	case tokIdent:
		p.next()
		if p.peek().kind != tokLParen {
			return &identNode{name: tok.text, pos: tok.pos}, nil
		}
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &callNode{fn: tok.text, arg: arg, pos: tok.pos}, nil
	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, schema.NewEvalError(schema.ParseError,
			"unexpected %s at position %d", tok.kind, tok.pos)
	}
}
