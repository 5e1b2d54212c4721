package syntax

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/minilang/log"
)

// Option configures a parse.
type Option func(*parser)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) { p.logger = logger }
}

// ParseReader parses a program read from r.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) ([]Stmt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses a program from source text.
func Parse(ctx context.Context, src string, opts ...Option) ([]Stmt, error) {
	p := &parser{
		input: []byte(src),
		line:  1,
		col:   1,
	}

	for _, opt := range opts {
		opt(p)
	}

	stmts, err := p.parseProgram(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("stmt_count", len(stmts)),
		slog.Int("line_count", p.line))

	return stmts, nil
}

var keywords = map[string]bool{
	"let":   true,
	"def":   true,
	"print": true,
	"if":    true,
	"then":  true,
	"else":  true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool { return keywords[s] }

// Keywords returns the reserved words.
func Keywords() []string {
	return []string{"let", "def", "print", "if", "then", "else"}
}

// parser holds the parser state.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	nest   int // open parentheses; newlines are insignificant inside
	logger log.Logger
}

// parseProgram parses newline-terminated statements until end of input.
func (p *parser) parseProgram(ctx context.Context) ([]Stmt, error) {
	stmts := make([]Stmt, 0)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p.skipBlankLines()

		if p.eof() {
			return stmts, nil
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)

		p.skipSpace()

		switch {
		case p.eof():
			return stmts, nil
		case p.peek() == '\n':
			p.advance()
		default:
			return nil, p.unexpected("end of line")
		}
	}
}

// parseStmt parses: "let" Name "=" Expr | "def" Name Params "=" Expr |
// "print" Expr.
func (p *parser) parseStmt() (Stmt, error) {
	pos := p.position()

	switch {
	case p.keyword("let"):
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		if err := p.expect('=', "="); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Binding{Name: name, Value: value, At: pos}, nil

	case p.keyword("def"):
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}

		if err := p.expect('=', "="); err != nil {
			return nil, err
		}

		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Define{Name: name, Params: params, Body: body, At: pos}, nil

	case p.keyword("print"):
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Print{Value: value, At: pos}, nil

	default:
		return nil, p.unexpected("let, def, or print")
	}
}

// parseParams parses: "(" [ Name { "," Name } [ "," ] ] ")".
func (p *parser) parseParams() ([]string, error) {
	p.skipSpace()

	if err := p.open(); err != nil {
		return nil, err
	}

	params := make([]string, 0)

	for {
		p.skipSpace()

		if p.peek() == ')' {
			break
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		params = append(params, name)

		p.skipSpace()

		if p.peek() != ',' {
			break
		}

		p.advance()
	}

	if err := p.close(); err != nil {
		return nil, err
	}

	return params, nil
}

// parseExpr parses: "if" Expr "then" Expr "else" Expr | Binary.
func (p *parser) parseExpr() (Expr, error) {
	p.skipSpace()

	pos := p.position()

	if !p.keyword("if") {
		return p.parseBinary(1)
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.keyword("then") {
		return nil, p.unexpected("then")
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.keyword("else") {
		return nil, p.unexpected("else")
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &If{Cond: cond, Then: then, Else: els, At: pos}, nil
}

// parseBinary parses left-associative binary operations whose operators bind
// at least as tightly as prec.
func (p *parser) parseBinary(prec int) (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()

		op, n, ok := p.peekOp()
		if !ok || op.precedence() < prec {
			return lhs, nil
		}

		for range n {
			p.advance()
		}

		rhs, err := p.parseBinary(op.precedence() + 1)
		if err != nil {
			return nil, err
		}

		lhs = &Operation{Op: op, LHS: lhs, RHS: rhs, At: lhs.Pos()}
	}
}

// parseUnary parses: ("-" | "+") Unary | Atom.
// A minus sign directly applied to a literal yields a negative literal.
func (p *parser) parseUnary() (Expr, error) {
	p.skipSpace()

	pos := p.position()

	switch p.peek() {
	case '-':
		p.advance()
		p.skipSpace()

		if isDigit(p.peek()) {
			return p.parseNumber(pos, true)
		}

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Operation{
			Op:  OpSub,
			LHS: &Value{Value: 0, At: pos},
			RHS: operand,
			At:  pos,
		}, nil

	case '+':
		p.advance()

		return p.parseUnary()

	default:
		return p.parseAtom()
	}
}

// parseAtom parses: Number | Name "(" Args ")" | Name | "(" Expr ")".
func (p *parser) parseAtom() (Expr, error) {
	pos := p.position()

	switch r := p.peek(); {
	case isDigit(r):
		return p.parseNumber(pos, false)

	case r == '(':
		if err := p.open(); err != nil {
			return nil, err
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		p.skipSpace()

		if err := p.close(); err != nil {
			return nil, err
		}

		return e, nil

	case isIdentStart(r):
		name := p.scanIdent()
		if IsKeyword(name) {
			return nil, ErrUnexpected.With(posAttrs(pos)...).With(
				slog.String("expected", "expression"),
				slog.String("found", "keyword "+name),
			)
		}

		// The argument list must follow the name immediately.
		if p.peek() != '(' {
			return &Variable{Name: name, At: pos}, nil
		}

		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		return &Call{Name: name, Args: args, At: pos}, nil

	default:
		return nil, p.unexpected("expression")
	}
}

// parseArgs parses: "(" [ Expr { "," Expr } [ "," ] ] ")".
func (p *parser) parseArgs() ([]Expr, error) {
	if err := p.open(); err != nil {
		return nil, err
	}

	args := make([]Expr, 0)

	for {
		p.skipSpace()

		if p.peek() == ')' {
			break
		}

		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipSpace()

		if p.peek() != ',' {
			break
		}

		p.advance()
	}

	if err := p.close(); err != nil {
		return nil, err
	}

	return args, nil
}

// parseNumber parses a decimal literal that must fit in 32 bits after the
// optional sign is applied.
func (p *parser) parseNumber(pos Pos, negative bool) (Expr, error) {
	start := p.pos

	for isDigit(p.peek()) {
		p.advance()
	}

	lit := string(p.input[start:p.pos])
	if negative {
		lit = "-" + lit
	}

	n, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		return nil, ErrLiteralRange.With(posAttrs(pos)...).
			With(slog.String("literal", lit))
	}

	return &Value{Value: int32(n), At: pos}, nil
}

// parseName parses an identifier that is not a keyword.
func (p *parser) parseName() (string, error) {
	p.skipSpace()

	pos := p.position()

	if !isIdentStart(p.peek()) {
		return "", p.unexpected("identifier")
	}

	name := p.scanIdent()
	if IsKeyword(name) {
		return "", ErrUnexpected.With(posAttrs(pos)...).With(
			slog.String("expected", "identifier"),
			slog.String("found", "keyword "+name),
		)
	}

	return name, nil
}

// peekOp returns the operator at the current position and its length.
func (p *parser) peekOp() (Op, int, bool) {
	if p.pos+1 < len(p.input) {
		switch string(p.input[p.pos : p.pos+2]) {
		case "==":
			return OpEq, 2, true
		case "!=":
			return OpNeq, 2, true
		case ">=", "=>":
			return OpGe, 2, true
		case "<=", "=<":
			return OpLe, 2, true
		}
	}

	switch p.peek() {
	case '+':
		return OpAdd, 1, true
	case '-':
		return OpSub, 1, true
	case '*':
		return OpMul, 1, true
	case '/':
		return OpDiv, 1, true
	case '%':
		return OpRem, 1, true
	case '>':
		return OpGt, 1, true
	case '<':
		return OpLt, 1, true
	}

	return 0, 0, false
}

// keyword consumes kw if it is the next word in the input.
func (p *parser) keyword(kw string) bool {
	p.skipSpace()

	end := p.pos + len(kw)
	if end > len(p.input) || string(p.input[p.pos:end]) != kw {
		return false
	}

	if end < len(p.input) {
		if r, _ := utf8.DecodeRune(p.input[end:]); isIdentPart(r) {
			return false
		}
	}

	for range kw {
		p.advance()
	}

	return true
}

// scanIdent consumes an identifier. The caller checks the first rune.
func (p *parser) scanIdent() string {
	start := p.pos

	for isIdentPart(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos])
}

// expect skips spaces and consumes r, or fails naming what was expected.
func (p *parser) expect(r rune, expected string) error {
	p.skipSpace()

	if p.peek() != r {
		return p.unexpected(expected)
	}

	p.advance()

	return nil
}

// open consumes "(" and enters a parenthesized region.
func (p *parser) open() error {
	if p.peek() != '(' {
		return p.unexpected("(")
	}

	p.advance()
	p.nest++

	return nil
}

// close consumes ")" and leaves a parenthesized region.
func (p *parser) close() error {
	if p.peek() != ')' {
		return p.unexpected(")")
	}

	p.advance()
	p.nest--

	return nil
}

// skipSpace skips blanks, comments, and line continuations. Newlines are
// skipped only inside parentheses.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch r := p.peek(); {
		case r == ' ' || r == '\t' || r == '\r':
			p.advance()

		case r == '\n' && p.nest > 0:
			p.advance()

		case r == '\\' && p.continuation():
			// consumed by continuation

		case r == '#' || (r == '/' && p.peekAt(1) == '/'):
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}

		default:
			return
		}
	}
}

// skipBlankLines skips spaces, comments, and empty lines between statements.
func (p *parser) skipBlankLines() {
	for {
		p.skipSpace()

		if p.eof() || p.peek() != '\n' {
			return
		}

		p.advance()
	}
}

// continuation consumes a backslash that ends a line, together with the
// newline that follows it.
func (p *parser) continuation() bool {
	i := p.pos + 1
	if i < len(p.input) && p.input[i] == '\r' {
		i++
	}

	if i >= len(p.input) || p.input[i] != '\n' {
		return false
	}

	for p.pos <= i {
		p.advance()
	}

	return true
}

// unexpected returns a parse error at the current position.
func (p *parser) unexpected(expected string) error {
	return ErrUnexpected.With(posAttrs(p.position())...).With(
		slog.String("expected", expected),
		slog.String("found", p.found()),
	)
}

// found describes the input at the current position for error messages.
func (p *parser) found() string {
	switch r := p.peek(); {
	case p.eof():
		return "end of input"
	case r == '\n':
		return "newline"
	case isIdentStart(r):
		end := p.pos
		for end < len(p.input) {
			c, n := utf8.DecodeRune(p.input[end:])
			if !isIdentPart(c) {
				break
			}

			end += n
		}

		return strconv.Quote(string(p.input[p.pos:end]))
	default:
		return strconv.QuoteRune(r)
	}
}

func (p *parser) position() Pos { return Pos{Line: p.line, Col: p.col} }

func (p *parser) eof() bool { return p.pos >= len(p.input) }

// peek returns the rune at the current position, or utf8.RuneError at end of
// input.
func (p *parser) peek() rune {
	if p.eof() {
		return utf8.RuneError
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

// peekAt returns the byte at offset n from the current position, or 0.
func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.input) {
		return 0
	}

	return p.input[p.pos+n]
}

// advance consumes one rune and updates the line and column.
func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])
	p.pos += size

	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }
