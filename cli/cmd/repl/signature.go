package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/minilang/lang/syntax"
)

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's argument list. It returns the function name, current
// argument index, and whether we're inside a call.
//
// Parentheses and commas are ASCII, so the scan works on bytes.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Scan backward from cursor to the unmatched opening paren, counting
	// the commas that separate arguments at its level.
	depth := 0
	argIndex := 0
	open := -1

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// Skip blanks between the name and '('.
	nameEnd := open
	for nameEnd > 0 && (input[nameEnd-1] == ' ' || input[nameEnd-1] == '\t') {
		nameEnd--
	}

	nameStart := nameEnd

	for nameStart > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:nameStart])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		nameStart -= size
	}

	name := input[nameStart:nameEnd]
	if name == "" || isKeywordOrNumber(name) {
		return functionCall{}
	}

	return functionCall{
		name:     name,
		argIndex: argIndex,
		inCall:   true,
	}
}

// isKeywordOrNumber reports whether name cannot be a function name.
func isKeywordOrNumber(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)

	return syntax.IsKeyword(name) || unicode.IsDigit(r)
}

// getSignature returns the signature of the session function named name and
// its parameter names. Returns empty string if the function is not defined.
func getSignature(s *Session, name string) (signature string, params []string) {
	params, ok := s.Signature(name)
	if !ok {
		return "", nil
	}

	return name + "(" + strings.Join(params, ", ") + ")", params
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	if signature == "" {
		return ""
	}

	openParen := strings.Index(signature, "(")
	if openParen == -1 {
		return signatureStyle.Render(signature)
	}

	funcName := signature[:openParen]

	if len(params) == 0 {
		return signatureNameStyle.Render(funcName) +
			signatureStyle.Render("()")
	}

	var b strings.Builder
	b.WriteString(signatureNameStyle.Render(funcName))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		if currentArgIdx == i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
