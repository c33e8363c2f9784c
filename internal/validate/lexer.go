package validate

import "strings"

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenString
	tokenNumber
	tokenPunct
)

// token carries the raw source text (quotes included for strings and
// quoted identifiers) plus byte offsets into the statement.
type token struct {
	kind   tokenKind
	text   string
	quoted bool
	start  int
	end    int
}

// lower returns the case-folded identifier value of a word token,
// without surrounding quotes.
func (t token) lower() string {
	if t.kind != tokenWord {
		return ""
	}
	if t.quoted {
		inner := strings.Trim(t.text, `"`)
		return strings.ToLower(strings.ReplaceAll(inner, `""`, `"`))
	}
	return strings.ToLower(t.text)
}

func (t token) is(text string) bool {
	return t.kind == tokenPunct && t.text == text
}

// lex splits a SQL statement into tokens. String literals (with ''
// escapes), double-quoted identifiers, and line/block comments are
// recognized so later checks never misread quoted content as syntax.
// Comments are dropped. The lexer is total: malformed trailing input
// is consumed as a final token rather than failing.
func lex(sqlText string) []token {
	var tokens []token
	i := 0
	n := len(sqlText)
	for i < n {
		c := sqlText[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '-' && i+1 < n && sqlText[i+1] == '-':
			for i < n && sqlText[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && sqlText[i+1] == '*':
			i += 2
			for i+1 < n && !(sqlText[i] == '*' && sqlText[i+1] == '/') {
				i++
			}
			i += 2
			if i > n {
				i = n
			}
		case c == '\'':
			start := i
			i++
			for i < n {
				if sqlText[i] == '\'' {
					if i+1 < n && sqlText[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			tokens = append(tokens, token{kind: tokenString, text: sqlText[start:i], start: start, end: i})
		case c == '"':
			start := i
			i++
			for i < n {
				if sqlText[i] == '"' {
					if i+1 < n && sqlText[i+1] == '"' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: sqlText[start:i], quoted: true, start: start, end: i})
		case isWordStart(c):
			start := i
			for i < n && isWordPart(sqlText[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: sqlText[start:i], start: start, end: i})
		case c >= '0' && c <= '9':
			start := i
			for i < n && (isWordPart(sqlText[i]) || sqlText[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: sqlText[start:i], start: start, end: i})
		default:
			start := i
			i++
			// greedy two-character operators
			if i < n {
				op := sqlText[start : i+1]
				switch op {
				case ">=", "<=", "<>", "!=", "||", "::":
					i++
				}
			}
			tokens = append(tokens, token{kind: tokenPunct, text: sqlText[start:i], start: start, end: i})
		}
	}
	return tokens
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9') || c == '$'
}
