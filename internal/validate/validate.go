// Package validate decides, deterministically, whether raw model
// output contains a single SQL statement that is safe to execute
// against the configured schema. It is pure computation: no I/O, no
// shared state, fully unit-testable against (input, verdict) tables.
package validate

import (
	"fmt"
	"strings"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/schema"
)

type Options struct {
	// TablePrefix, when set, qualifies bare table names with a schema
	// namespace during normalization (e.g. SKILLS.users).
	TablePrefix string
}

// Verdict is the validator's allow/deny decision. NormalizedSQL is set
// only when Allowed; Kind and Reason only when denied.
type Verdict struct {
	Allowed       bool
	NormalizedSQL string
	Kind          fault.Kind
	Reason        string
}

// Err returns the denial as a fault error, or nil when allowed.
func (v Verdict) Err() error {
	if v.Allowed {
		return nil
	}
	return fault.New(v.Kind, "%s", v.Reason)
}

func deny(kind fault.Kind, format string, args ...any) Verdict {
	return Verdict{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the six-step pipeline in strict order, each step
// terminal on failure: extraction, single-statement enforcement, verb
// whitelist, disallowed construct scan, identifier check against the
// descriptor, and dialect normalization.
func Validate(raw string, desc *schema.Descriptor, opts Options) Verdict {
	statement := extract(raw)
	if statement == "" {
		return deny(fault.Extraction, "no SQL statement found in model output")
	}

	tokens := lex(statement)
	if len(tokens) == 0 {
		return deny(fault.Extraction, "no SQL statement found in model output")
	}

	// The leading verb is judged before statement counting so that a
	// write statement stacked ahead of a SELECT is reported as a write
	// attempt, not merely as statement stacking.
	if err := checkLeadingVerb(tokens); err != nil {
		return deny(fault.WriteStatement, "%s", err)
	}
	if err := checkSingleStatement(tokens); err != nil {
		return deny(fault.MultiStatement, "%s", err)
	}
	if err := checkWriteVerbs(tokens); err != nil {
		return deny(fault.WriteStatement, "%s", err)
	}
	if err := checkConstructs(tokens); err != nil {
		return deny(fault.UnsafeConstruct, "%s", err)
	}

	prefix := strings.ToLower(strings.TrimSpace(opts.TablePrefix))
	refs := collectReferences(tokens, desc, prefix)
	if err := checkIdentifiers(tokens, desc, refs, prefix); err != nil {
		return deny(fault.UnknownIdentifier, "%s", err)
	}

	return Verdict{
		Allowed:       true,
		NormalizedSQL: render(tokens, refs.tableUse, strings.TrimSpace(opts.TablePrefix)),
	}
}

// checkSingleStatement rejects statement stacking: any semicolon
// outside string literals that is followed by further tokens. A bare
// trailing semicolon is tolerated and stripped during normalization.
func checkSingleStatement(tokens []token) error {
	for i, tok := range tokens {
		if !tok.is(";") {
			continue
		}
		for _, rest := range tokens[i+1:] {
			if !rest.is(";") {
				return fmt.Errorf("multiple SQL statements are not allowed")
			}
		}
		return nil
	}
	return nil
}

// checkLeadingVerb enforces the whitelist: a statement must begin with
// SELECT, or with WITH whose read-only requirement checkWriteVerbs
// enforces separately.
func checkLeadingVerb(tokens []token) error {
	lead := ""
	for _, tok := range tokens {
		if tok.is("(") {
			continue
		}
		if tok.kind == tokenWord {
			lead = tok.lower()
		}
		break
	}
	if lead != "select" && lead != "with" {
		return fmt.Errorf("only SELECT statements are allowed, got leading keyword %q", lead)
	}
	return nil
}

// checkWriteVerbs rejects write keywords anywhere outside string
// literals. This closes the data-modifying CTE hole (WITH x AS
// (DELETE ...) SELECT ...).
func checkWriteVerbs(tokens []token) error {
	for _, tok := range tokens {
		if tok.kind != tokenWord {
			continue
		}
		if word := tok.lower(); word != "" {
			if _, bad := writeVerbs[word]; bad {
				return fmt.Errorf("statement contains write keyword %q", strings.ToUpper(word))
			}
		}
	}
	return nil
}

func checkConstructs(tokens []token) error {
	for _, tok := range tokens {
		if tok.kind != tokenWord {
			continue
		}
		word := tok.lower()
		if _, bad := unsafeConstructs[word]; bad {
			return fmt.Errorf("statement contains disallowed construct %q", strings.ToUpper(word))
		}
		if _, bad := unsafeFunctions[word]; bad {
			return fmt.Errorf("statement calls disallowed function %q", word)
		}
	}
	return nil
}

// references holds everything the identifier check learns about the
// statement before resolving individual names.
type references struct {
	aliasToTable map[string]string   // table alias -> table name (lower)
	derived      map[string]struct{} // CTE and subquery aliases
	outputs      map[string]struct{} // select-list output aliases
	tableUse     map[int]bool        // token index of a table in FROM/JOIN position -> already prefix-qualified
}

// fromTerminators end the table-listing part of a FROM clause at the
// current nesting depth.
var fromTerminators = wordSet(
	"where", "group", "order", "having", "limit", "offset", "fetch",
	"union", "except", "intersect", "on", "window", "qualify",
)

func collectReferences(tokens []token, desc *schema.Descriptor, prefix string) references {
	refs := references{
		aliasToTable: map[string]string{},
		derived:      map[string]struct{}{},
		outputs:      map[string]struct{}{},
		tableUse:     map[int]bool{},
	}

	depth := 0
	fromAt := map[int]bool{}
	expectTable := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.kind == tokenPunct {
			switch tok.text {
			case "(":
				depth++
				expectTable = false
			case ")":
				delete(fromAt, depth)
				depth--
				// derived table alias: ") AS name" or ") name"
				j := i + 1
				if j < len(tokens) && tokens[j].kind == tokenWord && tokens[j].lower() == "as" {
					j++
				}
				if j < len(tokens) && tokens[j].kind == tokenWord && !isKeyword(tokens[j].lower()) {
					refs.derived[tokens[j].lower()] = struct{}{}
				}
			case ",":
				if fromAt[depth] {
					expectTable = true
				}
			}
			continue
		}
		if tok.kind != tokenWord {
			continue
		}
		word := tok.lower()

		switch word {
		case "from", "join":
			fromAt[depth] = true
			expectTable = true
			continue
		case "as":
			continue
		}
		if _, terminal := fromTerminators[word]; terminal {
			delete(fromAt, depth)
			expectTable = false
			continue
		}

		// CTE name: WITH name AS ( ... ) or , name AS ( ... )
		if i+2 < len(tokens) && tokens[i+1].kind == tokenWord && tokens[i+1].lower() == "as" && tokens[i+2].is("(") {
			if !isKeyword(word) {
				refs.derived[word] = struct{}{}
			}
			continue
		}

		// output alias: expr AS name (subquery aliases handled at ")")
		if i > 0 && tokens[i-1].kind == tokenWord && tokens[i-1].lower() == "as" {
			if !isKeyword(word) && (i < 2 || !tokens[i-2].is(")")) {
				refs.outputs[word] = struct{}{}
			}
		}

		if expectTable {
			expectTable = false
			name := word
			nameIdx := i
			qualified := false
			if prefix != "" && word == prefix && i+2 < len(tokens) && tokens[i+1].is(".") && tokens[i+2].kind == tokenWord {
				name = tokens[i+2].lower()
				nameIdx = i + 2
				qualified = true
				i += 2
			}
			if desc.HasTable(name) {
				refs.tableUse[nameIdx] = qualified
				j := nameIdx + 1
				if j < len(tokens) && tokens[j].kind == tokenWord && tokens[j].lower() == "as" {
					j++
				}
				if j < len(tokens) && tokens[j].kind == tokenWord && !isKeyword(tokens[j].lower()) {
					refs.aliasToTable[tokens[j].lower()] = name
				}
			}
		}
	}
	return refs
}

func checkIdentifiers(tokens []token, desc *schema.Descriptor, refs references, prefix string) error {
	for i, tok := range tokens {
		if tok.kind != tokenWord {
			continue
		}
		word := tok.lower()
		if word == "" || isKeyword(word) {
			continue
		}

		var next, prev token
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}
		if i > 0 {
			prev = tokens[i-1]
		}

		// function call; hallucinated function names surface as
		// execution errors, not identifier errors
		if next.is("(") {
			continue
		}

		// column side of a qualified reference
		if prev.is(".") {
			qualifier := ""
			if i >= 2 && tokens[i-2].kind == tokenWord {
				qualifier = tokens[i-2].lower()
			}
			// prefix.table wins over an alias that shadows the prefix,
			// so re-validating normalized output stays stable
			if prefix != "" && qualifier == prefix && desc.HasTable(word) {
				continue
			}
			if table, ok := refs.aliasToTable[qualifier]; ok {
				if !desc.HasColumn(table, word) {
					return fmt.Errorf("unknown column %q on table %q", word, table)
				}
				continue
			}
			if desc.HasTable(qualifier) {
				if !desc.HasColumn(qualifier, word) {
					return fmt.Errorf("unknown column %q on table %q", word, qualifier)
				}
				continue
			}
			if _, ok := refs.derived[qualifier]; ok {
				if desc.HasAnyColumn(word) {
					continue
				}
				if _, ok := refs.outputs[word]; ok {
					continue
				}
				return fmt.Errorf("unknown column %q on derived table %q", word, qualifier)
			}
			if qualifier == prefix {
				if desc.HasTable(word) {
					continue
				}
				return fmt.Errorf("unknown table %q", word)
			}
			return fmt.Errorf("unknown table or alias %q", qualifier)
		}

		// qualifier side of a qualified reference
		if next.is(".") {
			if _, ok := refs.aliasToTable[word]; ok {
				continue
			}
			if desc.HasTable(word) {
				continue
			}
			if _, ok := refs.derived[word]; ok {
				continue
			}
			if word == prefix {
				continue
			}
			return fmt.Errorf("unknown table or alias %q", word)
		}

		if _, ok := refs.aliasToTable[word]; ok {
			continue
		}
		if _, ok := refs.derived[word]; ok {
			continue
		}
		if _, ok := refs.outputs[word]; ok {
			continue
		}
		if desc.HasTable(word) || desc.HasAnyColumn(word) {
			continue
		}
		return fmt.Errorf("unknown identifier %q", word)
	}
	return nil
}

// render rebuilds the statement from its tokens: whitespace collapsed,
// comments and trailing semicolons dropped, and table names qualified
// with the configured schema prefix.
func render(tokens []token, tableUse map[int]bool, prefix string) string {
	var b strings.Builder
	havePrev := false
	var prev token
	for i, tok := range tokens {
		if tok.is(";") {
			continue
		}
		text := tok.text
		if qualified, used := tableUse[i]; used && prefix != "" && !qualified {
			text = prefix + "." + text
		}
		if havePrev && needsSpace(prev, tok) {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		prev = tok
		havePrev = true
	}
	return b.String()
}

func needsSpace(prev, cur token) bool {
	if cur.kind == tokenPunct {
		switch cur.text {
		case ",", ")", ".", ";":
			return false
		case "(":
			if prev.kind == tokenWord && !prev.quoted && !isKeyword(prev.lower()) {
				return false
			}
		}
	}
	if prev.kind == tokenPunct {
		switch prev.text {
		case "(", ".":
			return false
		}
	}
	return true
}
