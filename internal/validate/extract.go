package validate

import "strings"

// narrationPrefixes mark lines of model prose that commonly surround
// the generated statement.
var narrationPrefixes = []string{
	"here", "the", "this", "note:", "explanation:", "answer:", "output:",
	"sure", "certainly", "below",
}

// extract isolates the first candidate SQL statement from raw model
// output. It prefers the content of the first fenced code block, drops
// narration lines, and cuts everything before the first SELECT or WITH
// keyword. Returns "" when no candidate is found.
func extract(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if fenced, ok := firstFence(text); ok {
		text = fenced
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "sql:") {
			line = strings.TrimSpace(line[4:])
			lower = strings.ToLower(line)
		}
		if isNarration(lower) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	// Cut leading prose that survived the line filter. The candidate
	// starts at the first statement-leading keyword, write verbs
	// included, so that a hostile statement preceding a SELECT is
	// judged rather than skipped.
	for _, tok := range lex(text) {
		if tok.kind != tokenWord {
			continue
		}
		if leadsStatement(tok.lower()) {
			return strings.TrimSpace(text[tok.start:])
		}
	}
	return ""
}

func leadsStatement(word string) bool {
	switch word {
	case "select", "with":
		return true
	}
	if _, ok := writeVerbs[word]; ok {
		return true
	}
	if _, ok := unsafeConstructs[word]; ok {
		return true
	}
	return false
}

func firstFence(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	rest := text[start+3:]
	// skip the optional language tag on the fence line
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || !strings.ContainsAny(tag, " \t") {
			rest = rest[nl+1:]
		}
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

func isNarration(lower string) bool {
	for _, prefix := range narrationPrefixes {
		if strings.HasPrefix(lower, prefix) {
			// "the" must be a whole word, not a column like "theme"
			if !strings.HasSuffix(prefix, ":") {
				rest := lower[len(prefix):]
				if rest != "" && rest[0] != ' ' && rest[0] != ',' {
					continue
				}
			}
			return true
		}
	}
	return false
}
