// Package prompt composes the generation prompt from the schema
// descriptor, a fixed set of curated question/SQL examples, and the
// user's question. Build is a pure function: identical inputs yield a
// byte-identical prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/askdb/askdb/internal/schema"
)

type Example struct {
	Question string
	SQL      string
}

const header = `You are an expert SQL developer. Convert the natural language request into a single executable SQL query against the schema below.

Rules:
- Return ONLY the SQL query. No markdown, no explanation, no comments.
- Use only SELECT statements. Never INSERT, UPDATE, DELETE, DROP, or any other modifying statement.
- Reference only the tables and columns listed in the schema. Do not invent names.
- Join tables through the foreign keys shown in the schema.
- Use table aliases when joining multiple tables.
- Limit potentially large result sets with FETCH FIRST n ROWS ONLY.`

// Build renders the full generation prompt.
func Build(desc *schema.Descriptor, examples []Example, question string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\nDATABASE SCHEMA:\n\n")
	b.WriteString(desc.Describe())
	b.WriteString("EXAMPLES:\n")
	for i, example := range examples {
		fmt.Fprintf(&b, "\nExample %d:\nQuery: %q\nSQL: %s\n", i+1, example.Question, example.SQL)
	}
	fmt.Fprintf(&b, "\nNatural Language Query:\n%s\n\nSQL Query:\n", strings.TrimSpace(question))
	return b.String()
}
