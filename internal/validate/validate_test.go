package validate

import (
	"strings"
	"testing"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/schema"
)

func TestValidateAllowsAndNormalizes(t *testing.T) {
	desc := schema.SkillsProfile()
	opts := Options{TablePrefix: "SKILLS"}

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fenced statement with trailing semicolon",
			raw:  "```sql\nSELECT user_name, email FROM users WHERE is_active = TRUE;\n```",
			want: "SELECT user_name, email FROM SKILLS.users WHERE is_active = TRUE",
		},
		{
			name: "narration before statement",
			raw:  "Here is the query you asked for:\nSELECT email FROM users",
			want: "SELECT email FROM SKILLS.users",
		},
		{
			name: "aliased join",
			raw:  "SELECT u.user_name, e.assessment_level FROM users u JOIN user_product_expertise e ON u.user_id = e.user_id",
			want: "SELECT u.user_name, e.assessment_level FROM SKILLS.users u JOIN SKILLS.user_product_expertise e ON u.user_id = e.user_id",
		},
		{
			name: "read-only cte",
			raw:  "WITH active AS (SELECT user_id FROM users WHERE is_active = TRUE) SELECT user_id FROM active",
			want: "WITH active AS (SELECT user_id FROM SKILLS.users WHERE is_active = TRUE) SELECT user_id FROM active",
		},
		{
			name: "semicolon inside string literal",
			raw:  "SELECT user_name FROM users WHERE user_name = 'a;b'",
			want: "SELECT user_name FROM SKILLS.users WHERE user_name = 'a;b'",
		},
		{
			name: "line comment dropped",
			raw:  "SELECT email FROM users -- all users",
			want: "SELECT email FROM SKILLS.users",
		},
		{
			name: "already qualified table kept",
			raw:  "SELECT user_id FROM SKILLS.users",
			want: "SELECT user_id FROM SKILLS.users",
		},
		{
			name: "fetch first limit preserved",
			raw: "SELECT u.user_name, COUNT(a.asset_id) AS asset_count FROM users u " +
				"JOIN user_product_assets a ON u.user_id = a.user_id " +
				"GROUP BY u.user_name ORDER BY asset_count DESC FETCH FIRST 5 ROWS ONLY",
			want: "SELECT u.user_name, COUNT(a.asset_id) AS asset_count FROM SKILLS.users u " +
				"JOIN SKILLS.user_product_assets a ON u.user_id = a.user_id " +
				"GROUP BY u.user_name ORDER BY asset_count DESC FETCH FIRST 5 ROWS ONLY",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Validate(tc.raw, desc, opts)
			if !verdict.Allowed {
				t.Fatalf("denied (%s): %s", verdict.Kind, verdict.Reason)
			}
			if verdict.NormalizedSQL != tc.want {
				t.Fatalf("normalized = %q, want %q", verdict.NormalizedSQL, tc.want)
			}
			if verdict.Err() != nil {
				t.Fatalf("Err() = %v on allowed verdict", verdict.Err())
			}
		})
	}
}

func TestValidateDenies(t *testing.T) {
	desc := schema.SkillsProfile()
	opts := Options{TablePrefix: "SKILLS"}

	cases := []struct {
		name string
		raw  string
		kind fault.Kind
	}{
		{
			name: "no statement at all",
			raw:  "I cannot produce a query for that question.",
			kind: fault.Extraction,
		},
		{
			name: "empty output",
			raw:  "   \n\t",
			kind: fault.Extraction,
		},
		{
			name: "stacked statements",
			raw:  "SELECT user_id FROM users; SELECT email FROM users",
			kind: fault.MultiStatement,
		},
		{
			name: "write verb ahead of select",
			raw:  "DROP TABLE users; SELECT 1",
			kind: fault.WriteStatement,
		},
		{
			name: "plain update",
			raw:  "UPDATE users SET is_active = FALSE",
			kind: fault.WriteStatement,
		},
		{
			name: "data-modifying cte",
			raw:  "WITH doomed AS (DELETE FROM users) SELECT user_id FROM users",
			kind: fault.WriteStatement,
		},
		{
			name: "admin construct",
			raw:  "SELECT email FROM users INTO OUTFILE '/tmp/out'",
			kind: fault.UnsafeConstruct,
		},
		{
			name: "side-effecting function",
			raw:  "SELECT pg_sleep(10)",
			kind: fault.UnsafeConstruct,
		},
		{
			name: "hallucinated table",
			raw:  "SELECT salary FROM salaries",
			kind: fault.UnknownIdentifier,
		},
		{
			name: "hallucinated column on aliased table",
			raw:  "SELECT u.user_name, e.expertise FROM users u JOIN user_product_expertise e ON u.user_id = e.user_id",
			kind: fault.UnknownIdentifier,
		},
		{
			name: "hallucinated column qualified by table",
			raw:  "SELECT users.salary FROM users",
			kind: fault.UnknownIdentifier,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Validate(tc.raw, desc, opts)
			if verdict.Allowed {
				t.Fatalf("allowed %q as %q", tc.raw, verdict.NormalizedSQL)
			}
			if verdict.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s (reason: %s)", verdict.Kind, tc.kind, verdict.Reason)
			}
			if verdict.Reason == "" {
				t.Fatal("denied verdict has empty reason")
			}
			if fault.KindOf(verdict.Err()) != tc.kind {
				t.Fatalf("Err() kind = %s, want %s", fault.KindOf(verdict.Err()), tc.kind)
			}
		})
	}
}

func TestValidateIsIdempotentOnNormalizedOutput(t *testing.T) {
	desc := schema.SkillsProfile()
	opts := Options{TablePrefix: "SKILLS"}

	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "aliased filter",
			raw:  "SELECT u.user_name FROM users u WHERE u.is_active = TRUE;",
		},
		{
			// the alias collides with the schema prefix, so the qualifier
			// of the normalized table name must still resolve as a prefix
			name: "alias shadows prefix",
			raw:  "SELECT skills.user_id FROM users skills",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := Validate(tc.raw, desc, opts)
			if !first.Allowed {
				t.Fatalf("denied: %s", first.Reason)
			}
			second := Validate(first.NormalizedSQL, desc, opts)
			if !second.Allowed {
				t.Fatalf("re-validation denied: %s", second.Reason)
			}
			if second.NormalizedSQL != first.NormalizedSQL {
				t.Fatalf("normalization drifted: %q -> %q", first.NormalizedSQL, second.NormalizedSQL)
			}
		})
	}
}

func TestValidateWithoutPrefixLeavesTablesBare(t *testing.T) {
	verdict := Validate("SELECT email FROM users", schema.SkillsProfile(), Options{})
	if !verdict.Allowed {
		t.Fatalf("denied: %s", verdict.Reason)
	}
	if verdict.NormalizedSQL != "SELECT email FROM users" {
		t.Fatalf("normalized = %q", verdict.NormalizedSQL)
	}
}

func TestExtractPrefersFencedBlock(t *testing.T) {
	raw := "Sure, use this:\n```sql\nSELECT 1\n```\nAnd some trailing prose."
	if got := extract(raw); got != "SELECT 1" {
		t.Fatalf("extract() = %q", got)
	}
}

func TestExtractStripsSQLPrefix(t *testing.T) {
	if got := extract("SQL: SELECT email FROM users"); got != "SELECT email FROM users" {
		t.Fatalf("extract() = %q", got)
	}
}

func TestLexSkipsCommentsAndStrings(t *testing.T) {
	tokens := lex("SELECT 'it''s' /* block */ FROM users -- tail")
	var words []string
	for _, tok := range tokens {
		if tok.kind == tokenWord {
			words = append(words, tok.lower())
		}
	}
	if got := strings.Join(words, " "); got != "select from users" {
		t.Fatalf("words = %q", got)
	}
}
