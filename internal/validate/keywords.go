package validate

// keywords are SQL words that are never treated as schema identifiers.
// The set covers the read-only SELECT grammar across the engines we
// target; anything not listed here, not a function call, and not a
// declared alias must resolve against the schema descriptor.
var keywords = wordSet(
	"select", "from", "where", "join", "inner", "left", "right", "full",
	"outer", "cross", "natural", "lateral", "on", "using",
	"and", "or", "not", "is", "null", "in", "exists", "between", "like",
	"ilike", "similar", "to", "escape", "collate",
	"as", "distinct", "all", "any", "some",
	"group", "by", "having", "order", "asc", "desc", "nulls", "first",
	"last", "limit", "offset", "fetch", "next", "rows", "row", "only",
	"union", "except", "intersect",
	"case", "when", "then", "else", "end",
	"true", "false", "unknown",
	"with", "recursive", "values",
	"cast", "interval", "date", "time", "timestamp", "at", "zone",
	"year", "quarter", "month", "week", "day", "hour", "minute",
	"second", "epoch", "dow", "doy",
	"over", "partition", "range", "unbounded", "preceding", "following",
	"current", "filter", "within", "ties",
	"current_date", "current_time", "current_timestamp", "localtime",
	"localtimestamp",
)

// writeVerbs cause an immediate denial wherever they appear outside
// string literals. This also covers data-modifying CTE bodies, which
// would otherwise slip past a leading-verb check.
var writeVerbs = wordSet(
	"insert", "update", "delete", "drop", "alter", "create", "truncate",
	"merge", "upsert", "rename",
)

// unsafeConstructs are administrative or side-effecting statement
// words that have no place inside a read-only SELECT.
var unsafeConstructs = wordSet(
	"call", "exec", "execute", "grant", "revoke", "set", "reset",
	"copy", "vacuum", "analyze", "pragma", "attach", "detach",
	"install", "load", "export", "import", "into", "do", "listen",
	"notify", "prepare", "deallocate", "declare", "lock", "checkpoint",
)

// unsafeFunctions reach the filesystem, the network, or session state
// even when nested inside an otherwise valid SELECT.
var unsafeFunctions = wordSet(
	"pg_sleep", "pg_sleep_for", "pg_sleep_until", "pg_read_file",
	"pg_read_binary_file", "pg_ls_dir", "pg_terminate_backend",
	"pg_cancel_backend", "pg_reload_conf", "dblink", "dblink_exec",
	"lo_import", "lo_export", "set_config", "query_to_xml",
	"read_csv", "read_csv_auto", "read_parquet", "read_json",
	"read_json_auto", "read_text", "read_blob", "glob", "getenv",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func isKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}
