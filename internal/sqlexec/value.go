// Package sqlexec executes an approved statement against the
// relational engine and serializes driver-native rows into a closed
// value model. Only statements carrying an allowed validation verdict
// ever reach it.
package sqlexec

import (
	"encoding/json"
	"strconv"
	"time"
)

type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindDate
	KindTimestamp
)

// Value is the closed tagged variant for row cells. Driver types
// outside this set are a serialization fault, never a silent
// stringification.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
}

func Null() Value          { return Value{kind: KindNull} }
func Bool(v bool) Value    { return Value{kind: KindBool, b: v} }
func Int(v int64) Value    { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Text(v string) Value  { return Value{kind: KindText, s: v} }

// Date renders as ISO-8601 calendar date text.
func Date(t time.Time) Value {
	return Value{kind: KindDate, s: t.Format("2006-01-02")}
}

// Timestamp renders as ISO-8601 (RFC 3339) text.
func Timestamp(t time.Time) Value {
	return Value{kind: KindTimestamp, s: t.Format(time.RFC3339)}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	default:
		return json.Marshal(v.s)
	}
}

// String returns the cell as display text.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Row maps column names to serialized cells.
type Row map[string]Value

// Result is the stable shape of an executed query.
type Result struct {
	Columns  []string
	Rows     []Row
	RowCount int
	Duration time.Duration
}
