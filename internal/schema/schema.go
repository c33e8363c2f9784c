// Package schema holds the static descriptor of the queryable
// database. The descriptor is hand-maintained, built once at startup,
// and shared read-only by the prompt builder and the validator.
package schema

import (
	"fmt"
	"strings"
)

type Column struct {
	Name     string
	Type     string
	Nullable bool
	// Comment describes the column's semantic role; it is included in
	// the generation prompt so the model grounds on real columns.
	Comment string
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Descriptor is an ordered set of tables with case-insensitive lookup
// indexes. Immutable after New.
type Descriptor struct {
	tables  []Table
	byTable map[string]*tableIndex
	columns map[string]struct{}
}

type tableIndex struct {
	table   *Table
	columns map[string]struct{}
}

func New(tables []Table) *Descriptor {
	d := &Descriptor{
		tables:  tables,
		byTable: make(map[string]*tableIndex, len(tables)),
		columns: make(map[string]struct{}),
	}
	for i := range d.tables {
		table := &d.tables[i]
		idx := &tableIndex{table: table, columns: make(map[string]struct{}, len(table.Columns))}
		for _, column := range table.Columns {
			name := strings.ToLower(column.Name)
			idx.columns[name] = struct{}{}
			d.columns[name] = struct{}{}
		}
		d.byTable[strings.ToLower(table.Name)] = idx
	}
	return d
}

func (d *Descriptor) Tables() []Table { return d.tables }

func (d *Descriptor) HasTable(name string) bool {
	_, ok := d.byTable[strings.ToLower(name)]
	return ok
}

func (d *Descriptor) Table(name string) (Table, bool) {
	idx, ok := d.byTable[strings.ToLower(name)]
	if !ok {
		return Table{}, false
	}
	return *idx.table, true
}

// HasColumn reports whether the named table declares the column.
func (d *Descriptor) HasColumn(table, column string) bool {
	idx, ok := d.byTable[strings.ToLower(table)]
	if !ok {
		return false
	}
	_, ok = idx.columns[strings.ToLower(column)]
	return ok
}

// HasAnyColumn reports whether any table declares the column.
func (d *Descriptor) HasAnyColumn(column string) bool {
	_, ok := d.columns[strings.ToLower(column)]
	return ok
}

// Describe renders the descriptor as the plain-text schema block used
// in generation prompts. The rendering is deterministic: table and
// column order follow declaration order.
func (d *Descriptor) Describe() string {
	var b strings.Builder
	for _, table := range d.tables {
		fmt.Fprintf(&b, "TABLE: %s\n", table.Name)
		for _, column := range table.Columns {
			constraint := " NOT NULL"
			if column.Nullable {
				constraint = ""
			}
			fmt.Fprintf(&b, "- %s %s%s (%s)\n", column.Name, column.Type, constraint, column.Comment)
		}
		for _, fk := range table.ForeignKeys {
			fmt.Fprintf(&b, "- FOREIGN KEY %s REFERENCES %s(%s)\n", fk.Column, fk.RefTable, fk.RefColumn)
		}
		b.WriteString("\n")
	}
	return b.String()
}
