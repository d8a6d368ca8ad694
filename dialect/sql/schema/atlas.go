package schema

import (
	"errors"
	"fmt"

	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
)

// FromAtlas converts an atlas table, usually obtained by inspecting a
// live database, into a Table.
//
//	drv, err := sqlite.Open(db) // ariga.io/atlas/sql/sqlite
//	s, err := drv.InspectSchema(ctx, "", nil)
//	at, ok := s.Table("users")
//	t, err := schema.FromAtlas(at)
//
// Expression index parts cannot serve as column targets; indexes
// containing them are skipped. Indexes with a SQLite WHERE predicate
// are marked Partial.
func FromAtlas(at *schema.Table) (*Table, error) {
	if at == nil {
		return nil, errors.New("schema: nil atlas table")
	}
	t := &Table{Name: at.Name}
	if at.Schema != nil {
		t.Schema = at.Schema.Name
	}
	byName := make(map[string]*Column, len(at.Columns))
	for _, ac := range at.Columns {
		c := &Column{Name: ac.Name}
		if ac.Type != nil {
			c.Type = ac.Type.Raw
			c.Nullable = ac.Type.Null
		}
		switch d := ac.Default.(type) {
		case *schema.Literal:
			c.Default = d.V
		case *schema.RawExpr:
			c.Default = d.X
		}
		byName[c.Name] = c
		t.Columns = append(t.Columns, c)
	}
	if pk := at.PrimaryKey; pk != nil {
		cols, err := indexColumns(byName, pk)
		if err != nil {
			return nil, fmt.Errorf("schema: table %q primary key: %w", at.Name, err)
		}
		t.PrimaryKey = cols
	}
	for _, ai := range at.Indexes {
		cols, err := indexColumns(byName, ai)
		if err != nil {
			continue
		}
		idx := &Index{Name: ai.Name, Unique: ai.Unique, Columns: cols, Partial: partial(ai)}
		if idx.Unique && !idx.Partial && len(cols) == 1 {
			cols[0].Unique = true
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t, nil
}

// partial reports whether the index carries a WHERE predicate.
func partial(idx *schema.Index) bool {
	for _, a := range idx.Attrs {
		if p, ok := a.(*sqlite.IndexPredicate); ok && p.P != "" {
			return true
		}
	}
	return false
}

func indexColumns(byName map[string]*Column, idx *schema.Index) ([]*Column, error) {
	cols := make([]*Column, 0, len(idx.Parts))
	for _, p := range idx.Parts {
		if p.C == nil {
			return nil, fmt.Errorf("index %q has an expression part", idx.Name)
		}
		c, ok := byName[p.C.Name]
		if !ok {
			return nil, fmt.Errorf("index %q references unknown column %q", idx.Name, p.C.Name)
		}
		cols = append(cols, c)
	}
	return cols, nil
}
