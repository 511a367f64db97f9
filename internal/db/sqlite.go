package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tordrt/umlgen/internal/schema"
)

// SQLiteIntrospector reads one SQLite database file.
type SQLiteIntrospector struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path and checks the connection.
func OpenSQLite(ctx context.Context, path string) (*SQLiteIntrospector, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite: %w", err)
	}
	return &SQLiteIntrospector{db: db}, nil
}

// Close closes the database.
func (s *SQLiteIntrospector) Close() error {
	return s.db.Close()
}

// ExtractSchema implements Introspector.
func (s *SQLiteIntrospector) ExtractSchema(ctx context.Context, tables []string) (*schema.Schema, error) {
	names := tables
	if len(names) == 0 {
		var err error
		names, err = queryStrings(ctx, s.db, `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name
		`)
		if err != nil {
			return nil, fmt.Errorf("failed to get table names: %w", err)
		}
	}

	out := &schema.Schema{}
	for _, name := range names {
		table, err := s.table(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		out.Tables = append(out.Tables, *table)
	}
	return out, nil
}

// quoteIdent quotes a name for use inside a PRAGMA argument.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *SQLiteIntrospector) table(ctx context.Context, name string) (*schema.Table, error) {
	t := &schema.Table{Name: name}

	if err := s.columns(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}
	relations, err := s.relations(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract relations: %w", err)
	}
	t.Relations = relations

	indexes, err := s.indexes(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract indexes: %w", err)
	}
	for _, idx := range indexes {
		if idx.IsUnique && len(idx.Columns) == 1 && !t.IsPrimaryKey(idx.Columns[0]) {
			if c, ok := t.Column(idx.Columns[0]); ok {
				c.IsUnique = true
			}
		}
		// Indexes backing UNIQUE and PRIMARY KEY constraints are implicit.
		if !strings.HasPrefix(idx.Name, "sqlite_autoindex") {
			t.Indexes = append(t.Indexes, idx)
		}
	}
	finishTable(t)
	return t, nil
}

// columns fills the columns and the primary key from PRAGMA table_info.
func (s *SQLiteIntrospector) columns(ctx context.Context, t *schema.Table) error {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(t.Name)+")")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	type pkColumn struct {
		name  string
		order int
	}
	var pks []pkColumn
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var defaultValue sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return err
		}
		col := schema.Column{Name: name, Type: colType, Nullable: notNull == 0 && pk == 0}
		if defaultValue.Valid {
			col.DefaultValue = &defaultValue.String
		}
		if pk > 0 {
			pks = append(pks, pkColumn{name: name, order: pk})
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	t.PrimaryKey = make([]string, len(pks))
	for _, pk := range pks {
		t.PrimaryKey[pk.order-1] = pk.name
	}
	// A lone INTEGER PRIMARY KEY aliases the rowid.
	if len(t.PrimaryKey) == 1 {
		if c, ok := t.Column(t.PrimaryKey[0]); ok && strings.EqualFold(c.Type, "integer") {
			c.AutoIncrement = true
		}
	}
	return nil
}

func (s *SQLiteIntrospector) relations(ctx context.Context, table string) ([]schema.Relation, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA foreign_key_list("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var relations []schema.Relation
	for rows.Next() {
		var id, seq int
		var targetTable, fromCol, onUpdate, onDelete, match string
		var toCol sql.NullString
		if err := rows.Scan(&id, &seq, &targetTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		rel := schema.Relation{
			Name:         fmt.Sprintf("fk_%s_%d", table, id),
			SourceColumn: fromCol,
			TargetTable:  targetTable,
			TargetColumn: toCol.String,
			OnDelete:     onDelete,
		}
		// A missing target column means the referenced primary key.
		if rel.TargetColumn == "" {
			rel.TargetColumn = "id"
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (s *SQLiteIntrospector) indexes(ctx context.Context, table string) ([]schema.Index, error) {
	type entry struct {
		name   string
		unique bool
	}
	var entries []entry

	rows, err := s.db.QueryContext(ctx, "PRAGMA index_list("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			_ = rows.Close()
			return nil, err
		}
		entries = append(entries, entry{name: name, unique: unique == 1})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	var indexes []schema.Index
	for _, e := range entries {
		columns, err := s.indexColumns(ctx, e.name)
		if err != nil {
			return nil, err
		}
		if len(columns) > 0 {
			indexes = append(indexes, schema.Index{Name: e.name, IsUnique: e.unique, Columns: columns})
		}
	}
	return indexes, nil
}

func (s *SQLiteIntrospector) indexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA index_info("+quoteIdent(index)+")")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var seqno, cid int
		var name sql.NullString
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}
		if name.Valid {
			columns = append(columns, name.String)
		}
	}
	return columns, rows.Err()
}
