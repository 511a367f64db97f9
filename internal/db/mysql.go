package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/tordrt/umlgen/internal/schema"
)

// MySQLIntrospector reads one MySQL database.
type MySQLIntrospector struct {
	db         *sql.DB
	schemaName string
}

// OpenMySQL connects to MySQL and checks the connection. dsn uses the
// go-sql-driver form: user:pass@tcp(host:3306)/db.
func OpenMySQL(ctx context.Context, dsn, schemaName string) (*MySQLIntrospector, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return &MySQLIntrospector{db: db, schemaName: schemaName}, nil
}

// ParseMySQLDatabase returns the database named in a MySQL DSN.
func ParseMySQLDatabase(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("MySQL DSN names no database")
	}
	return cfg.DBName, nil
}

// Close closes the connection pool.
func (m *MySQLIntrospector) Close() error {
	return m.db.Close()
}

// ExtractSchema implements Introspector.
func (m *MySQLIntrospector) ExtractSchema(ctx context.Context, tables []string) (*schema.Schema, error) {
	names, err := m.tableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	s := &schema.Schema{}
	for _, name := range names {
		table, err := m.table(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		s.Tables = append(s.Tables, *table)
	}
	return s, nil
}

func (m *MySQLIntrospector) tableNames(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return queryStrings(ctx, m.db, query, m.schemaName)
}

func (m *MySQLIntrospector) table(ctx context.Context, name string) (*schema.Table, error) {
	t := &schema.Table{Name: name}
	var err error

	if t.Columns, err = m.columns(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}
	if t.PrimaryKey, err = m.primaryKey(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract primary key: %w", err)
	}
	if t.Relations, err = m.relations(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract relations: %w", err)
	}
	if t.Indexes, err = m.indexes(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to extract indexes: %w", err)
	}
	finishTable(t)
	return t, nil
}

func (m *MySQLIntrospector) columns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT
			c.column_name,
			c.column_type,
			c.is_nullable,
			c.column_default,
			CASE WHEN EXISTS (
				SELECT 1 FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
					AND tc.table_schema = kcu.table_schema
					AND tc.table_name = kcu.table_name
				WHERE tc.table_schema = ?
					AND tc.table_name = ?
					AND tc.constraint_type = 'UNIQUE'
					AND kcu.column_name = c.column_name
			) THEN true ELSE false END AS is_unique,
			c.data_type,
			c.extra,
			c.column_comment
		FROM information_schema.columns c
		WHERE c.table_schema = ? AND c.table_name = ?
		ORDER BY c.ordinal_position
	`
	rows, err := m.db.QueryContext(ctx, query, m.schemaName, table, m.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var nullable, dataType, extra string
		var defaultVal sql.NullString

		if err := rows.Scan(&col.Name, &col.Type, &nullable, &defaultVal, &col.IsUnique, &dataType, &extra, &col.Comment); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		col.AutoIncrement = strings.Contains(strings.ToLower(extra), "auto_increment")
		if defaultVal.Valid {
			col.DefaultValue = &defaultVal.String
		}
		if dataType == "enum" {
			values, err := parseEnumValues(col.Type)
			if err != nil {
				return nil, err
			}
			col.EnumValues = values
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// parseEnumValues reads the values of a MySQL column type such as
// "enum('draft','sent')".
func parseEnumValues(columnType string) ([]string, error) {
	if !strings.HasPrefix(columnType, "enum(") {
		return nil, nil
	}
	start := strings.Index(columnType, "(")
	end := strings.LastIndex(columnType, ")")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("invalid enum type format: %s", columnType)
	}

	var values []string
	for _, part := range strings.Split(columnType[start+1:end], ",") {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && part[0] == '\'' && part[len(part)-1] == '\'' {
			part = part[1 : len(part)-1]
		}
		values = append(values, part)
	}
	return values, nil
}

func (m *MySQLIntrospector) primaryKey(ctx context.Context, table string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
			AND table_name = ?
			AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position
	`
	return queryStrings(ctx, m.db, query, m.schemaName, table)
}

func (m *MySQLIntrospector) relations(ctx context.Context, table string) ([]schema.Relation, error) {
	query := `
		SELECT
			kcu.constraint_name,
			kcu.column_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name,
			rc.delete_rule
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_schema = kcu.table_schema
			AND rc.constraint_name = kcu.constraint_name
		WHERE kcu.table_schema = ?
			AND kcu.table_name = ?
			AND kcu.referenced_table_name IS NOT NULL
		ORDER BY kcu.ordinal_position
	`
	rows, err := m.db.QueryContext(ctx, query, m.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var relations []schema.Relation
	for rows.Next() {
		var rel schema.Relation
		if err := rows.Scan(&rel.Name, &rel.SourceColumn, &rel.TargetTable, &rel.TargetColumn, &rel.OnDelete); err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (m *MySQLIntrospector) indexes(ctx context.Context, table string) ([]schema.Index, error) {
	query := `
		SELECT
			s.index_name,
			s.non_unique = 0 AS is_unique,
			GROUP_CONCAT(s.column_name ORDER BY s.seq_in_index) AS column_names
		FROM information_schema.statistics s
		WHERE s.table_schema = ?
			AND s.table_name = ?
			AND s.index_name != 'PRIMARY'
		GROUP BY s.index_name, s.non_unique
		ORDER BY s.index_name
	`
	rows, err := m.db.QueryContext(ctx, query, m.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var indexes []schema.Index
	for rows.Next() {
		var idx schema.Index
		var isUnique int
		var columnNames string
		if err := rows.Scan(&idx.Name, &isUnique, &columnNames); err != nil {
			return nil, err
		}
		idx.IsUnique = isUnique == 1
		idx.Columns = strings.Split(columnNames, ",")
		indexes = append(indexes, idx)
	}
	return indexes, rows.Err()
}

// queryStrings collects a single text column.
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
