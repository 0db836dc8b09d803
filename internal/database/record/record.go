// Package record is a table-agnostic record store: create, read, update and
// delete rows in named tables with structured conditions that are always
// sent to the database as bound parameters.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// IDColumn is the auto-assigned primary key every table managed by the store
// carries. Insert returns its value.
const IDColumn = "ID"

// Column is one column definition: a name and its type and constraints.
type Column struct {
	Name       string
	Definition string
}

// Fields maps column names to values for Insert and Update. Update also
// accepts Increment values.
type Fields map[string]any

// Select describes a read. Zero Columns means every column in table order.
type Select struct {
	Table   string
	Columns []string
	Where   []Condition
	OrderBy []Order
	Limit   int
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store runs statements against a database. Methods called on a Store
// auto-commit; the same methods on a Tx run inside that transaction.
type Store struct {
	db      *sqlx.DB
	q       execer
	dialect Dialect
	bind    int
	// mu is the single writer lock shared by the store and its transactions.
	mu   *sync.Mutex
	inTx bool
}

// New wraps an open database handle.
func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		q:       db,
		dialect: dialect,
		bind:    sqlx.BindType(db.DriverName()),
		mu:      &sync.Mutex{},
	}
}

// Dialect returns the dialect the store was opened with.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// DB returns the underlying handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// lockWrite takes the writer lock unless the store is already bound to a
// transaction that holds it.
func (s *Store) lockWrite() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rebind(query string) string {
	return sqlx.Rebind(s.bind, query)
}

// CreateTable creates name with the given columns if it does not exist.
func (s *Store) CreateTable(ctx context.Context, name string, columns []Column) error {
	if err := checkIdentifier(name); err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("create table %s: %w", name, ErrNoFields)
	}
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		if err := checkIdentifier(c.Name); err != nil {
			return err
		}
		defs = append(defs, fmt.Sprintf("%s %s", c.Name, c.Definition))
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(defs, ", "))
	_, err := s.exec(ctx, query)
	return err
}

// DropTable drops name if it exists.
func (s *Store) DropTable(ctx context.Context, name string) error {
	if err := checkIdentifier(name); err != nil {
		return err
	}
	_, err := s.exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name))
	return err
}

// Insert adds one row and returns its ID.
func (s *Store) Insert(ctx context.Context, table string, fields Fields) (int64, error) {
	if err := checkIdentifier(table); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("insert into %s: %w", table, ErrNoFields)
	}
	names := sortedKeys(fields)
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		if err := checkIdentifier(name); err != nil {
			return 0, err
		}
		placeholders[i] = "?"
		args[i] = fields[name]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "), IDColumn)

	unlock := s.lockWrite()
	defer unlock()

	var id int64
	if err := s.q.QueryRowContext(ctx, s.rebind(query), args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, s.dialect.Classify(err))
	}
	return id, nil
}

// Update applies fields to every row matching all conditions and returns the
// number of rows changed. Zero matches is not an error.
func (s *Store) Update(ctx context.Context, table string, fields Fields, conds ...Condition) (int64, error) {
	if err := checkIdentifier(table); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("update %s: %w", table, ErrNoFields)
	}
	if len(conds) == 0 {
		return 0, fmt.Errorf("update %s: %w", table, ErrUnboundedWrite)
	}
	names := sortedKeys(fields)
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+len(conds))
	for i, name := range names {
		if err := checkIdentifier(name); err != nil {
			return 0, err
		}
		switch v := fields[name].(type) {
		case Increment:
			sets[i] = fmt.Sprintf("%s = %s + ?", name, name)
			args = append(args, v.By)
		default:
			sets[i] = fmt.Sprintf("%s = ?", name)
			args = append(args, v)
		}
	}
	where, whereArgs, err := buildWhere(conds)
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)
	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), where)

	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", table, err)
	}
	return rowsAffected(res), nil
}

// Delete removes every row matching all conditions and returns the count.
func (s *Store) Delete(ctx context.Context, table string, conds ...Condition) (int64, error) {
	if err := checkIdentifier(table); err != nil {
		return 0, err
	}
	if len(conds) == 0 {
		return 0, fmt.Errorf("delete from %s: %w", table, ErrUnboundedWrite)
	}
	where, args, err := buildWhere(conds)
	if err != nil {
		return 0, err
	}
	res, err := s.exec(ctx, fmt.Sprintf("DELETE FROM %s%s", table, where), args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return rowsAffected(res), nil
}

// SelectAll returns every row of table.
func (s *Store) SelectAll(ctx context.Context, table string, columns ...string) ([]Row, error) {
	return s.Select(ctx, Select{Table: table, Columns: columns})
}

// SelectWhere returns every row of table matching all conditions.
func (s *Store) SelectWhere(ctx context.Context, table string, conds []Condition, columns ...string) ([]Row, error) {
	return s.Select(ctx, Select{Table: table, Columns: columns, Where: conds})
}

// Select runs a read and materializes the full result set.
func (s *Store) Select(ctx context.Context, sel Select) ([]Row, error) {
	if err := checkIdentifier(sel.Table); err != nil {
		return nil, err
	}
	cols, err := buildColumns(sel.Columns)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(sel.Where)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", cols, sel.Table, where)
	if len(sel.OrderBy) > 0 {
		orders := make([]string, len(sel.OrderBy))
		for i, o := range sel.OrderBy {
			if err := checkIdentifier(o.Column); err != nil {
				return nil, err
			}
			orders[i] = o.Column
			if o.Desc {
				orders[i] += " DESC"
			}
		}
		sb.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}
	if sel.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, sel.Limit)
	}

	rows, err := s.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", sel.Table, err)
	}
	return rows, nil
}

// Exec runs an ad-hoc statement. Placeholders are written as ? and rebound
// for the dialect; args are always bound, never interpolated.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.exec(ctx, query, args...)
}

// Query runs an ad-hoc read with bound args and returns every row.
func (s *Store) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := s.q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, s.dialect.Classify(err)
	}
	defer rows.Close()
	out, err := scanRows(rows)
	if err != nil {
		return nil, s.dialect.Classify(err)
	}
	return out, nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	unlock := s.lockWrite()
	defer unlock()

	res, err := s.q.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, s.dialect.Classify(err)
	}
	return res, nil
}

func sortedKeys(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
