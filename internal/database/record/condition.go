package record

import (
	"fmt"
	"regexp"
	"strings"
)

// Operator is a comparison operator usable in a Condition.
type Operator string

// Supported operators. Anything else is rejected with ErrInvalidOperator.
const (
	OpEq      Operator = "="
	OpNe      Operator = "<>"
	OpLt      Operator = "<"
	OpLe      Operator = "<="
	OpGt      Operator = ">"
	OpGe      Operator = ">="
	OpLike    Operator = "LIKE"
	OpIsNull  Operator = "IS NULL"
	OpNotNull Operator = "IS NOT NULL"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Condition is one predicate of a WHERE clause. The value is always sent as a
// bound parameter; only the validated column name and operator reach the SQL
// text.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// Ne matches rows where column differs from value.
func Ne(column string, value any) Condition {
	return Condition{Column: column, Op: OpNe, Value: value}
}

// Lt matches rows where column is less than value.
func Lt(column string, value any) Condition {
	return Condition{Column: column, Op: OpLt, Value: value}
}

// Le matches rows where column is at most value.
func Le(column string, value any) Condition {
	return Condition{Column: column, Op: OpLe, Value: value}
}

// Gt matches rows where column is greater than value.
func Gt(column string, value any) Condition {
	return Condition{Column: column, Op: OpGt, Value: value}
}

// Ge matches rows where column is at least value.
func Ge(column string, value any) Condition {
	return Condition{Column: column, Op: OpGe, Value: value}
}

// Like matches rows where column matches the LIKE pattern value.
func Like(column string, value any) Condition {
	return Condition{Column: column, Op: OpLike, Value: value}
}

// IsNull matches rows where column is NULL.
func IsNull(column string) Condition {
	return Condition{Column: column, Op: OpIsNull}
}

// NotNull matches rows where column is not NULL.
func NotNull(column string) Condition {
	return Condition{Column: column, Op: OpNotNull}
}

// String renders the condition for logs. Never use it to build SQL.
func (c Condition) String() string {
	if c.Op.unary() {
		return fmt.Sprintf("%s %s", c.Column, c.Op)
	}
	return fmt.Sprintf("%s %s %v", c.Column, c.Op, c.Value)
}

func (o Operator) unary() bool {
	return o == OpIsNull || o == OpNotNull
}

func (o Operator) valid() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpLike, OpIsNull, OpNotNull:
		return true
	}
	return false
}

// Order sorts a selection by one column.
type Order struct {
	Column string
	Desc   bool
}

// Increment is a Fields value that adds By to the current column value
// instead of overwriting it.
type Increment struct {
	By int64
}

// Add returns an Increment field value. Use a negative n to subtract.
func Add(n int64) Increment {
	return Increment{By: n}
}

// ValidIdentifier reports whether name can be used as a table or column name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func checkIdentifier(name string) error {
	if !ValidIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// buildWhere renders conditions as a conjunction with ? placeholders.
func buildWhere(conds []Condition) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		if err := checkIdentifier(c.Column); err != nil {
			return "", nil, err
		}
		if !c.Op.valid() {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidOperator, c.Op)
		}
		if c.Op.unary() {
			parts = append(parts, fmt.Sprintf("%s %s", c.Column, c.Op))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", c.Column, c.Op))
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildColumns(columns []string) (string, error) {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		return "*", nil
	}
	for _, c := range columns {
		if err := checkIdentifier(c); err != nil {
			return "", err
		}
	}
	return strings.Join(columns, ", "), nil
}
