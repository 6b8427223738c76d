package util

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FieldKind is the column type a filter operand is parsed into.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInteger
	KindNumber
)

// FieldSet maps the columns a list endpoint exposes to their kind.
type FieldSet map[string]FieldKind

func (fs FieldSet) names() string {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// QueryOperator represents a filter operator
type QueryOperator string

const (
	OpEq   QueryOperator = "eq"
	OpNe   QueryOperator = "ne"
	OpGt   QueryOperator = "gt"
	OpGte  QueryOperator = "gte"
	OpLt   QueryOperator = "lt"
	OpLte  QueryOperator = "lte"
	OpIn   QueryOperator = "in"
	OpNin  QueryOperator = "nin"
	OpLike QueryOperator = "like"
)

var operatorsByKind = map[FieldKind][]QueryOperator{
	KindText:    {OpEq, OpNe, OpIn, OpNin, OpLike},
	KindInteger: {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin},
	KindNumber:  {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin},
}

// QueryFilter is one validated condition. Value holds a string, int64 or
// float64 matching the field kind, or a []any of those for in/nin.
type QueryFilter struct {
	Field    string
	Operator QueryOperator
	Value    any
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// OrderClause represents a single order by clause
type OrderClause struct {
	Field     string
	Direction OrderDirection
}

// ParseQueryString parses comma-separated conditions of the form
// field|value (equality) or field|operator|value. in/nin take a
// semicolon-separated list (category|in|Living;Kitchen). Fields, operators
// and operands are checked against fields.
func ParseQueryString(queryStr string, fields FieldSet) ([]QueryFilter, error) {
	var filters []QueryFilter

	for _, cond := range strings.Split(queryStr, ",") {
		cond = strings.TrimSpace(cond)
		if cond == "" {
			continue
		}

		var field, opStr, raw string
		parts := strings.Split(cond, "|")
		switch len(parts) {
		case 2:
			field, opStr, raw = parts[0], string(OpEq), parts[1]
		case 3:
			field, opStr, raw = parts[0], strings.ToLower(parts[1]), parts[2]
		default:
			return nil, fmt.Errorf("invalid query format: %s (expected field|value or field|operator|value)", cond)
		}

		kind, ok := fields[field]
		if !ok {
			return nil, fmt.Errorf("invalid query field: %s (valid fields: %s)", field, fields.names())
		}

		op := QueryOperator(opStr)
		if !kind.allows(op) {
			return nil, fmt.Errorf("invalid operator %q for field %s", opStr, field)
		}

		value, err := parseOperand(kind, op, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", field, err)
		}

		filters = append(filters, QueryFilter{Field: field, Operator: op, Value: value})
	}

	return filters, nil
}

func (k FieldKind) allows(op QueryOperator) bool {
	for _, allowed := range operatorsByKind[k] {
		if allowed == op {
			return true
		}
	}
	return false
}

func parseOperand(kind FieldKind, op QueryOperator, raw string) (any, error) {
	if op != OpIn && op != OpNin {
		return parseScalar(kind, raw)
	}

	items := strings.Split(raw, ";")
	values := make([]any, len(items))
	for i, item := range items {
		v, err := parseScalar(kind, item)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func parseScalar(kind FieldKind, raw string) (any, error) {
	switch kind {
	case KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case KindNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	default:
		return raw, nil
	}
}

// ParseOrderString parses comma-separated field|asc or field|desc clauses
// over the given fields.
func ParseOrderString(orderStr string, fields FieldSet) ([]OrderClause, error) {
	var orders []OrderClause

	for _, clause := range strings.Split(orderStr, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		field, dir, ok := strings.Cut(clause, "|")
		if !ok || strings.Contains(dir, "|") {
			return nil, fmt.Errorf("invalid order format: %s (expected field|direction)", clause)
		}
		if _, known := fields[field]; !known {
			return nil, fmt.Errorf("invalid order field: %s (valid fields: %s)", field, fields.names())
		}

		direction := OrderDirection(strings.ToLower(dir))
		if direction != OrderAsc && direction != OrderDesc {
			return nil, fmt.Errorf("invalid order direction: %s (expected asc or desc)", dir)
		}

		orders = append(orders, OrderClause{Field: field, Direction: direction})
	}

	return orders, nil
}
