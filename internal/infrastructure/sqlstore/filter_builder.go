package sqlstore

import (
	"fmt"
	"strings"

	"github.com/martijn/secondchance/internal/api/util"
)

var comparisons = map[util.QueryOperator]string{
	util.OpEq:  "=",
	util.OpNe:  "!=",
	util.OpGt:  ">",
	util.OpGte: ">=",
	util.OpLt:  "<",
	util.OpLte: "<=",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// BuildFilterClause builds a SQL WHERE clause from a QueryFilter. Operands
// arrive typed from util.ParseQueryString and are bound as-is.
func BuildFilterClause(f util.QueryFilter) (string, []interface{}) {
	if cmp, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s ?", f.Field, cmp), []interface{}{f.Value}
	}

	switch f.Operator {
	case util.OpLike:
		pattern := "%" + likeEscaper.Replace(strings.ToLower(fmt.Sprint(f.Value))) + "%"
		return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, f.Field), []interface{}{pattern}
	case util.OpIn, util.OpNin:
		values, ok := f.Value.([]any)
		if !ok || len(values) == 0 {
			return "", nil
		}
		op := "IN"
		if f.Operator == util.OpNin {
			op = "NOT IN"
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		return fmt.Sprintf("%s %s (%s)", f.Field, op, placeholders), values
	default:
		return "", nil
	}
}

// ApplyFilters applies QueryFilters to a query and returns the modified query and args
func ApplyFilters(query string, args []interface{}, filters []util.QueryFilter) (string, []interface{}) {
	for _, f := range filters {
		clause, filterArgs := BuildFilterClause(f)
		if clause != "" {
			query += " AND " + clause
			args = append(args, filterArgs...)
		}
	}
	return query, args
}

// ApplyOrdering applies OrderClauses to a query
func ApplyOrdering(query string, orders []util.OrderClause, defaultOrder string) string {
	if len(orders) > 0 {
		orderClauses := make([]string, 0, len(orders))
		for _, o := range orders {
			direction := "ASC"
			if o.Direction == util.OrderDesc {
				direction = "DESC"
			}
			orderClauses = append(orderClauses, fmt.Sprintf("%s %s", o.Field, direction))
		}
		return query + " ORDER BY " + strings.Join(orderClauses, ", ")
	}
	return query + " ORDER BY " + defaultOrder
}

// ApplyPagination applies page/perPage to a query
func ApplyPagination(query string, args []interface{}, page, perPage int) (string, []interface{}) {
	if perPage > 0 {
		query += " LIMIT ?"
		args = append(args, perPage)

		if page > 1 {
			offset := (page - 1) * perPage
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}
