package util

// ListFilter contains common filtering/pagination options for list endpoints
type ListFilter struct {
	Filters []QueryFilter
	Order   []OrderClause
	// Pagination; PerPage 0 means no limit
	Page    int
	PerPage int
}

// NewListFilter parses the raw query/order parameters against fields and
// clamps the pagination values.
func NewListFilter(queryStr, orderStr string, page, perPage int, fields FieldSet) (ListFilter, error) {
	filter := ListFilter{Page: max(page, 1), PerPage: max(perPage, 0)}

	var err error
	if filter.Filters, err = ParseQueryString(queryStr, fields); err != nil {
		return ListFilter{}, err
	}
	if filter.Order, err = ParseOrderString(orderStr, fields); err != nil {
		return ListFilter{}, err
	}

	return filter, nil
}
