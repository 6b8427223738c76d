package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = FieldSet{
	"name":       KindText,
	"category":   KindText,
	"age_days":   KindInteger,
	"age_years":  KindNumber,
	"date_added": KindInteger,
}

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []QueryFilter
		wantErr string
	}{
		{name: "empty", in: "", want: nil},
		{name: "default eq", in: "category|Living", want: []QueryFilter{{Field: "category", Operator: OpEq, Value: "Living"}}},
		{name: "integer operand", in: "age_days|gte|30", want: []QueryFilter{{Field: "age_days", Operator: OpGte, Value: int64(30)}}},
		{name: "number operand", in: "age_years|lt|1.5", want: []QueryFilter{{Field: "age_years", Operator: OpLt, Value: 1.5}}},
		{name: "text in list", in: "category|in|Living;Kitchen", want: []QueryFilter{{Field: "category", Operator: OpIn, Value: []any{"Living", "Kitchen"}}}},
		{name: "integer in list", in: "age_days|nin|1;2", want: []QueryFilter{{Field: "age_days", Operator: OpNin, Value: []any{int64(1), int64(2)}}}},
		{name: "like on text", in: "name|LIKE|lamp", want: []QueryFilter{{Field: "name", Operator: OpLike, Value: "lamp"}}},
		{
			name: "multiple",
			in:   "category|Living, age_days|ne|0",
			want: []QueryFilter{
				{Field: "category", Operator: OpEq, Value: "Living"},
				{Field: "age_days", Operator: OpNe, Value: int64(0)},
			},
		},
		{name: "unknown operator", in: "age_days|between|1", wantErr: "invalid operator"},
		{name: "like on integer", in: "age_days|like|3", wantErr: "invalid operator"},
		{name: "like on number", in: "age_years|like|1", wantErr: "invalid operator"},
		{name: "range on text", in: "category|gt|A", wantErr: "invalid operator"},
		{name: "null operators are not supported", in: "name|isnull|x", wantErr: "invalid operator"},
		{name: "non-numeric integer", in: "age_days|gt|abc", wantErr: "not an integer"},
		{name: "non-numeric in list", in: "date_added|in|1;soon", wantErr: "not an integer"},
		{name: "nan", in: "age_years|eq|NaN", wantErr: "not a number"},
		{name: "unknown field", in: "password|x", wantErr: "invalid query field"},
		{name: "bad format", in: "a|b|c|d", wantErr: "invalid query format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryString(tt.in, testFields)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderString(t *testing.T) {
	got, err := ParseOrderString("date_added|desc,name|ASC", testFields)
	require.NoError(t, err)
	assert.Equal(t, []OrderClause{
		{Field: "date_added", Direction: OrderDesc},
		{Field: "name", Direction: OrderAsc},
	}, got)

	_, err = ParseOrderString("name|sideways", testFields)
	assert.ErrorContains(t, err, "invalid order direction")

	_, err = ParseOrderString("name", testFields)
	assert.ErrorContains(t, err, "invalid order format")

	_, err = ParseOrderString("secret|asc", testFields)
	assert.ErrorContains(t, err, "invalid order field")
}

func TestNewListFilter(t *testing.T) {
	f, err := NewListFilter("category|Living", "age_days|desc", 0, -5, testFields)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.PerPage)
	assert.Len(t, f.Filters, 1)
	assert.Len(t, f.Order, 1)

	_, err = NewListFilter("age_days|gt|abc", "", 1, 0, testFields)
	assert.Error(t, err)
}
