package repository

import (
	"context"

	"github.com/martijn/secondchance/internal/api/util"
	"github.com/martijn/secondchance/internal/core/domain"
)

// ItemFilter embeds ListFilter for generic query/order/pagination
type ItemFilter struct {
	util.ListFilter
}

// ItemFields are the columns item listings can be filtered and ordered by.
var ItemFields = util.FieldSet{
	"id":         util.KindInteger,
	"name":       util.KindText,
	"category":   util.KindText,
	"condition":  util.KindText,
	"age_days":   util.KindInteger,
	"age_years":  util.KindNumber,
	"date_added": util.KindInteger,
}

type ItemRepository interface {
	// Create assigns item.ID from the store.
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)
	Count(ctx context.Context, filter ItemFilter) (int, error)
}
