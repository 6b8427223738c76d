package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/secondchance/internal/core/domain"
	"github.com/martijn/secondchance/internal/core/repository"
)

const itemColumns = `id, name, category, condition, description, age_days, age_years, image, date_added, updated_at`

type itemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// Create inserts the item and lets the store allocate its id.
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := r.db.Rebind(`
		INSERT INTO items (name, category, condition, description, age_days, age_years, image, date_added, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		item.Name,
		item.Category,
		item.Condition,
		item.Description,
		item.AgeDays,
		item.AgeYears,
		item.Image,
		item.DateAdded,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := r.db.Rebind(`SELECT ` + itemColumns + ` FROM items WHERE id = ?`)

	var item domain.Item
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

// Update writes the mutable columns; date_added is never touched.
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := r.db.Rebind(`
		UPDATE items
		SET name = ?, category = ?, condition = ?, description = ?, age_days = ?, age_years = ?, image = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Condition,
		item.Description,
		item.AgeDays,
		item.AgeYears,
		item.Image,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item %d: %w", item.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM items WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item %d: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *itemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []interface{}{}

	// Apply filters
	query, args = ApplyFilters(query, args, filter.Filters)

	// Apply ordering
	query = ApplyOrdering(query, filter.Order, "id ASC")

	// Apply pagination
	query, args = ApplyPagination(query, args, filter.Page, filter.PerPage)

	var items []*domain.Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) Count(ctx context.Context, filter repository.ItemFilter) (int, error) {
	query := `SELECT COUNT(*) FROM items WHERE 1=1`
	args := []interface{}{}

	query, args = ApplyFilters(query, args, filter.Filters)

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}
