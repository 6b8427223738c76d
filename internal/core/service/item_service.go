package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/martijn/secondchance/internal/core/domain"
	"github.com/martijn/secondchance/internal/core/repository"
)

const msgItemNotFound = "Item not found"

type CreateItemInput struct {
	Name        string
	Category    string
	Condition   string
	Description string
	AgeDays     int `validate:"gte=0,lte=2147483647" label:"age_days"`
}

type updateItemCheck struct {
	AgeDays *int `validate:"omitnil,gte=0,lte=2147483647" label:"age_days"`
}

// ImageUpload is an optional file attached to a new item.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ItemService struct {
	itemRepo repository.ItemRepository
	images   repository.ImageStore
	validate *validator.Validate
}

func NewItemService(itemRepo repository.ItemRepository, images repository.ImageStore) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		images:   images,
		validate: newValidator(),
	}
}

// ListItems returns the matching items and the total count ignoring
// pagination. An empty filter returns the whole collection.
func (s *ItemService) ListItems(ctx context.Context, filter repository.ItemFilter) ([]*domain.Item, int, error) {
	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, NewInternalError("failed to list items", err)
	}
	if items == nil {
		items = []*domain.Item{}
	}

	total := len(items)
	if filter.PerPage > 0 {
		total, err = s.itemRepo.Count(ctx, filter)
		if err != nil {
			return nil, 0, NewInternalError("failed to count items", err)
		}
	}

	return items, total, nil
}

// CreateItem stores a new item with a store-assigned id and returns the
// persisted record.
func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput, upload *ImageUpload) (*domain.Item, error) {
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	item := domain.NewItem(
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.Category),
		strings.TrimSpace(in.Condition),
		in.Description,
		in.AgeDays,
	)

	writeCtx := context.WithoutCancel(ctx)

	if upload != nil {
		if s.images == nil {
			return nil, NewInternalError("failed to store image", fmt.Errorf("no image store configured"))
		}
		ref, err := s.images.Save(writeCtx, upload.Filename, upload.ContentType, upload.Body, upload.Size)
		if err != nil {
			return nil, NewInternalError("failed to store image", err)
		}
		item.Image = ref
	}

	if err := s.itemRepo.Create(writeCtx, item); err != nil {
		if item.Image != "" {
			if delErr := s.images.Delete(writeCtx, item.Image); delErr != nil {
				err = errors.Join(err, delErr)
			}
		}
		return nil, NewInternalError("failed to create item", err)
	}

	stored, err := s.itemRepo.FindByID(writeCtx, item.ID)
	if err != nil {
		return nil, NewInternalError("failed to read created item", err)
	}

	return stored, nil
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(msgItemNotFound)
		}
		return nil, NewInternalError("failed to get item", err)
	}
	return item, nil
}

// UpdateItem applies a partial update and returns the post-update record.
func (s *ItemService) UpdateItem(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(s.validate, updateItemCheck{AgeDays: patch.AgeDays}); err != nil {
		return nil, err
	}

	item.Apply(patch)

	writeCtx := context.WithoutCancel(ctx)
	if err := s.itemRepo.Update(writeCtx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(msgItemNotFound)
		}
		return nil, NewInternalError("failed to update item", err)
	}

	updated, err := s.itemRepo.FindByID(writeCtx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(msgItemNotFound)
		}
		return nil, NewInternalError("failed to read updated item", err)
	}

	return updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.itemRepo.Delete(context.WithoutCancel(ctx), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError(msgItemNotFound)
		}
		return NewInternalError("failed to delete item", err)
	}
	return nil
}
