package service

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ItemService manages the item master. Quantity changes normally go through
// LedgerService; Update with a quantity is the admin correction path.
type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemService struct {
	repo             repository.ItemRepository
	defaultWarehouse string
}

func NewItemService(repo repository.ItemRepository, defaultWarehouse string) ItemService {
	return &itemService{repo: repo, defaultWarehouse: defaultWarehouse}
}

func mapItem(it model.Item, defaultWarehouse string) dto.ItemResponse {
	return dto.ItemResponse{
		ID:         it.ID,
		Name:       it.Name,
		Group:      it.Group,
		Warehouse:  it.WarehouseOr(defaultWarehouse),
		PartNumber: it.PartNumber,
		Quantity:   it.Quantity,
		Price:      it.Price,
		Remarks:    it.Remarks,
	}
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if req.Quantity < 0 {
		return nil, invalidf("quantity must not be negative")
	}
	it := &model.Item{
		Name:       req.Name,
		Group:      req.Group,
		Warehouse:  req.Warehouse,
		PartNumber: req.PartNumber,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Remarks:    req.Remarks,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, storeErr(err)
	}
	resp := mapItem(*it, s.defaultWarehouse)
	return &resp, nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := mapItem(*it, s.defaultWarehouse)
	return &resp, nil
}

func (s *itemService) List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error) {
	rf := repository.ItemFilter{Warehouse: filter.Warehouse, Group: filter.Group, Name: filter.Name}
	// Items saved without a warehouse live in the default one.
	rf.IncludeUnassigned = filter.Warehouse != "" && filter.Warehouse == s.defaultWarehouse
	items, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, mapItem(it, s.defaultWarehouse))
	}
	return out, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Group != nil {
		fields["product_group"] = *req.Group
	}
	if req.Warehouse != nil {
		fields["warehouse"] = *req.Warehouse
	}
	if req.PartNumber != nil {
		fields["part_number"] = *req.PartNumber
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, invalidf("quantity must not be negative")
		}
		fields["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, storeErr(err)
	}
	if req.Quantity != nil {
		log.Warn().
			Str("item_id", id.String()).
			Int("quantity", *req.Quantity).
			Msg("item: quantity overridden outside the ledger")
	}
	return s.Get(ctx, id)
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.repo.Delete(ctx, id))
}
