package service

import (
	"context"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"

	"github.com/google/uuid"
)

// CatalogService covers the reference lists edited on the admin screen:
// product groups, warehouses and customers.
type CatalogService interface {
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context) ([]dto.GroupResponse, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, req dto.UpdateGroupRequest) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) error
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error

	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error)
	SearchCustomers(ctx context.Context, term string) ([]dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	groups     repository.ProductGroupRepository
	warehouses repository.WarehouseRepository
	customers  repository.CustomerRepository
}

func NewCatalogService(
	groups repository.ProductGroupRepository,
	warehouses repository.WarehouseRepository,
	customers repository.CustomerRepository,
) CatalogService {
	return &catalogService{groups: groups, warehouses: warehouses, customers: customers}
}

// setIf adds *v under col when the request carried the field.
func setIf[T any](fields map[string]interface{}, col string, v *T) {
	if v != nil {
		fields[col] = *v
	}
}

// ── Product groups ───────────────────────────────────────────────────────────

func mapGroup(g model.ProductGroup) dto.GroupResponse {
	return dto.GroupResponse{ID: g.ID, Name: g.Name, Description: g.Description}
}

func (s *catalogService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	g := &model.ProductGroup{Name: req.Name, Description: req.Description}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, storeErr(err)
	}
	resp := mapGroup(*g)
	return &resp, nil
}

func (s *catalogService) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	list, err := s.groups.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, mapGroup(g))
	}
	return out, nil
}

func (s *catalogService) UpdateGroup(ctx context.Context, id uuid.UUID, req dto.UpdateGroupRequest) error {
	fields := make(map[string]interface{})
	setIf(fields, "name", req.Name)
	setIf(fields, "description", req.Description)
	return storeErr(s.groups.Update(ctx, id, fields))
}

func (s *catalogService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.groups.Delete(ctx, id))
}

// ── Warehouses ───────────────────────────────────────────────────────────────

func mapWarehouse(w model.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:       w.ID,
		Name:     w.Name,
		Location: w.Location,
		Manager:  w.Manager,
		Email:    w.Email,
		Remarks:  w.Remarks,
	}
}

func (s *catalogService) CreateWarehouse(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w := &model.Warehouse{
		Name:     req.Name,
		Location: req.Location,
		Manager:  req.Manager,
		Email:    req.Email,
		Remarks:  req.Remarks,
	}
	if err := s.warehouses.Create(ctx, w); err != nil {
		return nil, storeErr(err)
	}
	resp := mapWarehouse(*w)
	return &resp, nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := s.warehouses.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, mapWarehouse(w))
	}
	return out, nil
}

func (s *catalogService) UpdateWarehouse(ctx context.Context, id uuid.UUID, req dto.UpdateWarehouseRequest) error {
	fields := make(map[string]interface{})
	setIf(fields, "name", req.Name)
	setIf(fields, "location", req.Location)
	setIf(fields, "manager", req.Manager)
	setIf(fields, "email", req.Email)
	setIf(fields, "remarks", req.Remarks)
	return storeErr(s.warehouses.Update(ctx, id, fields))
}

func (s *catalogService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.warehouses.Delete(ctx, id))
}

// ── Customers ────────────────────────────────────────────────────────────────

func mapCustomer(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		DouzoneNumber: c.DouzoneNumber,
		Name:          c.Name,
		Contact:       c.Contact,
		Email:         c.Email,
		Address:       c.Address,
		Remarks:       c.Remarks,
	}
}

func mapCustomers(list []model.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCustomer(c))
	}
	return out
}

func (s *catalogService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		DouzoneNumber: req.DouzoneNumber,
		Name:          req.Name,
		Contact:       req.Contact,
		Email:         req.Email,
		Address:       req.Address,
		Remarks:       req.Remarks,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, storeErr(err)
	}
	resp := mapCustomer(*c)
	return &resp, nil
}

func (s *catalogService) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return mapCustomers(list), nil
}

func (s *catalogService) SearchCustomers(ctx context.Context, term string) ([]dto.CustomerResponse, error) {
	if term == "" {
		return s.ListCustomers(ctx)
	}
	list, err := s.customers.Search(ctx, term)
	if err != nil {
		return nil, storeErr(err)
	}
	return mapCustomers(list), nil
}

func (s *catalogService) UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) error {
	fields := make(map[string]interface{})
	setIf(fields, "douzone_number", req.DouzoneNumber)
	setIf(fields, "name", req.Name)
	setIf(fields, "contact", req.Contact)
	setIf(fields, "email", req.Email)
	setIf(fields, "address", req.Address)
	setIf(fields, "remarks", req.Remarks)
	return storeErr(s.customers.Update(ctx, id, fields))
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.customers.Delete(ctx, id))
}
