package dto

import "github.com/google/uuid"

// ── Product groups ───────────────────────────────────────────────────────────

type CreateGroupRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ── Warehouses ───────────────────────────────────────────────────────────────

type CreateWarehouseRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Remarks  string `json:"remarks"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Location *string `json:"location"`
	Manager  *string `json:"manager"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Remarks  *string `json:"remarks"`
}

type WarehouseResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Manager  string    `json:"manager"`
	Email    string    `json:"email"`
	Remarks  string    `json:"remarks"`
}

// ── Customers ────────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	DouzoneNumber string `json:"douzone_number"`
	Name          string `json:"name"           validate:"required,min=1,max=200"`
	Contact       string `json:"contact"`
	Email         string `json:"email"          validate:"omitempty,email"`
	Address       string `json:"address"`
	Remarks       string `json:"remarks"`
}

type UpdateCustomerRequest struct {
	DouzoneNumber *string `json:"douzone_number"`
	Name          *string `json:"name"           validate:"omitempty,min=1,max=200"`
	Contact       *string `json:"contact"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"`
	Remarks       *string `json:"remarks"`
}

type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	DouzoneNumber string    `json:"douzone_number"`
	Name          string    `json:"name"`
	Contact       string    `json:"contact"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Remarks       string    `json:"remarks"`
}
