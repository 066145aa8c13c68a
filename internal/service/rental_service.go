package service

import (
	"context"
	"fmt"
	"io"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"
	"github.com/lyb5737-lyb77/inventory-management/internal/sheet"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RentalService manages lease contracts and their spreadsheet exchange.
type RentalService interface {
	List(ctx context.Context) ([]dto.RentalResponse, error)
	Create(ctx context.Context, req dto.CreateRentalRequest) (*dto.RentalResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRentalRequest) (*dto.RentalResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, r io.Reader) (*dto.RentalImportResponse, error)
	Export(ctx context.Context, w io.Writer) error
}

type rentalService struct {
	repo repository.RentalRepository
}

func NewRentalService(repo repository.RentalRepository) RentalService {
	return &rentalService{repo: repo}
}

func mapRental(r model.Rental) dto.RentalResponse {
	return dto.RentalResponse{
		ID:                r.ID,
		Type:              r.Type,
		Ho:                r.Ho,
		Area:              r.Area,
		TenantName:        r.TenantName,
		Contact:           r.Contact,
		Email:             r.Email,
		RentalType:        r.RentalType,
		Deposit:           r.Deposit,
		MonthlyRent:       r.MonthlyRent,
		MaintenanceFee:    r.MaintenanceFee,
		ParkingFee:        r.ParkingFee,
		PaymentDate:       r.PaymentDate,
		ContractStartDate: r.ContractStartDate,
		ContractEndDate:   r.ContractEndDate,
		Remarks:           r.Remarks,
	}
}

func (s *rentalService) List(ctx context.Context) ([]dto.RentalResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.RentalResponse, 0, len(list))
	for _, r := range list {
		out = append(out, mapRental(r))
	}
	return out, nil
}

func (s *rentalService) Create(ctx context.Context, req dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	r := &model.Rental{
		Type:              req.Type,
		Ho:                req.Ho,
		Area:              req.Area,
		TenantName:        req.TenantName,
		Contact:           req.Contact,
		Email:             req.Email,
		RentalType:        req.RentalType,
		Deposit:           req.Deposit,
		MonthlyRent:       req.MonthlyRent,
		MaintenanceFee:    req.MaintenanceFee,
		ParkingFee:        req.ParkingFee,
		PaymentDate:       req.PaymentDate,
		ContractStartDate: req.ContractStartDate,
		ContractEndDate:   req.ContractEndDate,
		Remarks:           req.Remarks,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, storeErr(err)
	}
	resp := mapRental(*r)
	return &resp, nil
}

func (s *rentalService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRentalRequest) (*dto.RentalResponse, error) {
	fields := make(map[string]interface{})
	setIf(fields, "type", req.Type)
	setIf(fields, "ho", req.Ho)
	setIf(fields, "area", req.Area)
	setIf(fields, "tenant_name", req.TenantName)
	setIf(fields, "contact", req.Contact)
	setIf(fields, "email", req.Email)
	setIf(fields, "rental_type", req.RentalType)
	setIf(fields, "deposit", req.Deposit)
	setIf(fields, "monthly_rent", req.MonthlyRent)
	setIf(fields, "maintenance_fee", req.MaintenanceFee)
	setIf(fields, "parking_fee", req.ParkingFee)
	setIf(fields, "payment_date", req.PaymentDate)
	setIf(fields, "contract_start_date", req.ContractStartDate)
	setIf(fields, "contract_end_date", req.ContractEndDate)
	setIf(fields, "remarks", req.Remarks)

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, storeErr(err)
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := mapRental(*r)
	return &resp, nil
}

func (s *rentalService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.repo.Delete(ctx, id))
}

// Import appends every contract row of the sheet. Existing rentals are not
// matched or replaced.
func (s *rentalService) Import(ctx context.Context, r io.Reader) (*dto.RentalImportResponse, error) {
	rows, warns, err := sheet.ReadRentals(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	imported := 0
	for _, row := range rows {
		m := &model.Rental{
			Type:              row.Type,
			Ho:                row.Ho,
			Area:              row.Area,
			TenantName:        row.TenantName,
			Contact:           row.Contact,
			Email:             row.Email,
			RentalType:        row.RentalType,
			Deposit:           row.Deposit,
			MonthlyRent:       row.MonthlyRent,
			MaintenanceFee:    row.MaintenanceFee,
			ParkingFee:        row.ParkingFee,
			PaymentDate:       row.PaymentDate,
			ContractStartDate: row.ContractStartDate,
			ContractEndDate:   row.ContractEndDate,
			Remarks:           row.Remarks,
		}
		if err := s.repo.Create(ctx, m); err != nil {
			log.Error().Err(err).Int("imported", imported).Msg("rental: import aborted")
			return nil, storeErr(err)
		}
		imported++
	}
	if len(warns) > 0 {
		log.Warn().Strs("warnings", warns).Msg("rental: import coerced values")
	}
	return &dto.RentalImportResponse{Imported: imported, Warnings: warns}, nil
}

func (s *rentalService) Export(ctx context.Context, w io.Writer) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return storeErr(err)
	}
	rows := make([]sheet.RentalRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, sheet.RentalRow{
			Type:              r.Type,
			Ho:                r.Ho,
			Area:              r.Area,
			TenantName:        r.TenantName,
			Contact:           r.Contact,
			Email:             r.Email,
			RentalType:        r.RentalType,
			Deposit:           r.Deposit,
			MonthlyRent:       r.MonthlyRent,
			MaintenanceFee:    r.MaintenanceFee,
			ParkingFee:        r.ParkingFee,
			PaymentDate:       r.PaymentDate,
			ContractStartDate: r.ContractStartDate,
			ContractEndDate:   r.ContractEndDate,
			Remarks:           r.Remarks,
		})
	}
	return sheet.WriteRentals(w, rows)
}
