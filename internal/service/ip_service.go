package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/ipam"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"
	"github.com/lyb5737-lyb77/inventory-management/internal/sheet"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// unknownRange labels search hits whose range has been deleted.
const unknownRange = "Unknown Range"

// importWriters bounds the concurrent upserts of a sheet import.
const importWriters = 8

// IPService manages address ranges and their per-address assignments.
type IPService interface {
	ListRanges(ctx context.Context) ([]dto.DeviceRanges, error)
	CreateRange(ctx context.Context, req dto.CreateRangeRequest) (*dto.RangeResponse, error)
	DeleteRange(ctx context.Context, id uuid.UUID) error
	ListDetails(ctx context.Context) ([]dto.DetailResponse, error)
	SaveDetail(ctx context.Context, req dto.SaveDetailRequest) (*dto.DetailResponse, error)
	ResetDetail(ctx context.Context, id uuid.UUID) (*dto.DetailResponse, error)
	DisplayRows(ctx context.Context, rangeID uuid.UUID) (*dto.RangeRowsResponse, error)
	Search(ctx context.Context, term string) ([]dto.IPSearchResult, error)
	ImportSheet(ctx context.Context, r io.Reader) (*dto.IPImportResponse, error)
}

type ipService struct {
	repo    repository.IPRepository
	maxSize int
}

func NewIPService(repo repository.IPRepository, maxRangeSize int) IPService {
	if maxRangeSize <= 0 {
		maxRangeSize = ipam.DefaultMaxRangeSize
	}
	return &ipService{repo: repo, maxSize: maxRangeSize}
}

// ipErr maps address and range validation failures to ErrInvalidInput.
func ipErr(err error) error {
	if errors.Is(err, ipam.ErrInvalidAddress) ||
		errors.Is(err, ipam.ErrInvalidRange) ||
		errors.Is(err, ipam.ErrRangeTooLarge) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

func mapRange(r model.IPRange) dto.RangeResponse {
	resp := dto.RangeResponse{
		ID:          r.ID,
		Title:       r.Title,
		Device:      r.Device,
		StartIP:     r.StartIP,
		EndIP:       r.EndIP,
		Gateway:     r.Gateway,
		SubnetMask:  r.SubnetMask,
		Description: r.Description,
	}
	if lo, hi, err := ipam.Span(r.StartIP, r.EndIP); err == nil {
		resp.Size = int(uint64(hi) - uint64(lo) + 1)
	}
	return resp
}

func mapDetail(d model.IPDetail) dto.DetailResponse {
	return dto.DetailResponse{
		ID:         d.ID,
		RangeID:    d.RangeID,
		IPAddress:  d.IPAddress,
		Department: d.Department,
		User:       d.User,
		Usage:      d.Usage,
		Status:     d.Status,
	}
}

func (s *ipService) ListRanges(ctx context.Context) ([]dto.DeviceRanges, error) {
	ranges, err := s.repo.ListRanges(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := []dto.DeviceRanges{}
	pos := make(map[string]int)
	for _, r := range ranges {
		i, ok := pos[r.Device]
		if !ok {
			i = len(out)
			pos[r.Device] = i
			out = append(out, dto.DeviceRanges{Device: r.Device})
		}
		out[i].Ranges = append(out[i].Ranges, mapRange(r))
	}
	return out, nil
}

func (s *ipService) CreateRange(ctx context.Context, req dto.CreateRangeRequest) (*dto.RangeResponse, error) {
	start := strings.TrimSpace(req.StartIP)
	end := strings.TrimSpace(req.EndIP)
	if _, _, err := ipam.Span(start, end); err != nil {
		return nil, ipErr(err)
	}
	r := &model.IPRange{
		Title:       req.Title,
		Device:      req.Device,
		StartIP:     start,
		EndIP:       end,
		Gateway:     req.Gateway,
		SubnetMask:  req.SubnetMask,
		Description: req.Description,
	}
	if err := s.repo.CreateRange(ctx, r); err != nil {
		return nil, storeErr(err)
	}
	resp := mapRange(*r)
	return &resp, nil
}

func (s *ipService) DeleteRange(ctx context.Context, id uuid.UUID) error {
	return storeErr(s.repo.DeleteRange(ctx, id))
}

func (s *ipService) ListDetails(ctx context.Context) ([]dto.DetailResponse, error) {
	details, err := s.repo.ListDetails(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.DetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, mapDetail(d))
	}
	return out, nil
}

func (s *ipService) SaveDetail(ctx context.Context, req dto.SaveDetailRequest) (*dto.DetailResponse, error) {
	rangeID, err := uuid.Parse(req.RangeID)
	if err != nil {
		return nil, invalidf("range_id %q", req.RangeID)
	}
	ip := strings.TrimSpace(req.IPAddress)
	if _, err := ipam.IPToInt(ip); err != nil {
		return nil, ipErr(err)
	}
	if _, err := s.repo.FindRange(ctx, rangeID); err != nil {
		return nil, storeErr(err)
	}

	d := &model.IPDetail{
		RangeID:    rangeID,
		IPAddress:  ip,
		Department: strings.TrimSpace(req.Department),
		User:       strings.TrimSpace(req.User),
		Usage:      strings.TrimSpace(req.Usage),
	}
	d.Status = ipam.DeriveStatus(d.Department, d.User, d.Usage)
	if err := s.repo.UpsertDetail(ctx, d); err != nil {
		return nil, storeErr(err)
	}
	resp := mapDetail(*d)
	return &resp, nil
}

func (s *ipService) ResetDetail(ctx context.Context, id uuid.UUID) (*dto.DetailResponse, error) {
	d, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	d.Department, d.User, d.Usage = "", "", ""
	d.Status = ipam.StatusAvailable
	if err := s.repo.UpsertDetail(ctx, d); err != nil {
		return nil, storeErr(err)
	}
	resp := mapDetail(*d)
	return &resp, nil
}

func (s *ipService) DisplayRows(ctx context.Context, rangeID uuid.UUID) (*dto.RangeRowsResponse, error) {
	r, err := s.repo.FindRange(ctx, rangeID)
	if err != nil {
		return nil, storeErr(err)
	}
	details, err := s.repo.ListDetailsByRange(ctx, rangeID)
	if err != nil {
		return nil, storeErr(err)
	}
	rows, err := ipam.ResolveDisplayRows(*r, details, s.maxSize)
	if err != nil {
		return nil, ipErr(err)
	}
	return &dto.RangeRowsResponse{Range: mapRange(*r), Rows: rows}, nil
}

// Search matches the address as a substring and department/user
// case-insensitively.
func (s *ipService) Search(ctx context.Context, term string) ([]dto.IPSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.IPSearchResult{}, nil
	}
	details, err := s.repo.ListDetails(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	ranges, err := s.repo.ListRanges(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	titles := make(map[uuid.UUID]string, len(ranges))
	for _, r := range ranges {
		titles[r.ID] = r.Title
	}

	needle := strings.ToLower(term)
	out := []dto.IPSearchResult{}
	for _, d := range details {
		if !strings.Contains(d.IPAddress, term) &&
			!strings.Contains(strings.ToLower(d.User), needle) &&
			!strings.Contains(strings.ToLower(d.Department), needle) {
			continue
		}
		title, ok := titles[d.RangeID]
		if !ok {
			title = unknownRange
		}
		out = append(out, dto.IPSearchResult{DetailResponse: mapDetail(d), RangeName: title})
	}
	return out, nil
}

// ImportSheet applies an inventory spreadsheet. Rows outside every range or
// with a malformed address are counted as skipped.
func (s *ipService) ImportSheet(ctx context.Context, r io.Reader) (*dto.IPImportResponse, error) {
	rows, err := sheet.ReadIPInventory(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ranges, err := s.repo.ListRanges(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	existing, err := s.repo.ListDetails(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	in := make([]ipam.ImportRow, 0, len(rows))
	for _, row := range rows {
		in = append(in, ipam.ImportRow{
			IPAddress:  row.IPAddress,
			Department: row.Department,
			User:       row.User,
			Usage:      row.Usage,
		})
	}
	plan := ipam.BulkAssignFromImport(in, ranges, existing)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importWriters)
	for i := range plan.Upserts {
		d := &plan.Upserts[i]
		g.Go(func() error {
			return s.repo.UpsertDetail(gctx, d)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	log.Info().
		Int("rows", len(rows)).
		Int("updated", len(plan.Upserts)).
		Int("skipped", plan.Skipped).
		Msg("ip: sheet imported")

	return &dto.IPImportResponse{
		TotalRows: len(rows),
		Updated:   len(plan.Upserts),
		Skipped:   plan.Skipped,
	}, nil
}
