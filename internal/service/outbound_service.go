package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	outboundRemarkPrefix = "[출고신청] "
	noRemarks            = "없음"
	unknownRequester     = "Unknown User"
)

// OutboundNotifier delivers the outbound request to the warehouse manager.
type OutboundNotifier interface {
	SendOutbound(ctx context.Context, n dto.OutboundNotice) error
}

// IdempotencyStore claims request keys so a resubmitted form is rejected.
type IdempotencyStore interface {
	// Claim returns false when key is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// OutboundService turns an outbound form into a manager notification followed
// by one OUT transaction per line.
type OutboundService interface {
	Submit(ctx context.Context, req dto.OutboundRequest, requester string) (*dto.OutboundResponse, error)
}

type OutboundConfig struct {
	MaxItems       int
	IdempotencyTTL time.Duration
}

type outboundService struct {
	ledger     LedgerService
	warehouses repository.WarehouseRepository
	customers  repository.CustomerRepository
	notifier   OutboundNotifier
	keys       IdempotencyStore // nil disables request de-duplication
	cfg        OutboundConfig
	now        func() time.Time
}

func NewOutboundService(
	ledger LedgerService,
	warehouses repository.WarehouseRepository,
	customers repository.CustomerRepository,
	notifier OutboundNotifier,
	keys IdempotencyStore,
	cfg OutboundConfig,
) OutboundService {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 3
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 10 * time.Minute
	}
	return &outboundService{
		ledger:     ledger,
		warehouses: warehouses,
		customers:  customers,
		notifier:   notifier,
		keys:       keys,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *outboundService) Submit(ctx context.Context, req dto.OutboundRequest, requester string) (*dto.OutboundResponse, error) {
	if len(req.Items) == 0 || len(req.Items) > s.cfg.MaxItems {
		return nil, invalidf("between 1 and %d items per request", s.cfg.MaxItems)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, invalidf("customer_id %q", req.CustomerID)
	}

	// Repeated lines for one item are checked against the summed quantity.
	wanted := make(map[uuid.UUID]int, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		id, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, invalidf("item_id %q", line.ItemID)
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		wanted[id] += line.Quantity
		ids = append(ids, id)
	}

	var (
		warehouse *model.Warehouse
		customer  *model.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.warehouses.FindByName(gctx, req.Warehouse)
		if err != nil {
			return storeErr(err)
		}
		warehouse = w
		return nil
	})
	g.Go(func() error {
		c, err := s.customers.FindByID(gctx, customerID)
		if err != nil {
			return storeErr(err)
		}
		customer = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(warehouse.Email) == "" {
		return nil, invalidf("warehouse %s has no manager email", warehouse.Name)
	}

	names := make(map[uuid.UUID]string, len(wanted))
	for id, qty := range wanted {
		item, err := s.ledger.EnsureAvailable(ctx, id, qty)
		if err != nil {
			return nil, err
		}
		names[id] = item.Name
	}

	if req.RequestKey != "" && s.keys != nil {
		ok, err := s.keys.Claim(ctx, req.RequestKey, s.cfg.IdempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: idempotency: %v", ErrStoreUnavailable, err)
		}
		if !ok {
			return nil, ErrDuplicateRequest
		}
	}

	if requester == "" {
		requester = unknownRequester
	}
	remarks := strings.TrimSpace(req.Remarks)
	notice := dto.OutboundNotice{
		WarehouseName:   warehouse.Name,
		ManagerEmail:    warehouse.Email,
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerContact: customer.Contact,
		RequesterName:   requester,
		Remarks:         remarks,
		RequestedOn:     s.now().Format(dateLayout),
	}
	if notice.Remarks == "" {
		notice.Remarks = noRemarks
	}
	for i, line := range req.Items {
		notice.Items = append(notice.Items, dto.OutboundNoticeLine{
			ItemID:   ids[i],
			Name:     names[ids[i]],
			Quantity: line.Quantity,
		})
	}

	if err := s.notifier.SendOutbound(ctx, notice); err != nil {
		log.Error().
			Err(err).
			Str("warehouse", warehouse.Name).
			Str("to", warehouse.Email).
			Msg("outbound: notification failed, nothing recorded")
		if req.RequestKey != "" && s.keys != nil {
			if rerr := s.keys.Release(ctx, req.RequestKey); rerr != nil {
				log.Warn().Err(rerr).Str("request_key", req.RequestKey).Msg("outbound: release request key")
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrNotificationFail, err)
	}

	resp := &dto.OutboundResponse{
		Warehouse:    warehouse.Name,
		Customer:     customer.Name,
		NotifiedTo:   warehouse.Email,
		Transactions: make([]dto.TransactionResponse, 0, len(req.Items)),
	}
	for i, line := range req.Items {
		t, err := s.ledger.RecordTransaction(ctx, dto.RecordTransactionRequest{
			ItemID:    ids[i].String(),
			Type:      model.TxOut,
			Quantity:  line.Quantity,
			Date:      notice.RequestedOn,
			Warehouse: warehouse.Name,
			Target:    customer.Name,
			Remarks:   outboundRemarkPrefix + remarks,
		})
		if err != nil {
			// The manager has already been mailed; the key stays claimed so a
			// retry does not notify twice.
			log.Error().
				Err(err).
				Str("item_id", ids[i].String()).
				Int("recorded", len(resp.Transactions)).
				Msg("outbound: transaction not recorded after notification")
			return nil, err
		}
		resp.Transactions = append(resp.Transactions, *t)
	}

	log.Info().
		Str("warehouse", warehouse.Name).
		Str("customer", customer.Name).
		Int("items", len(req.Items)).
		Msg("outbound: request submitted")
	return resp, nil
}
