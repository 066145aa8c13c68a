package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory ItemRepository stub ────────────────────────────────────────────

type stubItemRepo struct {
	items     map[uuid.UUID]*model.Item
	adjustErr error
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, it *model.Item) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	r.items[it.ID] = it
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *stubItemRepo) List(_ context.Context, f repository.ItemFilter) ([]model.Item, error) {
	var out []model.Item
	for _, it := range r.items {
		if f.Warehouse != "" && it.Warehouse != f.Warehouse && !(f.IncludeUnassigned && it.Warehouse == "") {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	it, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			it.Name = v.(string)
		case "warehouse":
			it.Warehouse = v.(string)
		case "quantity":
			it.Quantity = v.(int)
		case "remarks":
			it.Remarks = v.(string)
		}
	}
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	it, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	it.Quantity += delta
	return nil
}

// DB returns nil so services run their unit-test path without a transaction.
func (r *stubItemRepo) DB() *gorm.DB { return nil }

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// ── In-memory TransactionRepository stub ─────────────────────────────────────

type stubTxRepo struct {
	txs []model.Transaction
}

func (r *stubTxRepo) Create(_ context.Context, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.txs = append(r.txs, *t)
	return nil
}

func (r *stubTxRepo) CreateTx(_ *gorm.DB, t *model.Transaction) error {
	return r.Create(context.Background(), t)
}

func (r *stubTxRepo) List(_ context.Context, f repository.TransactionFilter) ([]model.Transaction, int64, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if f.ItemID != nil && t.ItemID != *f.ItemID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTxRepo) ListByDateRange(_ context.Context, start, end string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTxRepo) ListByItem(_ context.Context, id uuid.UUID) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if t.ItemID == id {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTxRepo) ListAll(_ context.Context) ([]model.Transaction, error) {
	return append([]model.Transaction(nil), r.txs...), nil
}

var _ repository.TransactionRepository = (*stubTxRepo)(nil)

// ── In-memory IPRepository stub ──────────────────────────────────────────────

type stubIPRepo struct {
	mu      sync.Mutex
	ranges  []model.IPRange
	details map[uuid.UUID]*model.IPDetail
}

func newStubIPRepo() *stubIPRepo {
	return &stubIPRepo{details: make(map[uuid.UUID]*model.IPDetail)}
}

func (r *stubIPRepo) ListRanges(_ context.Context) ([]model.IPRange, error) {
	return append([]model.IPRange(nil), r.ranges...), nil
}

func (r *stubIPRepo) FindRange(_ context.Context, id uuid.UUID) (*model.IPRange, error) {
	for _, rg := range r.ranges {
		if rg.ID == id {
			cp := rg
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubIPRepo) CreateRange(_ context.Context, rg *model.IPRange) error {
	if rg.ID == uuid.Nil {
		rg.ID = uuid.New()
	}
	r.ranges = append(r.ranges, *rg)
	return nil
}

func (r *stubIPRepo) DeleteRange(_ context.Context, id uuid.UUID) error {
	for i, rg := range r.ranges {
		if rg.ID == id {
			r.ranges = append(r.ranges[:i], r.ranges[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubIPRepo) ListDetails(_ context.Context) ([]model.IPDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.IPDetail, 0, len(r.details))
	for _, d := range r.details {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IPAddress < out[j].IPAddress })
	return out, nil
}

func (r *stubIPRepo) ListDetailsByRange(ctx context.Context, rangeID uuid.UUID) ([]model.IPDetail, error) {
	all, _ := r.ListDetails(ctx)
	var out []model.IPDetail
	for _, d := range all {
		if d.RangeID == rangeID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubIPRepo) FindDetail(_ context.Context, id uuid.UUID) (*model.IPDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.details[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubIPRepo) UpsertDetail(_ context.Context, d *model.IPDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.details {
		if cur.RangeID == d.RangeID && cur.IPAddress == d.IPAddress {
			d.ID = cur.ID
			break
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.details[d.ID] = &cp
	return nil
}

func (r *stubIPRepo) detailAt(rangeID uuid.UUID, ip string) (*model.IPDetail, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.details {
		if d.RangeID == rangeID && d.IPAddress == ip {
			return d, true
		}
	}
	return nil, false
}

var _ repository.IPRepository = (*stubIPRepo)(nil)

// ── Catalog stubs ────────────────────────────────────────────────────────────

type stubGroupRepo struct {
	rows []model.ProductGroup
}

func (r *stubGroupRepo) Create(_ context.Context, g *model.ProductGroup) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.rows = append(r.rows, *g)
	return nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductGroup, error) {
	for _, g := range r.rows {
		if g.ID == id {
			cp := g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubGroupRepo) List(_ context.Context) ([]model.ProductGroup, error) {
	return append([]model.ProductGroup(nil), r.rows...), nil
}

func (r *stubGroupRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if v, ok := fields["name"]; ok {
			r.rows[i].Name = v.(string)
		}
		if v, ok := fields["description"]; ok {
			r.rows[i].Description = v.(string)
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, g := range r.rows {
		if g.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.ProductGroupRepository = (*stubGroupRepo)(nil)

type stubWarehouseRepo struct {
	rows []model.Warehouse
}

func (r *stubWarehouseRepo) Create(_ context.Context, w *model.Warehouse) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.rows = append(r.rows, *w)
	return nil
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	for _, w := range r.rows {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) FindByName(_ context.Context, name string) (*model.Warehouse, error) {
	for _, w := range r.rows {
		if w.Name == name {
			cp := w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) List(_ context.Context) ([]model.Warehouse, error) {
	return append([]model.Warehouse(nil), r.rows...), nil
}

func (r *stubWarehouseRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if v, ok := fields["email"]; ok {
			r.rows[i].Email = v.(string)
		}
		if v, ok := fields["manager"]; ok {
			r.rows[i].Manager = v.(string)
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, w := range r.rows {
		if w.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.WarehouseRepository = (*stubWarehouseRepo)(nil)

type stubCustomerRepo struct {
	rows []model.Customer
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.rows = append(r.rows, *c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	for _, c := range r.rows {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	return append([]model.Customer(nil), r.rows...), nil
}

func (r *stubCustomerRepo) Search(_ context.Context, term string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.rows {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) ||
			strings.Contains(c.DouzoneNumber, term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id uuid.UUID, _ map[string]interface{}) error {
	_, err := r.FindByID(context.Background(), id)
	return err
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range r.rows {
		if c.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubRentalRepo struct {
	rows      []model.Rental
	createErr error
}

func (r *stubRentalRepo) Create(_ context.Context, m *model.Rental) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.rows = append(r.rows, *m)
	return nil
}

func (r *stubRentalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Rental, error) {
	for _, m := range r.rows {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRentalRepo) List(_ context.Context) ([]model.Rental, error) {
	return append([]model.Rental(nil), r.rows...), nil
}

func (r *stubRentalRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if v, ok := fields["tenant_name"]; ok {
			r.rows[i].TenantName = v.(string)
		}
		if v, ok := fields["remarks"]; ok {
			r.rows[i].Remarks = v.(string)
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRentalRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, m := range r.rows {
		if m.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.RentalRepository = (*stubRentalRepo)(nil)

// ── Outbound collaborators ───────────────────────────────────────────────────

type stubNotifier struct {
	sent []dto.OutboundNotice
	err  error
}

func (n *stubNotifier) SendOutbound(_ context.Context, notice dto.OutboundNotice) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notice)
	return nil
}

var _ service.OutboundNotifier = (*stubNotifier)(nil)

type stubKeys struct {
	mu   sync.Mutex
	held map[string]bool
}

func newStubKeys() *stubKeys { return &stubKeys{held: make(map[string]bool)} }

func (k *stubKeys) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.held[key] {
		return false, nil
	}
	k.held[key] = true
	return true, nil
}

func (k *stubKeys) Release(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
	return nil
}

var _ service.IdempotencyStore = (*stubKeys)(nil)

var errStoreDown = errors.New("connection refused")
