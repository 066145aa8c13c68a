// Package ipam holds the IPv4 range arithmetic and the assignment overlay used
// by the IP management screens. Everything here is pure; persistence lives in
// the repository and service layers.
package ipam

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
)

// Assignment status values as stored in ip_details.status.
const (
	StatusInUse     = "사용중"
	StatusAvailable = "사용가능"
)

// DefaultMaxRangeSize caps EnumerateRange so a mistyped range cannot
// materialise millions of rows.
const DefaultMaxRangeSize = 65536

var (
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	ErrInvalidRange   = errors.New("start address is greater than end address")
	ErrRangeTooLarge  = errors.New("range exceeds maximum size")
)

// IPToInt parses a dotted-quad address into its 32-bit value. Only the
// canonical form is accepted, so IntToIP(IPToInt(s)) == s for every valid s.
func IPToInt(ip string) (uint32, error) {
	parts := strings.Split(strings.TrimSpace(ip), ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
	}
	var n uint32
	for _, p := range parts {
		// Leading zeros would store "10.0.0.02" next to "10.0.0.2".
		if len(p) > 1 && p[0] == '0' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
		}
		// ParseUint rejects signs and whitespace; bitSize 8 bounds the octet.
		o, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
		}
		n = n<<8 | uint32(o)
	}
	return n, nil
}

// IntToIP formats a 32-bit value as a dotted-quad address.
func IntToIP(n uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// Span returns the numeric bounds of [start, end].
func Span(start, end string) (uint32, uint32, error) {
	lo, err := IPToInt(start)
	if err != nil {
		return 0, 0, err
	}
	hi, err := IPToInt(end)
	if err != nil {
		return 0, 0, err
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return lo, hi, nil
}

// EnumerateRange lists every address from start to end inclusive in ascending
// order. max <= 0 selects DefaultMaxRangeSize.
func EnumerateRange(start, end string, max int) ([]string, error) {
	lo, hi, err := Span(start, end)
	if err != nil {
		return nil, err
	}
	if max <= 0 {
		max = DefaultMaxRangeSize
	}
	size := uint64(hi) - uint64(lo) + 1
	if size > uint64(max) {
		return nil, fmt.Errorf("%w: %d addresses (max %d)", ErrRangeTooLarge, size, max)
	}
	out := make([]string, 0, size)
	for n := uint64(lo); n <= uint64(hi); n++ {
		out = append(out, IntToIP(uint32(n)))
	}
	return out, nil
}

// DeriveStatus is the only source of an assignment's status: an address is in
// use as soon as any descriptive field is filled in.
func DeriveStatus(department, user, usage string) string {
	if department != "" || user != "" || usage != "" {
		return StatusInUse
	}
	return StatusAvailable
}

// Row is one line of the per-range address table.
type Row struct {
	IPAddress  string     `json:"ip_address"`
	RangeID    uuid.UUID  `json:"range_id"`
	DetailID   *uuid.UUID `json:"detail_id,omitempty"`
	Department string     `json:"department"`
	User       string     `json:"user"`
	Usage      string     `json:"usage"`
	Status     string     `json:"status"`
}

type detailKey struct {
	rangeID uuid.UUID
	ip      string
}

// Index looks up details by (range, address).
type Index map[detailKey]*model.IPDetail

func NewIndex(details []model.IPDetail) Index {
	idx := make(Index, len(details))
	for i := range details {
		d := &details[i]
		idx[detailKey{d.RangeID, d.IPAddress}] = d
	}
	return idx
}

func (idx Index) Get(rangeID uuid.UUID, ip string) (*model.IPDetail, bool) {
	d, ok := idx[detailKey{rangeID, ip}]
	return d, ok
}

func (idx Index) put(d *model.IPDetail) {
	idx[detailKey{d.RangeID, d.IPAddress}] = d
}

// ResolveDisplayRows overlays the stored details on every address of r.
// Addresses without a detail are reported empty and available.
func ResolveDisplayRows(r model.IPRange, details []model.IPDetail, max int) ([]Row, error) {
	addrs, err := EnumerateRange(r.StartIP, r.EndIP, max)
	if err != nil {
		return nil, err
	}
	idx := NewIndex(details)
	rows := make([]Row, 0, len(addrs))
	for _, ip := range addrs {
		row := Row{IPAddress: ip, RangeID: r.ID, Status: StatusAvailable}
		if d, ok := idx.Get(r.ID, ip); ok {
			id := d.ID
			row.DetailID = &id
			row.Department = d.Department
			row.User = d.User
			row.Usage = d.Usage
			if d.Status != "" {
				row.Status = d.Status
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportRow is one assignment read from a spreadsheet.
type ImportRow struct {
	IPAddress  string
	Department string
	User       string
	Usage      string
}

// ImportPlan is the outcome of BulkAssignFromImport.
type ImportPlan struct {
	Upserts []model.IPDetail
	// Skipped counts rows whose address is malformed or inside no range.
	Skipped int
}

type span struct {
	id     uuid.UUID
	lo, hi uint32
}

// BulkAssignFromImport maps every row onto the first range (in the given
// order) whose interval contains it and produces the details to upsert.
// Existing details keep their ID so the write is an update, and the status is
// forced to in-use. Later rows for the same address replace earlier ones.
func BulkAssignFromImport(rows []ImportRow, ranges []model.IPRange, existing []model.IPDetail) ImportPlan {
	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		lo, hi, err := Span(r.StartIP, r.EndIP)
		if err != nil {
			continue
		}
		spans = append(spans, span{id: r.ID, lo: lo, hi: hi})
	}

	idx := NewIndex(existing)
	planned := make(Index)
	var plan ImportPlan
	var order []detailKey

	for _, row := range rows {
		ip := strings.TrimSpace(row.IPAddress)
		n, err := IPToInt(ip)
		if err != nil {
			plan.Skipped++
			continue
		}
		var target *span
		for i := range spans {
			if n >= spans[i].lo && n <= spans[i].hi {
				target = &spans[i]
				break
			}
		}
		if target == nil {
			plan.Skipped++
			continue
		}

		d := &model.IPDetail{
			RangeID:    target.id,
			IPAddress:  ip,
			Department: row.Department,
			User:       row.User,
			Usage:      row.Usage,
			Status:     StatusInUse,
		}
		if prev, ok := idx.Get(target.id, ip); ok {
			d.ID = prev.ID
		}
		key := detailKey{target.id, ip}
		if _, seen := planned[key]; !seen {
			order = append(order, key)
		}
		planned.put(d)
	}

	plan.Upserts = make([]model.IPDetail, 0, len(order))
	for _, k := range order {
		plan.Upserts = append(plan.Upserts, *planned[k])
	}
	return plan
}
