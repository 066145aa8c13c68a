package ipam_test

import (
	"math/rand"
	"testing"

	"github.com/lyb5737-lyb77/inventory-management/internal/ipam"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPToInt_KnownValues(t *testing.T) {
	cases := map[string]uint32{
		"0.0.0.0":         0,
		"0.0.0.1":         1,
		"10.0.0.1":        0x0A000001,
		"192.168.1.254":   0xC0A801FE,
		"255.255.255.255": 0xFFFFFFFF,
	}
	for ip, want := range cases {
		got, err := ipam.IPToInt(ip)
		require.NoError(t, err, ip)
		assert.Equal(t, want, got, ip)
	}
}

func TestIPToInt_Invalid(t *testing.T) {
	for _, ip := range []string{"", "10.0.0", "10.0.0.1.2", "10.0.0.256", "10.0.-1.1", "a.b.c.d", "10..0.1", "10.0.0.+1", "10.0.0.02", "010.0.0.1", "10.00.0.1"} {
		_, err := ipam.IPToInt(ip)
		assert.ErrorIs(t, err, ipam.ErrInvalidAddress, ip)
	}
}

func TestIntToIP_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	samples := []uint32{0, 1, 255, 256, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF}
	for i := 0; i < 1000; i++ {
		samples = append(samples, r.Uint32())
	}
	for _, n := range samples {
		got, err := ipam.IPToInt(ipam.IntToIP(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestIPToInt_RoundTripString(t *testing.T) {
	for _, s := range []string{"1.2.3.4", "172.16.0.10", "255.0.255.0", "0.0.0.0"} {
		n, err := ipam.IPToInt(s)
		require.NoError(t, err)
		assert.Equal(t, s, ipam.IntToIP(n))
	}
}

func TestEnumerateRange(t *testing.T) {
	got, err := ipam.EnumerateRange("10.0.0.1", "10.0.0.1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, got)

	got, err = ipam.EnumerateRange("10.0.0.1", "10.0.0.3", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, got)

	got, err = ipam.EnumerateRange("10.0.0.254", "10.0.1.1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.254", "10.0.0.255", "10.0.1.0", "10.0.1.1"}, got)
}

func TestEnumerateRange_Errors(t *testing.T) {
	_, err := ipam.EnumerateRange("10.0.0.3", "10.0.0.1", 0)
	assert.ErrorIs(t, err, ipam.ErrInvalidRange)

	_, err = ipam.EnumerateRange("10.0.0.x", "10.0.0.1", 0)
	assert.ErrorIs(t, err, ipam.ErrInvalidAddress)

	_, err = ipam.EnumerateRange("10.0.0.0", "10.0.1.0", 256)
	assert.ErrorIs(t, err, ipam.ErrRangeTooLarge)

	_, err = ipam.EnumerateRange("0.0.0.0", "255.255.255.255", 0)
	assert.ErrorIs(t, err, ipam.ErrRangeTooLarge)
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, ipam.StatusAvailable, ipam.DeriveStatus("", "", ""))
	assert.Equal(t, ipam.StatusInUse, ipam.DeriveStatus("", "kim", ""))
	assert.Equal(t, ipam.StatusInUse, ipam.DeriveStatus("IT", "", ""))
	assert.Equal(t, ipam.StatusInUse, ipam.DeriveStatus("", "", "printer"))
}

func testRange(start, end string) model.IPRange {
	return model.IPRange{ID: uuid.New(), Title: start, Device: "A", StartIP: start, EndIP: end}
}

func TestResolveDisplayRows(t *testing.T) {
	r := testRange("192.168.0.1", "192.168.0.3")
	other := testRange("192.168.0.1", "192.168.0.3")
	details := []model.IPDetail{
		{ID: uuid.New(), RangeID: r.ID, IPAddress: "192.168.0.2", Department: "IT", User: "lee", Usage: "NAS", Status: ipam.StatusInUse},
		// same address under a different range must not leak in
		{ID: uuid.New(), RangeID: other.ID, IPAddress: "192.168.0.3", User: "park", Status: ipam.StatusInUse},
	}

	rows, err := ipam.ResolveDisplayRows(r, details, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "192.168.0.1", rows[0].IPAddress)
	assert.Equal(t, ipam.StatusAvailable, rows[0].Status)
	assert.Empty(t, rows[0].User)
	assert.Nil(t, rows[0].DetailID)

	assert.Equal(t, ipam.StatusInUse, rows[1].Status)
	assert.Equal(t, "lee", rows[1].User)
	assert.Equal(t, "IT", rows[1].Department)
	require.NotNil(t, rows[1].DetailID)
	assert.Equal(t, details[0].ID, *rows[1].DetailID)

	assert.Equal(t, ipam.StatusAvailable, rows[2].Status)
	assert.Empty(t, rows[2].User)
}

func TestBulkAssignFromImport_UpsertsExisting(t *testing.T) {
	r := testRange("10.1.0.1", "10.1.0.10")
	existing := []model.IPDetail{
		{ID: uuid.New(), RangeID: r.ID, IPAddress: "10.1.0.5", Status: ipam.StatusAvailable},
	}
	plan := ipam.BulkAssignFromImport([]ipam.ImportRow{
		{IPAddress: "10.1.0.5", Department: "HR", User: "choi"},
		{IPAddress: "10.1.0.6", Usage: "camera"},
	}, []model.IPRange{r}, existing)

	require.Len(t, plan.Upserts, 2)
	assert.Equal(t, 0, plan.Skipped)
	assert.Equal(t, existing[0].ID, plan.Upserts[0].ID, "existing detail is updated, not duplicated")
	assert.Equal(t, ipam.StatusInUse, plan.Upserts[0].Status)
	assert.Equal(t, "choi", plan.Upserts[0].User)
	assert.Equal(t, uuid.Nil, plan.Upserts[1].ID)
	assert.Equal(t, ipam.StatusInUse, plan.Upserts[1].Status)
}

func TestBulkAssignFromImport_SkipsUnmatched(t *testing.T) {
	r := testRange("10.1.0.1", "10.1.0.10")
	existing := []model.IPDetail{{ID: uuid.New(), RangeID: r.ID, IPAddress: "10.1.0.2", User: "kim", Status: ipam.StatusInUse}}

	plan := ipam.BulkAssignFromImport([]ipam.ImportRow{
		{IPAddress: "172.16.0.1", User: "nobody"},
		{IPAddress: "not-an-ip", User: "nobody"},
	}, []model.IPRange{r}, existing)

	assert.Empty(t, plan.Upserts)
	assert.Equal(t, 2, plan.Skipped)
	assert.Equal(t, "kim", existing[0].User)
}

func TestBulkAssignFromImport_LeadingZeroIsSkipped(t *testing.T) {
	r := testRange("10.0.0.1", "10.0.0.3")
	existing := []model.IPDetail{{ID: uuid.New(), RangeID: r.ID, IPAddress: "10.0.0.2", User: "lee", Status: ipam.StatusInUse}}

	plan := ipam.BulkAssignFromImport([]ipam.ImportRow{
		{IPAddress: "10.0.0.02", User: "kim"},
	}, []model.IPRange{r}, existing)

	assert.Empty(t, plan.Upserts)
	assert.Equal(t, 1, plan.Skipped)

	rows, err := ipam.ResolveDisplayRows(r, existing, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "10.0.0.2", rows[1].IPAddress)
	assert.Equal(t, "lee", rows[1].User)
}

func TestBulkAssignFromImport_FirstRangeWins(t *testing.T) {
	first := testRange("10.0.0.0", "10.0.0.255")
	second := testRange("10.0.0.100", "10.0.0.200")
	plan := ipam.BulkAssignFromImport([]ipam.ImportRow{{IPAddress: "10.0.0.150", User: "a"}}, []model.IPRange{first, second}, nil)
	require.Len(t, plan.Upserts, 1)
	assert.Equal(t, first.ID, plan.Upserts[0].RangeID)
}

func TestBulkAssignFromImport_DuplicateRowsCollapse(t *testing.T) {
	r := testRange("10.0.0.1", "10.0.0.9")
	plan := ipam.BulkAssignFromImport([]ipam.ImportRow{
		{IPAddress: "10.0.0.2", User: "old"},
		{IPAddress: "10.0.0.2", User: "new"},
	}, []model.IPRange{r}, nil)
	require.Len(t, plan.Upserts, 1)
	assert.Equal(t, "new", plan.Upserts[0].User)
}
