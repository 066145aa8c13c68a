package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRental_CreateUpdate(t *testing.T) {
	repo := &stubRentalRepo{}
	svc := service.NewRentalService(repo)
	ctx := context.Background()

	r, err := svc.Create(ctx, dto.CreateRentalRequest{Ho: "201", TenantName: "홍길동", Deposit: decimal.NewFromInt(1000000)})
	require.NoError(t, err)

	tenant := "김철수"
	got, err := svc.Update(ctx, r.ID, dto.UpdateRentalRequest{TenantName: &tenant})
	require.NoError(t, err)
	assert.Equal(t, "김철수", got.TenantName)
	assert.Equal(t, "201", got.Ho)
	assert.True(t, decimal.NewFromInt(1000000).Equal(got.Deposit))
}

func TestRental_Import(t *testing.T) {
	repo := &stubRentalRepo{}
	buf := xlsxOf(t, [][]any{
		{"임대 현황"},
		{"2024"},
		{"구분", "호수", "사용인/임대인", "보증금", "월임대료", "관리비", "계약기간"},
		{"직원", "101", "홍길동", "5,000,000", "300000", "n/a", "2024.01.01 ~ 2025.12.31"},
		{"일반인", "102", "이영희", "0", "0", "0", ""},
	})

	resp, err := service.NewRentalService(repo).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Len(t, resp.Warnings, 1)

	require.Len(t, repo.rows, 2)
	assert.Equal(t, "홍길동", repo.rows[0].TenantName)
	assert.True(t, decimal.NewFromInt(5000000).Equal(repo.rows[0].Deposit))
	assert.True(t, repo.rows[0].MaintenanceFee.IsZero())
	assert.Equal(t, "2025.12.31", repo.rows[0].ContractEndDate)
}

func TestRental_ImportStoreFailure(t *testing.T) {
	repo := &stubRentalRepo{createErr: errStoreDown}
	buf := xlsxOf(t, [][]any{
		{"title"}, {},
		{"호수", "사용인/임대인"},
		{"101", "홍길동"},
	})
	_, err := service.NewRentalService(repo).Import(context.Background(), buf)
	assert.ErrorIs(t, err, service.ErrStoreUnavailable)
}

func TestRental_Export(t *testing.T) {
	repo := &stubRentalRepo{}
	svc := service.NewRentalService(repo)
	ctx := context.Background()
	_, err := svc.Create(ctx, dto.CreateRentalRequest{
		Ho: "305", TenantName: "(주)비트", MonthlyRent: decimal.NewFromInt(450000),
		ContractStartDate: "2023.01.01", ContractEndDate: "2024.12.31",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("임대현황")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "305", rows[1][0])
	assert.Equal(t, "(주)비트", rows[1][1])
	assert.Equal(t, "2023.01.01 ~ 2024.12.31", rows[1][5])
	assert.Equal(t, "450000", rows[1][9])
}
