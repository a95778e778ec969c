package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/adapters/database/memory"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testAdmin = "admin-1"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func intPtr(i int) *int { return &i }

func int64Ptr(i int64) *int64 { return &i }

func boolPtr(b bool) *bool { return &b }

// testClock is a settable clock shared by the services under test.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// buildWorkbook renders sheets, in order, into an .xlsx payload.
func buildWorkbook(t *testing.T, sheets ...sheetRows) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &values))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type sheetRows struct {
	name string
	rows [][]any
}

func seedCurrency(t *testing.T, store *memory.Store, c domain.Currency) {
	t.Helper()
	c.IsActive = true
	if c.WholesaleThreshold == 0 {
		c.WholesaleThreshold = domain.DefaultWholesaleThreshold
	}
	require.NoError(t, store.SaveCurrency(context.Background(), c))
}

func seedBranch(t *testing.T, store *memory.Store, number int, address string) int64 {
	t.Helper()
	b := &domain.Branch{Number: intPtr(number), Address: address, IsOpen: true, DisplayOrder: number}
	require.NoError(t, store.CreateBranch(context.Background(), b))
	return b.ID
}

func seedOverride(t *testing.T, store *memory.Store, br domain.BranchRate) {
	t.Helper()
	if br.WholesaleThreshold == 0 {
		br.WholesaleThreshold = domain.DefaultWholesaleThreshold
	}
	require.NoError(t, store.SaveBranchRate(context.Background(), br))
}
