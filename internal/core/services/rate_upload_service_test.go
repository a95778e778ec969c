package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/adapters/database/memory"
	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/core/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/spreadsheet"
	"github.com/stretchr/testify/suite"
)

type RateUploadServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *testClock
	store  *memory.Store
	upload portssvc.RateUploadSvc
	rates  portssvc.RateSvcFacade
}

func (suite *RateUploadServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = newTestClock()
	suite.store = memory.NewStore()
	cat := catalog.Default()
	defaults := services.BranchDefaults{Lat: d("50.45"), Lng: d("30.52"), Hours: "8:00-20:00"}
	suite.upload = services.NewRateUploadService(suite.store, cat, defaults, 1000, services.WithClock(suite.clock.Now))
	suite.rates = services.NewRateService(suite.store, cat, 1, 1000, services.WithClock(suite.clock.Now))
}

func TestRateUploadService(t *testing.T) {
	suite.Run(t, new(RateUploadServiceTestSuite))
}

// hybridSheet lays out two branch groups after the base columns.
func hybridSheet(rows ...[]any) sheetRows {
	head := [][]any{
		{"", "", "", "", "", "", "№ 1", "", "", "", "№ 2"},
		{"", "", "", "", "", "", "вул. Хрещатик, 1", "", "", "", "вул. Саксаганського, 5"},
		{"Код", "Валюта", "Купівля", "Продаж", "Опт Купівля", "Опт Продаж",
			"Купівля", "Продаж", "Опт Купівля", "Опт Продаж",
			"Купівля", "Продаж", "Опт Купівля", "Опт Продаж"},
	}
	return sheetRows{name: "Курси", rows: append(head, rows...)}
}

func flatSheet(rows ...[]any) sheetRows {
	head := [][]any{{"Код", "Валюта", "Купівля", "Продаж"}}
	return sheetRows{name: "Курси", rows: append(head, rows...)}
}

func (suite *RateUploadServiceTestSuite) uploadSheets(sheets ...sheetRows) *domain.UploadSummary {
	data := buildWorkbook(suite.T(), sheets...)
	summary, err := suite.upload.Upload(suite.ctx, "rates.xlsx", data, testAdmin)
	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Require().True(summary.Success)
	return summary
}

func (suite *RateUploadServiceTestSuite) branchByNumber(n int) *domain.Branch {
	b, err := suite.store.FindBranchByNumber(suite.ctx, n)
	suite.Require().NoError(err)
	return b
}

func (suite *RateUploadServiceTestSuite) TestHybridUpload_CreatesBranchesAndOverrides() {
	summary := suite.uploadSheets(hybridSheet(
		[]any{"USD", "Долар", 42.10, 42.15, "", "", 41.90, 42.00, "", "", "", "", "", ""},
		[]any{"PLN", "Злотий", 10.20, 10.50, "", "", "", "", "", "", "", "", 12.5, ""},
	))

	suite.Equal("hybrid_3_row", summary.Layout)
	suite.Equal(2, summary.BaseRatesUpdated)
	suite.Empty(summary.Errors)
	suite.Contains(summary.Message, "Курси оновлено о 09:30:00")

	first := suite.branchByNumber(1)
	second := suite.branchByNumber(2)
	suite.Equal("вул. Хрещатик, 1", first.Address)
	suite.Equal("вул. Саксаганського, 5", second.Address)
	suite.Equal("8:00-20:00", second.Hours)

	usd, err := suite.store.FindBranchRate(suite.ctx, first.ID, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.90").Equal(usd.Buy))
	suite.True(d("42.00").Equal(usd.Sell))

	// Branch 2 carried no USD values, so it follows the base quote.
	usd2, err := suite.store.FindBranchRate(suite.ctx, second.ID, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.10").Equal(usd2.Buy))
	suite.True(usd2.IsActive)
}

func (suite *RateUploadServiceTestSuite) TestHybridUpload_BackfillsBaseWholesale() {
	suite.uploadSheets(hybridSheet(
		[]any{"PLN", "Злотий", 10.20, 10.50, "", "", "", "", "", "", "", "", 12.5, ""},
	))

	pln, err := suite.store.FindCurrencyByCode(suite.ctx, "PLN")
	suite.Require().NoError(err)
	suite.True(d("12.5").Equal(pln.WholesaleBuy), "base wholesale buy should be backfilled, got %s", pln.WholesaleBuy)
	suite.True(pln.WholesaleSell.IsZero())

	// The first branch inherits the backfilled value as its wholesale fallback.
	first := suite.branchByNumber(1)
	br, err := suite.store.FindBranchRate(suite.ctx, first.ID, "PLN")
	suite.Require().NoError(err)
	suite.True(d("12.5").Equal(br.WholesaleBuy))
}

func (suite *RateUploadServiceTestSuite) TestUpload_DeactivatesCurrenciesMissingFromSheet() {
	suite.uploadSheets(hybridSheet(
		[]any{"USD", "Долар", 42.10, 42.15, "", "", 41.90, 42.00, "", "", "", "", "", ""},
		[]any{"EUR", "Євро", 45.00, 45.30, "", "", 44.80, 45.10, "", "", "", "", "", ""},
	))
	suite.clock.Advance(10 * time.Minute)
	suite.uploadSheets(hybridSheet(
		[]any{"USD", "Долар", 42.20, 42.25, "", "", "", "", "", "", "", "", "", ""},
	))

	eur, err := suite.store.FindCurrencyByCode(suite.ctx, "EUR")
	suite.Require().NoError(err)
	suite.False(eur.IsActive)

	first := suite.branchByNumber(1)
	br, err := suite.store.FindBranchRate(suite.ctx, first.ID, "EUR")
	suite.Require().NoError(err)
	suite.False(br.IsActive)

	rates, meta, err := suite.rates.ListRates(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Len(rates, 1)
	suite.Equal("USD", rates[0].Code)
	suite.Equal(suite.clock.Now(), meta.UpdatedAt)

	// USD at branch 1 was not named on the second sheet, so it follows the new base.
	usd, err := suite.store.FindBranchRate(suite.ctx, first.ID, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.20").Equal(usd.Buy))
}

func (suite *RateUploadServiceTestSuite) TestUpload_KeepsExplicitlyDisabledOverride() {
	suite.uploadSheets(flatSheet([]any{"CZK", "Крона", 1.80, 1.90}))
	branchID := seedBranch(suite.T(), suite.store, 1, "вул. Хрещатик, 1")

	_, err := suite.rates.EditBranchRate(suite.ctx, branchID, "CZK", dto.EditBranchRateRequest{IsActive: boolPtr(false)}, testAdmin)
	suite.Require().NoError(err)

	suite.uploadSheets(flatSheet([]any{"CZK", "Крона", 1.85, 1.95}))

	br, err := suite.store.FindBranchRate(suite.ctx, branchID, "CZK")
	suite.Require().NoError(err)
	suite.False(br.IsActive)

	rates, _, err := suite.rates.ListRates(suite.ctx, int64Ptr(branchID))
	suite.Require().NoError(err)
	suite.Require().Len(rates, 1)
	suite.False(rates[0].IsActive)
	suite.True(rates[0].Buy.IsZero())
}

func (suite *RateUploadServiceTestSuite) TestTemplateRoundTripIsIdempotent() {
	suite.uploadSheets(hybridSheet(
		[]any{"USD", "Долар", 42.10, 42.15, 42.20, 42.05, 41.90, 42.00, "", "", "", "", "", ""},
		[]any{"EUR", "Євро", 45.00, 45.30, "", "", "", "", "", "", 44.90, 45.20, "", 45.10},
	))
	beforeCurrencies, err := suite.store.ListCurrencies(suite.ctx, false)
	suite.Require().NoError(err)
	beforeRates, err := suite.store.ListBranchRates(suite.ctx)
	suite.Require().NoError(err)

	buf, err := suite.upload.ExportTemplate(suite.ctx)
	suite.Require().NoError(err)
	_, err = suite.upload.Upload(suite.ctx, "template.xlsx", buf.Bytes(), testAdmin)
	suite.Require().NoError(err)

	afterCurrencies, err := suite.store.ListCurrencies(suite.ctx, false)
	suite.Require().NoError(err)
	afterRates, err := suite.store.ListBranchRates(suite.ctx)
	suite.Require().NoError(err)

	suite.Require().Len(afterCurrencies, len(beforeCurrencies))
	for i := range beforeCurrencies {
		suite.Equal(beforeCurrencies[i].Code, afterCurrencies[i].Code)
		suite.True(beforeCurrencies[i].RateQuad.Equal(afterCurrencies[i].RateQuad), "currency %s changed", beforeCurrencies[i].Code)
		suite.Equal(beforeCurrencies[i].IsActive, afterCurrencies[i].IsActive)
	}
	suite.Require().Len(afterRates, len(beforeRates))
	for i := range beforeRates {
		suite.Equal(beforeRates[i].BranchID, afterRates[i].BranchID)
		suite.Equal(beforeRates[i].CurrencyCode, afterRates[i].CurrencyCode)
		suite.True(beforeRates[i].RateQuad.Equal(afterRates[i].RateQuad),
			"override %d/%s changed", beforeRates[i].BranchID, beforeRates[i].CurrencyCode)
		suite.Equal(beforeRates[i].IsActive, afterRates[i].IsActive)
	}
}

func (suite *RateUploadServiceTestSuite) TestUpload_RowWarningsDoNotAbort() {
	summary := suite.uploadSheets(flatSheet(
		[]any{"USD", "Долар", 42.10, 42.15},
		[]any{"U1D", "???", 1, 2},
		[]any{"EUR", "Євро", "abc", 45.30},
		[]any{"USD", "Долар", 50, 51},
	))

	suite.Equal(1, summary.BaseRatesUpdated)
	suite.Len(summary.Errors, 3)

	usd, err := suite.store.FindCurrencyByCode(suite.ctx, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.10").Equal(usd.Buy), "first occurrence of a code wins")
	_, err = suite.store.FindCurrencyByCode(suite.ctx, "EUR")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateUploadServiceTestSuite) TestUpload_RejectsNonSpreadsheet() {
	_, err := suite.upload.Upload(suite.ctx, "rates.csv", []byte("USD,42.10,42.15"), testAdmin)
	suite.ErrorIs(err, apperrors.ErrUnsupportedFile)

	_, err = suite.upload.Upload(suite.ctx, "rates.xlsx", []byte("not a zip"), testAdmin)
	suite.ErrorIs(err, apperrors.ErrUnsupportedFile)
}

func (suite *RateUploadServiceTestSuite) TestUpload_RejectsSheetWithoutRateColumns() {
	data := buildWorkbook(suite.T(), sheetRows{name: "Курси", rows: [][]any{{"Код", "Примітка"}, {"USD", "готівка"}}})
	_, err := suite.upload.Upload(suite.ctx, "rates.xlsx", data, testAdmin)
	suite.ErrorIs(err, apperrors.ErrValidation)

	currencies, err := suite.store.ListCurrencies(suite.ctx, false)
	suite.Require().NoError(err)
	suite.Empty(currencies)
}

func (suite *RateUploadServiceTestSuite) TestUpload_BranchSheetVertical() {
	branchID := seedBranch(suite.T(), suite.store, 1, "вул. Хрещатик, 1")

	summary := suite.uploadSheets(
		flatSheet([]any{"USD", "Долар", 42.10, 42.15}),
		sheetRows{name: "Відділення", rows: [][]any{
			{"branch_id", "currency", "buy", "sell"},
			{branchID, "USD", 41.95, 42.05},
			{99, "USD", 41.00, 41.50},
		}},
	)
	suite.Len(summary.Errors, 1, "unknown branch 99 is reported")

	// The branch sheet is explicit, so reconciliation leaves it alone.
	br, err := suite.store.FindBranchRate(suite.ctx, branchID, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.95").Equal(br.Buy))
	suite.True(d("42.05").Equal(br.Sell))
	suite.True(br.IsActive)
}

func (suite *RateUploadServiceTestSuite) TestExportTemplate_EmptyStoreUsesCatalog() {
	buf, err := suite.upload.ExportTemplate(suite.ctx)
	suite.Require().NoError(err)

	wb, err := spreadsheet.Read("template.xlsx", buf.Bytes())
	suite.Require().NoError(err)
	suite.Require().Len(wb.Sheets, 1)
	suite.Equal(spreadsheet.TemplateSheetName, wb.Sheets[0].Name)
	suite.Greater(len(wb.Sheets[0].Rows), len(catalog.Default().Codes()))
}

// singleBranchHybridSheet lays out one branch group after the base columns.
func singleBranchHybridSheet(number, address string, rows ...[]any) sheetRows {
	head := [][]any{
		{"", "", "", "", number, ""},
		{"", "", "", "", address, ""},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж"},
	}
	return sheetRows{name: "Курси", rows: append(head, rows...)}
}

func (suite *RateUploadServiceTestSuite) TestHybridUpload_NumberMatchUpdatesAddress() {
	id := seedBranch(suite.T(), suite.store, 1, "вул. Стара, 10")

	suite.uploadSheets(hybridSheet(
		[]any{"USD", "Долар", 42.10, 42.15, "", "", 41.90, 42.00, "", "", "", "", "", ""},
	))

	first := suite.branchByNumber(1)
	suite.Equal(id, first.ID)
	suite.Equal("вул. Хрещатик, 1", first.Address)
	suite.Equal(testAdmin, first.LastUpdatedBy)
}

func (suite *RateUploadServiceTestSuite) TestHybridUpload_AddressMatchSkipsOtherNumbers() {
	existing := &domain.Branch{
		Number:  intPtr(3),
		Address: "вул. Велика Васильківська, 1",
		Hours:   "9-18",
		Phone:   "+380441234567",
		Lat:     d("50.1"),
		Lng:     d("30.1"),
		IsOpen:  true,
	}
	suite.Require().NoError(suite.store.CreateBranch(suite.ctx, existing))

	suite.uploadSheets(singleBranchHybridSheet("№ 4", "вул. Велика Васильківська, 1",
		[]any{"USD", "Долар", 42.10, 42.15, 41.90, 42.00},
	))

	branches, err := suite.store.ListBranches(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(branches, 2, "a differently numbered branch at the same address is a new branch")

	third := suite.branchByNumber(3)
	suite.Equal(existing.ID, third.ID)

	fourth := suite.branchByNumber(4)
	suite.NotEqual(existing.ID, fourth.ID)
	suite.Equal("вул. Велика Васильківська, 1", fourth.Address)
	suite.Equal("9-18", fourth.Hours)
	suite.Equal("+380441234567", fourth.Phone)
	suite.True(d("50.1").Equal(fourth.Lat))
	suite.True(d("30.1").Equal(fourth.Lng))

	br, err := suite.store.FindBranchRate(suite.ctx, fourth.ID, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.90").Equal(br.Buy))
}

func (suite *RateUploadServiceTestSuite) TestHybridUpload_AddressMatchAssignsMissingNumber() {
	unnumbered := &domain.Branch{Address: "вул. Антоновича, 2", Hours: "10-19", IsOpen: true}
	suite.Require().NoError(suite.store.CreateBranch(suite.ctx, unnumbered))

	suite.uploadSheets(singleBranchHybridSheet("№ 7", "вул. Антоновича, 2",
		[]any{"USD", "Долар", 42.10, 42.15, 41.90, 42.00},
	))

	branches, err := suite.store.ListBranches(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(branches, 1)

	seventh := suite.branchByNumber(7)
	suite.Equal(unnumbered.ID, seventh.ID)
	suite.Equal("10-19", seventh.Hours)
}

func (suite *RateUploadServiceTestSuite) TestLegacyUpload_ResolvesBranchesAndWritesOverrides() {
	byNumber := seedBranch(suite.T(), suite.store, 5, "вул. Хрещатик, 1")
	byID := seedBranch(suite.T(), suite.store, 6, "вул. Саксаганського, 5")

	// ID: 2 owns columns E:F and picks up wholesale from G:H. "5" is no stored
	// id, so it matches branch number 5. № 9 matches nothing and is created.
	summary := suite.uploadSheets(sheetRows{name: "Курси", rows: [][]any{
		{"", "", "", "", "ID: 2", "", "", "", "5", "", "№ 9", ""},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж", "", "", "Купівля", "Продаж", "Купівля", "Продаж"},
		{"USD", "Долар", 42.10, 42.15, 41.80, 42.30, 41.70, 42.40, 41.90, 42.20, 42.00, 42.25},
	}})

	suite.Equal("legacy_2_row", summary.Layout)
	suite.Equal(1, summary.BaseRatesUpdated)
	suite.Empty(summary.Errors)

	usd, err := suite.store.FindCurrencyByCode(suite.ctx, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.10").Equal(usd.Buy))
	suite.True(d("42.15").Equal(usd.Sell))
	suite.True(usd.WholesaleBuy.IsZero(), "unlabelled branch columns are not base wholesale")

	first, err := suite.store.FindBranchRate(suite.ctx, byID, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.80").Equal(first.Buy))
	suite.True(d("42.30").Equal(first.Sell))
	suite.True(d("41.70").Equal(first.WholesaleBuy))
	suite.True(d("42.40").Equal(first.WholesaleSell))

	// The next branch starts two columns later, so no wholesale is read.
	second, err := suite.store.FindBranchRate(suite.ctx, byNumber, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.90").Equal(second.Buy))
	suite.True(d("42.20").Equal(second.Sell))
	suite.True(second.WholesaleBuy.IsZero())

	created := suite.branchByNumber(9)
	suite.Equal("Відділення 9", created.Address)
	suite.Equal("8:00-20:00", created.Hours)
	third, err := suite.store.FindBranchRate(suite.ctx, created.ID, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.00").Equal(third.Buy))
	suite.True(d("42.25").Equal(third.Sell))

	// Display order follows the header, left to right.
	suite.Equal(1, suite.branchByNumber(6).DisplayOrder)
	suite.Equal(2, suite.branchByNumber(5).DisplayOrder)
	suite.Equal(3, created.DisplayOrder)
}

func (suite *RateUploadServiceTestSuite) TestLegacyUpload_DuplicateBranchColumnWarns() {
	id := seedBranch(suite.T(), suite.store, 5, "вул. Хрещатик, 1")

	// ID: 1 and № 5 both name the seeded branch.
	summary := suite.uploadSheets(sheetRows{name: "Курси", rows: [][]any{
		{"", "", "", "", "ID: 1", "", "№ 5", ""},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж", "Купівля", "Продаж"},
		{"USD", "Долар", 42.10, 42.15, 41.80, 42.30, 40.00, 41.00},
	}})

	suite.Require().Len(summary.Errors, 1)
	suite.Contains(summary.Errors[0], "id 1")

	br, err := suite.store.FindBranchRate(suite.ctx, id, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.80").Equal(br.Buy), "the first column naming a branch wins")
	suite.True(d("42.30").Equal(br.Sell))

	branches, err := suite.store.ListBranches(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(branches, 1)
}

func (suite *RateUploadServiceTestSuite) TestLegacyUpload_MarkerAboveBaseColumnsIsIgnored() {
	seedBranch(suite.T(), suite.store, 2, "вул. Хрещатик, 1")

	summary := suite.uploadSheets(sheetRows{name: "Курси", rows: [][]any{
		{"", "", "ID: 1", "", "ID: 1", ""},
		{"Код", "Валюта", "Купівля", "Продаж", "Купівля", "Продаж"},
		{"USD", "Долар", 42.10, 42.15, 41.80, 42.30},
	}})

	suite.Equal("legacy_2_row", summary.Layout)
	suite.Equal(1, summary.BaseRatesUpdated)

	usd, err := suite.store.FindCurrencyByCode(suite.ctx, "USD")
	suite.Require().NoError(err)
	suite.True(d("42.10").Equal(usd.Buy))

	br, err := suite.store.FindBranchRate(suite.ctx, 1, "USD")
	suite.Require().NoError(err)
	suite.True(d("41.80").Equal(br.Buy))
}
