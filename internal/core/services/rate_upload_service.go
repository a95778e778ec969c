package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/core/ingest"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/spreadsheet"
	"github.com/shopspring/decimal"
)

// UploadMessageLayout formats the success message time.
const UploadMessageLayout = "15:04:05"

type rateUploadService struct {
	BaseService
	store            portsrepo.RateStoreWithTx
	catalog          *catalog.Catalog
	branchDefaults   BranchDefaults
	defaultThreshold int
}

// NewRateUploadService creates the workbook ingestion and template service.
func NewRateUploadService(store portsrepo.RateStoreWithTx, cat *catalog.Catalog, defaults BranchDefaults, defaultThreshold int, opts ...ServiceOption) portssvc.RateUploadSvc {
	if defaultThreshold <= 0 {
		defaultThreshold = domain.DefaultWholesaleThreshold
	}
	return &rateUploadService{
		BaseService:      newBaseService(opts),
		store:            store,
		catalog:          cat,
		branchDefaults:   defaults,
		defaultThreshold: defaultThreshold,
	}
}

// Upload ingests one workbook in a single transaction. File-level problems
// abort and roll back; row-level problems become bounded warnings.
func (s *rateUploadService) Upload(ctx context.Context, filename string, data []byte, adminID string) (*domain.UploadSummary, error) {
	logger := s.GetLogger(ctx).With(slog.String("filename", filename))

	wb, err := spreadsheet.Read(filename, data)
	if err != nil {
		logger.Warn("Rejected rate workbook", slog.String("error", err.Error()))
		return nil, err
	}

	names := wb.Names()
	baseIdx := ingest.BaseSheetIndex(names)
	rows := wb.Sheets[baseIdx].Rows
	plan := ingest.DetectLayout(rows)
	if plan.HeaderRow >= len(rows) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("sheet %q has no header row", names[baseIdx]))
	}
	header, body := rows[plan.HeaderRow], rows[plan.HeaderRow+1:]
	columns := ingest.ClassifyColumns(header, body, plan.BranchColumns())
	if !columns.Usable() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("sheet %q has no code, buy and sell columns", names[baseIdx]))
	}

	var branchRows [][]string
	if idx := ingest.BranchSheetIndex(names, baseIdx); idx >= 0 {
		branchRows = wb.Sheets[idx].Rows
	}

	now := s.Now()
	summary := &domain.UploadSummary{Layout: string(plan.Kind), Errors: []string{}}
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.RateStore) error {
		run := &uploadRun{
			tx:               tx,
			catalog:          s.catalog,
			resolver:         newBranchResolver(tx, s.branchDefaults, now, adminID),
			summary:          summary,
			now:              now,
			by:               adminID,
			defaultThreshold: s.defaultThreshold,
			bases:            make(map[string]*domain.Currency),
			processed:        make(map[string]bool),
			explicit:         make(map[branchCode]bool),
		}
		if err := run.ingestBaseSheet(ctx, plan, columns, body); err != nil {
			return err
		}
		if branchRows != nil {
			if err := run.ingestBranchSheet(ctx, branchRows); err != nil {
				return err
			}
		}
		if run.baseProcessed > 0 {
			if err := run.reconcile(ctx); err != nil {
				return err
			}
		}
		return tx.TouchRatesMeta(ctx, now, adminID)
	})
	if err != nil {
		s.LogError(ctx, err, "Rate upload rolled back", slog.String("filename", filename))
		return nil, err
	}

	summary.Success = true
	summary.Message = fmt.Sprintf("Курси оновлено о %s", now.Format(UploadMessageLayout))
	logger.Info("Rates uploaded",
		slog.String("layout", summary.Layout),
		slog.Int("base_rates_updated", summary.BaseRatesUpdated),
		slog.Int("branch_rates_updated", summary.BranchRatesUpdated),
		slog.Int("warnings", len(summary.Errors)))
	return summary, nil
}

type branchCode struct {
	branchID int64
	code     string
}

// uploadRun holds the state of one upload transaction.
type uploadRun struct {
	tx               portsrepo.RateStore
	catalog          *catalog.Catalog
	resolver         *branchResolver
	summary          *domain.UploadSummary
	now              time.Time
	by               string
	defaultThreshold int

	bases          map[string]*domain.Currency
	processed      map[string]bool
	processedOrder []string
	baseProcessed  int
	explicit       map[branchCode]bool
}

// hybridGroup is one resolved branch column group, in column order.
type hybridGroup struct {
	branchID int64
	columns  []ingest.HybridColumn
}

func (u *uploadRun) ingestBaseSheet(ctx context.Context, plan ingest.LayoutPlan, columns ingest.ColumnMap, body [][]string) error {
	groups, err := u.resolveHybridGroups(ctx, plan)
	if err != nil {
		return err
	}
	legacyBranches, err := u.resolveLegacyBranches(ctx, plan)
	if err != nil {
		return err
	}
	branchCols := plan.BranchColumns()

	// deltas[code][group index] holds the branch values found on the code's row.
	deltas := make(map[string][]domain.RateQuad)
	var hybridCodes []string

	for r, row := range body {
		line := plan.HeaderRow + r + 2
		p, reason := ingest.ParseRow(row, columns)
		switch reason {
		case ingest.SkipEmpty:
			continue
		case ingest.SkipBadCode:
			if p.Code != "" {
				u.summary.Warnf("Рядок %d: некоректний код валюти %q", line, p.Code)
			}
			continue
		case ingest.SkipBadRate:
			u.summary.Warnf("Рядок %d (%s): некоректний курс купівлі або продажу", line, p.Code)
			continue
		}
		if u.processed[p.Code] {
			u.summary.Warnf("Рядок %d: валюта %s повторюється, рядок пропущено", line, p.Code)
			continue
		}

		if err := u.upsertBaseCurrency(ctx, p, r+1, columns.HasFlag()); err != nil {
			return err
		}
		u.markProcessed(p.Code)
		u.baseProcessed++
		u.summary.BaseRatesUpdated++

		if len(groups) > 0 {
			deltas[p.Code] = collectDeltas(row, groups)
			hybridCodes = append(hybridCodes, p.Code)
		}
		for i, lc := range plan.Legacy {
			if legacyBranches[i] == 0 {
				continue
			}
			if err := u.applyLegacyColumn(ctx, row, lc, legacyBranches[i], branchCols, p.Code); err != nil {
				return err
			}
		}
	}

	for _, code := range hybridCodes {
		if err := u.backfillWholesale(ctx, code, deltas[code]); err != nil {
			return err
		}
		if err := u.applyHybridDeltas(ctx, code, groups, deltas[code]); err != nil {
			return err
		}
	}
	return nil
}

func (u *uploadRun) resolveHybridGroups(ctx context.Context, plan ingest.LayoutPlan) ([]hybridGroup, error) {
	if plan.Kind != ingest.LayoutHybrid {
		return nil, nil
	}
	cols := append([]ingest.HybridColumn(nil), plan.Hybrid...)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Col < cols[j].Col })

	var groups []hybridGroup
	byGroup := make(map[int]int)
	for _, hc := range cols {
		idx, ok := byGroup[hc.Group]
		if !ok {
			id, err := u.resolver.resolveHybrid(ctx, hc.Ref, hc.Col)
			if err != nil {
				return nil, err
			}
			idx = len(groups)
			byGroup[hc.Group] = idx
			groups = append(groups, hybridGroup{branchID: id})
		}
		groups[idx].columns = append(groups[idx].columns, hc)
	}
	return groups, nil
}

func (u *uploadRun) resolveLegacyBranches(ctx context.Context, plan ingest.LayoutPlan) ([]int64, error) {
	if plan.Kind != ingest.LayoutLegacy {
		return nil, nil
	}
	ids := make([]int64, len(plan.Legacy))
	taken := make(map[int64]int)
	for i, lc := range plan.Legacy {
		id, err := u.resolver.resolveLegacy(ctx, lc.Ref, i+1)
		if err != nil {
			return nil, err
		}
		// The first column naming a branch wins; later ones are left unused.
		if first, ok := taken[id]; ok {
			u.summary.Warnf("Стовпці %d і %d належать одному відділенню (id %d), використано перший",
				plan.Legacy[first].Col+1, lc.Col+1, id)
			continue
		}
		taken[id] = i
		ids[i] = id
	}
	return ids, nil
}

// upsertBaseCurrency writes the row's base quote. New currencies take their
// names from the row, then the catalog, then the code itself.
func (u *uploadRun) upsertBaseCurrency(ctx context.Context, p ingest.ParsedRate, position int, hasFlagColumn bool) error {
	cur, err := u.tx.FindCurrencyByCode(ctx, p.Code)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		name, nameUK := u.catalog.Names(p.Code)
		if p.Name != "" {
			nameUK = p.Name
		}
		flag := p.Flag
		if flag == "" {
			flag = u.catalog.Flag(p.Code)
		}
		cur = &domain.Currency{
			Code:               p.Code,
			Name:               name,
			NameUK:             nameUK,
			Flag:               flag,
			WholesaleThreshold: u.defaultThreshold,
			IsPopular:          u.catalog.IsPopular(p.Code),
			AuditFields:        domain.AuditFields{CreatedAt: u.now, CreatedBy: u.by},
		}
	case err != nil:
		return fmt.Errorf("failed to load currency %s: %w", p.Code, err)
	default:
		if p.Name != "" {
			cur.NameUK = p.Name
		}
		if p.Flag != "" && (cur.Flag == "" || hasFlagColumn) {
			cur.Flag = p.Flag
		}
	}

	cur.RateQuad = domain.RateQuad{Buy: p.Buy, Sell: p.Sell, WholesaleBuy: p.WholesaleBuy, WholesaleSell: p.WholesaleSell}
	cur.IsActive = true
	cur.DisplayOrder = position
	cur.LastUpdatedAt = u.now
	cur.LastUpdatedBy = u.by
	if err := u.tx.SaveCurrency(ctx, *cur); err != nil {
		return fmt.Errorf("failed to save currency %s: %w", p.Code, err)
	}
	u.bases[p.Code] = cur
	return nil
}

func collectDeltas(row []string, groups []hybridGroup) []domain.RateQuad {
	out := make([]domain.RateQuad, len(groups))
	for g, group := range groups {
		for _, hc := range group.columns {
			v := positiveCell(row, hc.Col)
			if !v.IsPositive() {
				continue
			}
			switch hc.Field {
			case ingest.FieldBuy:
				out[g].Buy = v
			case ingest.FieldSell:
				out[g].Sell = v
			case ingest.FieldWholesaleBuy:
				out[g].WholesaleBuy = v
			case ingest.FieldWholesaleSell:
				out[g].WholesaleSell = v
			}
		}
	}
	return out
}

// backfillWholesale adopts the first positive branch wholesale value, in branch
// column order, for each base wholesale field the row left empty.
func (u *uploadRun) backfillWholesale(ctx context.Context, code string, deltas []domain.RateQuad) error {
	base := u.bases[code]
	changed := false
	for _, d := range deltas {
		if base.WholesaleBuy.IsZero() && d.WholesaleBuy.IsPositive() {
			base.WholesaleBuy = d.WholesaleBuy
			changed = true
		}
		if base.WholesaleSell.IsZero() && d.WholesaleSell.IsPositive() {
			base.WholesaleSell = d.WholesaleSell
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := u.tx.SaveCurrency(ctx, *base); err != nil {
		return fmt.Errorf("failed to backfill wholesale for %s: %w", code, err)
	}
	return nil
}

// applyHybridDeltas upserts an override for each branch that carried values,
// or for every branch when the base has a wholesale fallback.
func (u *uploadRun) applyHybridDeltas(ctx context.Context, code string, groups []hybridGroup, deltas []domain.RateQuad) error {
	base := u.bases[code]
	fallback := base.WholesaleBuy.IsPositive() || base.WholesaleSell.IsPositive()

	for g, group := range groups {
		delta := deltas[g]
		if delta.IsEmpty() && !fallback {
			continue
		}
		br, err := u.tx.FindBranchRate(ctx, group.branchID, code)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			br = u.newBranchRate(group.branchID, code)
			br.Buy, br.Sell = delta.Buy, delta.Sell
			br.WholesaleBuy = pickPositive(delta.WholesaleBuy, base.WholesaleBuy)
			br.WholesaleSell = pickPositive(delta.WholesaleSell, base.WholesaleSell)
		case err != nil:
			return fmt.Errorf("failed to load branch rate %d/%s: %w", group.branchID, code, err)
		default:
			mergePositive(&br.RateQuad, delta)
		}
		if err := u.saveBranchRate(ctx, br); err != nil {
			return err
		}
		u.explicit[branchCode{group.branchID, code}] = true
	}
	return nil
}

// applyLegacyColumn writes buy/sell from col and col+1, and wholesale from the
// two columns after them when those belong to no other branch.
func (u *uploadRun) applyLegacyColumn(ctx context.Context, row []string, lc ingest.LegacyColumn, branchID int64, branchCols map[int]bool, code string) error {
	buy, sell := positiveCell(row, lc.Col), positiveCell(row, lc.Col+1)
	if !buy.IsPositive() || !sell.IsPositive() {
		return nil
	}
	delta := domain.RateQuad{Buy: buy, Sell: sell}
	if !branchCols[lc.Col+2] && !branchCols[lc.Col+3] {
		delta.WholesaleBuy = positiveCell(row, lc.Col+2)
		delta.WholesaleSell = positiveCell(row, lc.Col+3)
	}

	base := u.bases[code]
	br, err := u.tx.FindBranchRate(ctx, branchID, code)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		br = u.newBranchRate(branchID, code)
		br.Buy, br.Sell = buy, sell
		br.WholesaleBuy = pickPositive(delta.WholesaleBuy, base.WholesaleBuy)
		br.WholesaleSell = pickPositive(delta.WholesaleSell, base.WholesaleSell)
	case err != nil:
		return fmt.Errorf("failed to load branch rate %d/%s: %w", branchID, code, err)
	default:
		mergePositive(&br.RateQuad, delta)
	}
	if err := u.saveBranchRate(ctx, br); err != nil {
		return err
	}
	u.explicit[branchCode{branchID, code}] = true
	return nil
}

// reconcile deactivates everything the base sheet no longer lists, then copies
// the base quote to every active override the upload did not set explicitly.
func (u *uploadRun) reconcile(ctx context.Context) error {
	codes := append([]string(nil), u.processedOrder...)
	if _, err := u.tx.DeactivateCurrenciesExcept(ctx, codes); err != nil {
		return err
	}
	if _, err := u.tx.DeactivateBranchRatesExcept(ctx, codes); err != nil {
		return err
	}

	branches, err := u.tx.ListBranches(ctx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		base, err := u.tx.FindCurrencyByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to reload currency %s: %w", code, err)
		}
		for _, b := range branches {
			if u.explicit[branchCode{b.ID, code}] {
				continue
			}
			br, err := u.tx.FindBranchRate(ctx, b.ID, code)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				br = u.newBranchRate(b.ID, code)
			case err != nil:
				return fmt.Errorf("failed to load branch rate %d/%s: %w", b.ID, code, err)
			case !br.IsActive:
				continue
			case br.RateQuad.Equal(base.RateQuad):
				continue
			}
			br.RateQuad = base.RateQuad
			if err := u.saveBranchRate(ctx, br); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u *uploadRun) markProcessed(code string) {
	if !u.processed[code] {
		u.processed[code] = true
		u.processedOrder = append(u.processedOrder, code)
	}
}

func (u *uploadRun) newBranchRate(branchID int64, code string) *domain.BranchRate {
	return &domain.BranchRate{
		BranchID:           branchID,
		CurrencyCode:       code,
		WholesaleThreshold: u.defaultThreshold,
		IsActive:           true,
		AuditFields:        domain.AuditFields{CreatedAt: u.now, CreatedBy: u.by},
	}
}

func (u *uploadRun) saveBranchRate(ctx context.Context, br *domain.BranchRate) error {
	br.LastUpdatedAt = u.now
	br.LastUpdatedBy = u.by
	if err := u.tx.SaveBranchRate(ctx, *br); err != nil {
		return fmt.Errorf("failed to save branch rate %d/%s: %w", br.BranchID, br.CurrencyCode, err)
	}
	u.summary.BranchRatesUpdated++
	return nil
}

func positiveCell(row []string, col int) decimal.Decimal {
	if col < 0 || col >= len(row) {
		return decimal.Zero
	}
	v, ok := ingest.ParseRate(row[col])
	if !ok || !v.IsPositive() {
		return decimal.Zero
	}
	return v
}

func pickPositive(preferred, fallback decimal.Decimal) decimal.Decimal {
	if preferred.IsPositive() {
		return preferred
	}
	return fallback
}

// mergePositive overwrites the fields of dst for which src is positive.
func mergePositive(dst *domain.RateQuad, src domain.RateQuad) {
	dst.Buy = pickPositive(src.Buy, dst.Buy)
	dst.Sell = pickPositive(src.Sell, dst.Sell)
	dst.WholesaleBuy = pickPositive(src.WholesaleBuy, dst.WholesaleBuy)
	dst.WholesaleSell = pickPositive(src.WholesaleSell, dst.WholesaleSell)
}
