package ingest

import (
	"sort"
	"strings"
)

// LayoutKind identifies how branch data is encoded on the base sheet.
type LayoutKind string

const (
	LayoutFlat      LayoutKind = "flat"
	LayoutLegacy    LayoutKind = "legacy_2_row"
	LayoutHybrid    LayoutKind = "hybrid_3_row"
	headerScanDepth            = 10
	firstBranchCol             = 2
)

// RateField names one of the four prices of a rate quad.
type RateField int

const (
	FieldNone RateField = iota
	FieldBuy
	FieldSell
	FieldWholesaleBuy
	FieldWholesaleSell
)

// BranchRef identifies a branch as the sheet names it, before it is matched
// against stored branches.
type BranchRef struct {
	Number  *int
	Address string
}

// HybridColumn is one branch rate column of a Hybrid-3-Row sheet.
type HybridColumn struct {
	Col   int
	Group int // index of the branch group, ascending by column
	Ref   BranchRef
	Field RateField
}

// LegacyColumn is a branch buy column of a Legacy-2-Row sheet; sell is Col+1.
type LegacyColumn struct {
	Col int
	Ref BranchRef
}

// LayoutPlan is the detected shape of the base sheet.
type LayoutPlan struct {
	Kind      LayoutKind
	HeaderRow int
	Hybrid    []HybridColumn
	Legacy    []LegacyColumn
}

// BranchColumns returns every column index owned by the branch plan. For legacy
// sheets this includes the sell and optional wholesale columns.
func (p LayoutPlan) BranchColumns() map[int]bool {
	cols := make(map[int]bool)
	for _, h := range p.Hybrid {
		cols[h.Col] = true
	}
	for _, l := range p.Legacy {
		cols[l.Col] = true
		cols[l.Col+1] = true
	}
	return cols
}

// GroupCount is the number of distinct branches in a hybrid plan.
func (p LayoutPlan) GroupCount() int {
	n := 0
	for _, h := range p.Hybrid {
		if h.Group+1 > n {
			n = h.Group + 1
		}
	}
	return n
}

// DetectLayout inspects the head of the base sheet and returns its layout.
func DetectLayout(rows [][]string) LayoutPlan {
	h := findHeaderRow(rows)
	w := width(rows)

	if h >= 2 {
		if plan, ok := detectHybrid(rows, h, w); ok {
			return plan
		}
	}
	if h == 1 {
		if plan, ok := detectLegacy(rows, w); ok {
			return plan
		}
	}
	return LayoutPlan{Kind: LayoutFlat, HeaderRow: h}
}

func findHeaderRow(rows [][]string) int {
	for r := 0; r < len(rows) && r < headerScanDepth; r++ {
		for _, v := range rows[r] {
			if isHeaderMarker(v) {
				return r
			}
		}
	}
	return 0
}

func isHeaderMarker(v string) bool {
	return containsAny(strings.ToLower(v), "код", "code", "валют", "currency")
}

func detectHybrid(rows [][]string, h, w int) (LayoutPlan, bool) {
	plan := LayoutPlan{Kind: LayoutHybrid, HeaderRow: h}
	group := -1
	var current BranchRef

	for c := firstBranchCol; c < w; c++ {
		if addr := cell(rows, h-1, c); addr != "" && !isPlaceholder(addr) {
			group++
			current = BranchRef{Address: addr}
			if n, ok := firstNumber(cell(rows, h-2, c)); ok {
				current.Number = &n
			}
		}
		if group < 0 {
			continue
		}
		field := rateFieldOf(cell(rows, h, c))
		if field == FieldNone {
			continue
		}
		plan.Hybrid = append(plan.Hybrid, HybridColumn{Col: c, Group: group, Ref: current, Field: field})
	}
	if group < 0 {
		return LayoutPlan{}, false
	}
	sort.SliceStable(plan.Hybrid, func(i, j int) bool { return plan.Hybrid[i].Col < plan.Hybrid[j].Col })
	return plan, true
}

// detectLegacy reads branch markers from row 0. Markers above the base buy
// and sell columns are ignored: the scan starts after the first base sell
// column of the header row.
func detectLegacy(rows [][]string, w int) (LayoutPlan, bool) {
	plan := LayoutPlan{Kind: LayoutLegacy, HeaderRow: 1}
	for c := legacyScanStart(rows, w); c < w; c++ {
		n, ok := legacyBranchID(cell(rows, 0, c))
		if !ok {
			continue
		}
		plan.Legacy = append(plan.Legacy, LegacyColumn{Col: c, Ref: BranchRef{Number: &n}})
	}
	return plan, len(plan.Legacy) > 0
}

func legacyScanStart(rows [][]string, w int) int {
	for c := 0; c < w; c++ {
		if rateFieldOf(cell(rows, 1, c)) == FieldSell {
			return max(c+1, firstBranchCol)
		}
	}
	return firstBranchCol
}

// legacyBranchID accepts "ID: 3", "№3", "Nr 3", "No. 3" or a bare "3".
func legacyBranchID(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if allDigits(v) {
		return firstNumber(v)
	}
	lower := strings.ToLower(v)
	for _, marker := range []string{"id:", "№", "nr", "no"} {
		if !strings.HasPrefix(lower, marker) {
			continue
		}
		rest := strings.TrimLeft(lower[len(marker):], " .:")
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			return firstNumber(rest)
		}
	}
	return 0, false
}

func rateFieldOf(header string) RateField {
	l := strings.ToLower(header)
	wholesale := isWholesale(l)
	switch {
	case containsAny(l, "куп", "buy"):
		if wholesale {
			return FieldWholesaleBuy
		}
		return FieldBuy
	case containsAny(l, "прод", "sell"):
		if wholesale {
			return FieldWholesaleSell
		}
		return FieldSell
	default:
		return FieldNone
	}
}

func isWholesale(lower string) bool {
	return containsAny(lower, "опт", "wholesale", "whs")
}

// BaseSheetIndex picks the base rates sheet: "курси" or "rates", else the first.
func BaseSheetIndex(names []string) int {
	for i, n := range names {
		l := strings.ToLower(strings.TrimSpace(n))
		if l == "курси" || l == "rates" {
			return i
		}
	}
	return 0
}

// BranchSheetIndex picks the per-branch sheet, or -1 when the workbook has none.
func BranchSheetIndex(names []string, base int) int {
	for i, n := range names {
		if i == base {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "відділення", "branches", "філії":
			return i
		}
	}
	return -1
}
