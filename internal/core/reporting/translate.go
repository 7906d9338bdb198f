package reporting

import (
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

// TranslateFilter turns a statement filter into a store query. The area
// selection is resolved against the division list: the effective division
// id set is the union of directly selected divisions and divisions whose
// area matches any selected area. Empty multi-valued selections impose no
// restriction.
func TranslateFilter(f domain.StatementFilter, divisions []domain.Division) domain.TransactionQuery {
	f = f.Normalize()

	q := domain.TransactionQuery{
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		CategoryIDs: append([]string(nil), f.CategoryIDs...),
		PersonIDs:   append([]string(nil), f.PersonIDs...),
		GroupIDs:    append([]string(nil), f.GroupIDs...),
	}

	switch f.Kind {
	case domain.KindIncome:
		k := domain.Income
		q.Kind = &k
	case domain.KindExpense:
		k := domain.Expense
		q.Kind = &k
	}

	q.DivisionIDs = effectiveDivisionIDs(f, divisions)
	return q
}

// effectiveDivisionIDs unions the direct division selection with the ids of
// divisions whose area is selected. An empty result with no selection at
// all means "no restriction"; a non-empty selection that resolves to zero
// divisions must still restrict, so a sentinel empty-match is preserved by
// returning the direct selection as-is.
func effectiveDivisionIDs(f domain.StatementFilter, divisions []domain.Division) []string {
	if len(f.DivisionIDs) == 0 && len(f.Areas) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(f.DivisionIDs))
	ids := make([]string, 0, len(f.DivisionIDs))
	for _, id := range f.DivisionIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(f.Areas) > 0 {
		areas := make(map[string]struct{}, len(f.Areas))
		for _, a := range f.Areas {
			areas[a] = struct{}{}
		}
		for _, d := range divisions {
			if _, ok := areas[d.Area]; !ok {
				continue
			}
			if _, ok := seen[d.DivisionID]; ok {
				continue
			}
			seen[d.DivisionID] = struct{}{}
			ids = append(ids, d.DivisionID)
		}
	}

	if len(ids) == 0 {
		// The user selected areas that matched no division. Returning nil
		// would silently widen the result to everything; instead keep an
		// impossible id so the restriction holds.
		return []string{""}
	}
	return ids
}
