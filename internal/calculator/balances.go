package calculator

import (
	"sort"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// PersonSummary is the derived debt position of one person.
type PersonSummary struct {
	PersonID string
	Name     string

	// OwedByOthers is what other participants still owe on movements this
	// person fronted as full payer.
	OwedByOthers int64

	// Debe is what this person still owes on their own non-full-payer lines.
	Debe int64

	// Pagado is everything paid against this person's lines.
	Pagado int64

	// Credit is the person's credit balance (saldo a favor).
	Credit int64

	// Balance = OwedByOthers - Debe + Credit. Positive means the person is
	// ahead.
	Balance int64
}

// PersonSummaries derives one summary per person from movements (with
// their Lines populated) and the current credit balances keyed by person ID.
// The result is sorted by name.
func PersonSummaries(people []models.Person, movements []models.Movement, credit map[string]int64) []PersonSummary {
	byID := make(map[string]*PersonSummary, len(people))
	summaries := make([]*PersonSummary, 0, len(people))
	for _, p := range people {
		s := &PersonSummary{PersonID: p.ID, Name: p.Name, Credit: credit[p.ID]}
		byID[p.ID] = s
		summaries = append(summaries, s)
	}

	for _, m := range movements {
		var payers []string
		for _, l := range m.Lines {
			if l.IsFullPayer {
				payers = append(payers, l.PersonID)
			}
		}

		for _, l := range m.Lines {
			if s, ok := byID[l.PersonID]; ok {
				s.Pagado += l.Paid
				if !l.IsFullPayer {
					s.Debe += l.Outstanding
				}
			}
			for _, payer := range payers {
				if payer == l.PersonID {
					continue
				}
				if s, ok := byID[payer]; ok {
					s.OwedByOthers += l.Outstanding
				}
			}
		}
	}

	result := make([]PersonSummary, len(summaries))
	for i, s := range summaries {
		s.Balance = s.OwedByOthers - s.Debe + s.Credit
		result[i] = *s
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// MovementBalance pairs a movement with what is still owed on it.
type MovementBalance struct {
	Movement    models.Movement
	Outstanding int64
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Total    int64
}

// SeriesPoint holds income and expense totals for one day.
type SeriesPoint struct {
	Date    time.Time
	Income  int64
	Expense int64
}

// Dashboard is the read-only overview of an owner's ledger.
type Dashboard struct {
	Income   int64
	Expense  int64
	Payments int64

	// Balance is Income - Expense.
	Balance int64

	Recent     []MovementBalance
	Categories []CategoryTotal
	Series     []SeriesPoint
	People     []PersonSummary

	// TotalDebt is the sum of every person's Debe.
	TotalDebt int64
}

// BuildDashboard aggregates movements (newest first, Lines populated)
// into a Dashboard. recent caps the number of Recent entries.
func BuildDashboard(movements []models.Movement, people []models.Person, credit map[string]int64, recent int) Dashboard {
	var d Dashboard
	categories := make(map[string]int64)
	days := make(map[time.Time]*SeriesPoint)

	for i, m := range movements {
		day := m.Date.UTC().Truncate(24 * time.Hour)
		point, ok := days[day]
		if !ok {
			point = &SeriesPoint{Date: day}
			days[day] = point
		}

		switch m.Kind {
		case models.KindIncome:
			d.Income += m.Amount
			point.Income += m.Amount
		case models.KindExpense:
			d.Expense += m.Amount
			point.Expense += m.Amount
			categories[m.Category] += m.Amount
		case models.KindPayment:
			d.Payments += m.Amount
		}

		if i < recent {
			d.Recent = append(d.Recent, MovementBalance{Movement: m, Outstanding: MovementOutstanding(m)})
		}
	}
	d.Balance = d.Income - d.Expense

	for name, total := range categories {
		d.Categories = append(d.Categories, CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(d.Categories, func(i, j int) bool {
		if d.Categories[i].Total != d.Categories[j].Total {
			return d.Categories[i].Total > d.Categories[j].Total
		}
		return d.Categories[i].Category < d.Categories[j].Category
	})

	for _, p := range days {
		d.Series = append(d.Series, *p)
	}
	sort.Slice(d.Series, func(i, j int) bool {
		return d.Series[i].Date.Before(d.Series[j].Date)
	})

	d.People = PersonSummaries(people, movements, credit)
	for _, s := range d.People {
		d.TotalDebt += s.Debe
	}
	return d
}
