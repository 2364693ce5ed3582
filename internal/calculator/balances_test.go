package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// dinner: 300000 split A/B/C, C fronted it all, A has paid 40000.
func dinner() models.Movement {
	return models.Movement{
		ID: "m1", Kind: models.KindExpense, Category: "food", Amount: 300000, Date: day("2025-03-01"),
		Lines: []models.DebtLine{
			{PersonID: "a", ShareAmount: 100000, Paid: 40000, Outstanding: 60000, Status: models.StatusOwes},
			{PersonID: "b", ShareAmount: 100000, Outstanding: 100000, Status: models.StatusOwes},
			{PersonID: "c", ShareAmount: 100000, Paid: 300000, Status: models.StatusPaid, IsFullPayer: true},
		},
	}
}

func people() []models.Person {
	return []models.Person{{ID: "c", Name: "Carla"}, {ID: "a", Name: "Ana"}, {ID: "b", Name: "Beto"}}
}

func TestPersonSummaries(t *testing.T) {
	summaries := PersonSummaries(people(), []models.Movement{dinner()}, map[string]int64{"c": 50000})

	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "Ana" || summaries[2].Name != "Carla" {
		t.Fatalf("summaries not sorted by name: %+v", summaries)
	}

	ana, beto, carla := summaries[0], summaries[1], summaries[2]
	if ana.Debe != 60000 || ana.Pagado != 40000 || ana.Balance != -60000 {
		t.Errorf("Ana = %+v, want debe 60000, pagado 40000, balance -60000", ana)
	}
	if beto.Debe != 100000 || beto.Balance != -100000 {
		t.Errorf("Beto = %+v, want debe 100000, balance -100000", beto)
	}
	if carla.OwedByOthers != 160000 {
		t.Errorf("Carla owed by others = %d, want 160000", carla.OwedByOthers)
	}
	if carla.Debe != 0 {
		t.Errorf("full payer line must not count as debt, got %d", carla.Debe)
	}
	if carla.Balance != 210000 {
		t.Errorf("Carla balance = %d, want 160000 + 50000 credit", carla.Balance)
	}
}

func TestPersonSummaries_IgnoresUnknownPeople(t *testing.T) {
	summaries := PersonSummaries([]models.Person{{ID: "a", Name: "Ana"}}, []models.Movement{dinner()}, nil)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Debe != 60000 {
		t.Errorf("Ana debe = %d, want 60000", summaries[0].Debe)
	}
}

func TestBuildDashboard(t *testing.T) {
	movements := []models.Movement{
		{ID: "m3", Kind: models.KindIncome, Category: "salary", Amount: 900000, Date: day("2025-03-05")},
		{ID: "m2", Kind: models.KindExpense, Category: "transport", Amount: 20000, Date: day("2025-03-01")},
		dinner(),
		{ID: "m0", Kind: models.KindPayment, Category: "rent", Amount: 70000, Date: day("2025-02-27")},
	}

	d := BuildDashboard(movements, people(), nil, 2)

	if d.Income != 900000 || d.Expense != 320000 || d.Payments != 70000 {
		t.Errorf("totals = %d/%d/%d, want 900000/320000/70000", d.Income, d.Expense, d.Payments)
	}
	if d.Balance != 580000 {
		t.Errorf("Balance = %d, want 580000", d.Balance)
	}
	if len(d.Recent) != 2 || d.Recent[0].Movement.ID != "m3" {
		t.Errorf("Recent = %+v, want the two newest movements", d.Recent)
	}

	if len(d.Categories) != 2 || d.Categories[0].Category != "food" || d.Categories[0].Total != 300000 {
		t.Errorf("Categories = %+v, want food first", d.Categories)
	}

	if len(d.Series) != 3 {
		t.Fatalf("expected 3 series points, got %d", len(d.Series))
	}
	if !d.Series[0].Date.Equal(day("2025-02-27")) {
		t.Errorf("series not ascending: first = %s", d.Series[0].Date)
	}
	if d.Series[1].Expense != 320000 {
		t.Errorf("2025-03-01 expense = %d, want 320000", d.Series[1].Expense)
	}

	if d.TotalDebt != 160000 {
		t.Errorf("TotalDebt = %d, want 160000", d.TotalDebt)
	}
}
