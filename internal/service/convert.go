package service

import (
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Unix(u.CreatedAt, 0).UTC(),
	}
}

func toAPIPerson(p models.Person) api.Person {
	return api.Person{ID: p.ID, Name: p.Name}
}

func toAPIPayment(p models.Payment) api.Payment {
	return api.Payment{
		ID:           p.ID,
		DebtLineID:   p.DebtLineID,
		Amount:       p.Amount,
		Date:         p.Date,
		CreditFunded: p.CreditFunded,
	}
}

func toAPILine(l models.DebtLine) api.DebtLine {
	line := api.DebtLine{
		ID:          l.ID,
		MovementID:  l.MovementID,
		PersonID:    l.PersonID,
		ShareAmount: l.ShareAmount,
		Paid:        l.Paid,
		Outstanding: l.Outstanding,
		Status:      string(l.Status),
		IsFullPayer: l.IsFullPayer,
	}
	for _, p := range l.Payments {
		line.Payments = append(line.Payments, toAPIPayment(p))
	}
	return line
}

func toAPIMovement(m models.Movement) api.Movement {
	movement := api.Movement{
		ID:          m.ID,
		Kind:        string(m.Kind),
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Outstanding: calculator.MovementOutstanding(m),
	}
	for _, l := range m.Lines {
		movement.Lines = append(movement.Lines, toAPILine(l))
	}
	return movement
}

func toAPIAllocation(a models.IndirectAllocation) api.Allocation {
	return api.Allocation{
		ID:                    a.ID,
		SourcePaymentID:       a.SourcePaymentID,
		DestinationMovementID: a.DestinationMovementID,
		DestinationPersonID:   a.DestinationPersonID,
		DestinationPaymentID:  a.DestinationPaymentID,
		AmountApplied:         a.AmountApplied,
		Date:                  a.Date,
	}
}

func toAPIAllocations(allocs []models.IndirectAllocation) []api.Allocation {
	var out []api.Allocation
	for _, a := range allocs {
		out = append(out, toAPIAllocation(a))
	}
	return out
}

func toAPICreditEntry(e models.CreditEntry) api.CreditEntry {
	return api.CreditEntry{
		ID:        e.ID,
		PersonID:  e.PersonID,
		Amount:    e.Amount,
		Kind:      string(e.Kind),
		Origin:    string(e.Origin),
		PaymentID: e.PaymentID,
		Comment:   e.Comment,
		Date:      e.Date,
	}
}

func toAPISummaries(summaries []calculator.PersonSummary) []api.PersonSummary {
	out := make([]api.PersonSummary, len(summaries))
	for i, s := range summaries {
		out[i] = api.PersonSummary{
			PersonID:     s.PersonID,
			Name:         s.Name,
			OwedByOthers: s.OwedByOthers,
			Debe:         s.Debe,
			Pagado:       s.Pagado,
			Credit:       s.Credit,
			Balance:      s.Balance,
		}
	}
	return out
}
