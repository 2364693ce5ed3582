package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// recentMovements is how many movements the dashboard lists.
const recentMovements = 10

// snapshot is everything the read views derive from.
type snapshot struct {
	movements []models.Movement
	people    []models.Person
	credit    map[string]int64
}

// load reads an owner's movements (with lines), people and credit
// balances. Reports tolerate concurrent writes, so this runs on the plain
// connection rather than in a transaction.
func (l *Ledger) load(ctx context.Context, ownerID string) (*snapshot, error) {
	movements, err := l.store.ListMovements(ctx, ownerID, storage.MovementFilter{})
	if err != nil {
		return nil, err
	}
	lines, err := l.store.ListDebtLines(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byMovement := make(map[string][]models.DebtLine)
	for _, line := range lines {
		byMovement[line.MovementID] = append(byMovement[line.MovementID], line)
	}
	for i := range movements {
		movements[i].Lines = byMovement[movements[i].ID]
	}

	people, err := l.store.ListPeople(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	credit, err := l.store.CreditBalances(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &snapshot{movements: movements, people: people, credit: credit}, nil
}

// Summaries returns every person's debt position, recomputed on each call.
func (l *Ledger) Summaries(ctx context.Context, ownerID string) ([]calculator.PersonSummary, error) {
	snap, err := l.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return calculator.PersonSummaries(snap.people, snap.movements, snap.credit), nil
}

// Dashboard returns the owner's overview, recomputed on each call.
func (l *Ledger) Dashboard(ctx context.Context, ownerID string) (*calculator.Dashboard, error) {
	snap, err := l.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	d := calculator.BuildDashboard(snap.movements, snap.people, snap.credit, recentMovements)
	return &d, nil
}
