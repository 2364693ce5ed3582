package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/sqlstore"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *sqlstore.Store
	ledger  *Ledger
	owner   *models.User
	a, b, c *models.Person
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-ledger-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlstore.NewSQLite(filepath.Join(tempDir, "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		store:  store,
		ledger: New(store, WithClock(func() time.Time { return testNow })),
	}
	f.owner = f.user("owner@example.com")
	f.a = f.person(f.owner, "Ana")
	f.b = f.person(f.owner, "Beto")
	f.c = f.person(f.owner, "Carla")
	return f
}

func (f *fixture) user(email string) *models.User {
	f.t.Helper()
	u := models.NewUser(email, email, "hash")
	require.NoError(f.t, f.store.CreateUser(f.ctx, u))
	return u
}

func (f *fixture) person(owner *models.User, name string) *models.Person {
	f.t.Helper()
	p, err := f.ledger.CreatePerson(f.ctx, owner.ID, name)
	require.NoError(f.t, err)
	return p
}

// dinner is 300000 split evenly between A, B and C, with C as full payer.
func (f *fixture) dinner() *models.Movement {
	f.t.Helper()
	m, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind:      "expense",
		Category:  "food",
		AmountRaw: "300,000",
		DateRaw:   "2025-03-01",
		Shares: []ShareInput{
			{PersonID: f.a.ID, AmountRaw: "100,000"},
			{PersonID: f.b.ID, AmountRaw: "100,000"},
			{PersonID: f.c.ID, AmountRaw: "100,000", IsFullPayer: true},
		},
	})
	require.NoError(f.t, err)
	return m
}

func (f *fixture) lineOf(m *models.Movement, person *models.Person) models.DebtLine {
	f.t.Helper()
	for _, l := range m.Lines {
		if l.PersonID == person.ID {
			return l
		}
	}
	f.t.Fatalf("no line for %s on movement %s", person.Name, m.ID)
	return models.DebtLine{}
}

func (f *fixture) reload(lineID string) *models.DebtLine {
	f.t.Helper()
	line, err := f.store.GetDebtLine(f.ctx, f.owner.ID, lineID)
	require.NoError(f.t, err)
	return line
}

func (f *fixture) pay(lineID, amt string) *PaymentResult {
	f.t.Helper()
	res, err := f.ledger.AddPayment(f.ctx, f.owner.ID, lineID, PaymentInput{AmountRaw: amt})
	require.NoError(f.t, err)
	return res
}

func (f *fixture) balance(p *models.Person) int64 {
	f.t.Helper()
	b, err := f.ledger.CreditBalance(f.ctx, f.owner.ID, p.ID)
	require.NoError(f.t, err)
	return b
}

// checkInvariants verifies every debt line of the owner against its payments.
func (f *fixture) checkInvariants() {
	f.t.Helper()
	lines, err := f.store.ListDebtLines(f.ctx, f.owner.ID)
	require.NoError(f.t, err)
	for _, l := range lines {
		sum, err := f.store.SumPayments(f.ctx, l.ID)
		require.NoError(f.t, err)
		assert.Equal(f.t, sum, l.Paid, "paid of line %s", l.ID)
		assert.Equal(f.t, max(l.ShareAmount-l.Paid, 0), l.Outstanding, "outstanding of line %s", l.ID)
		assert.Equal(f.t, l.Outstanding == 0, l.Status == models.StatusPaid, "status of line %s", l.ID)
	}
}

func TestCreateMovement(t *testing.T) {
	f := newFixture(t)

	m := f.dinner()
	assert.Equal(t, int64(300000), m.Amount)
	assert.Equal(t, models.KindExpense, m.Kind)
	require.Len(t, m.Lines, 3)

	for _, l := range m.Lines {
		assert.Equal(t, int64(100000), l.ShareAmount)
		assert.Equal(t, int64(100000), l.Outstanding)
		assert.Equal(t, models.StatusOwes, l.Status)
	}
	assert.True(t, f.lineOf(m, f.c).IsFullPayer)
	f.checkInvariants()
}

func TestCreateMovement_InitialPayments(t *testing.T) {
	f := newFixture(t)

	m, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind:      "gasto",
		Category:  "rent",
		AmountRaw: "90000",
		DateRaw:   "2025-03-02",
		Shares: []ShareInput{
			{PersonID: f.a.ID, AmountRaw: "30000", PaidRaw: "10000"},
			{PersonID: f.b.ID, AmountRaw: "30000", Status: models.StatusPaid},
			{PersonID: f.c.ID, AmountRaw: ""}, // not part of the movement
		},
	})
	require.NoError(t, err)
	require.Len(t, m.Lines, 2)

	a := f.lineOf(m, f.a)
	assert.Equal(t, int64(10000), a.Paid)
	assert.Equal(t, int64(20000), a.Outstanding)

	b := f.lineOf(m, f.b)
	assert.Equal(t, int64(30000), b.Paid)
	assert.Equal(t, models.StatusPaid, b.Status)

	payments, err := f.store.ListPaymentsByLine(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Date.Equal(m.Date))
	f.checkInvariants()
}

func TestCreateMovement_Rejections(t *testing.T) {
	f := newFixture(t)
	other := f.user("other@example.com")
	stranger := f.person(other, "Stranger")

	base := func() MovementInput {
		return MovementInput{Kind: "expense", Category: "food", AmountRaw: "100", DateRaw: "2025-03-01"}
	}

	tests := []struct {
		name    string
		mutate  func(in *MovementInput)
		wantErr error
	}{
		{"invalid amount", func(in *MovementInput) { in.AmountRaw = "abc" }, ErrInvalidAmount},
		{"missing amount", func(in *MovementInput) { in.AmountRaw = "" }, ErrValidation},
		{"missing category", func(in *MovementInput) { in.Category = " " }, ErrValidation},
		{"missing date", func(in *MovementInput) { in.DateRaw = "" }, ErrValidation},
		{"unknown kind", func(in *MovementInput) { in.Kind = "transfer" }, ErrValidation},
		{"invalid share amount", func(in *MovementInput) {
			in.Shares = []ShareInput{{PersonID: f.a.ID, AmountRaw: "x"}}
		}, ErrInvalidAmount},
		{"two full payers", func(in *MovementInput) {
			in.Shares = []ShareInput{
				{PersonID: f.a.ID, AmountRaw: "50", IsFullPayer: true},
				{PersonID: f.b.ID, AmountRaw: "50", IsFullPayer: true},
			}
		}, ErrValidation},
		{"duplicate person", func(in *MovementInput) {
			in.Shares = []ShareInput{{PersonID: f.a.ID, AmountRaw: "50"}, {PersonID: f.a.ID, AmountRaw: "50"}}
		}, ErrValidation},
		{"person of another owner", func(in *MovementInput) {
			in.Shares = []ShareInput{{PersonID: f.a.ID, AmountRaw: "50"}, {PersonID: stranger.ID, AmountRaw: "50"}}
		}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing from the failed attempts was persisted.
	movements, err := f.ledger.ListMovements(f.ctx, f.owner.ID, "", "")
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestAddPayment_Reconciles(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	a := f.lineOf(m, f.a)

	res := f.pay(a.ID, "40,000")
	assert.Equal(t, int64(40000), res.Payment.Amount)
	assert.Equal(t, int64(40000), res.Line.Paid)
	assert.Equal(t, int64(60000), res.Line.Outstanding)
	assert.Equal(t, models.StatusOwes, res.Line.Status)
	assert.True(t, res.Payment.Date.Equal(testNow))

	res = f.pay(a.ID, "60000")
	assert.Equal(t, int64(0), res.Line.Outstanding)
	assert.Equal(t, models.StatusPaid, res.Line.Status)

	_, err := f.ledger.AddPayment(f.ctx, f.owner.ID, a.ID, PaymentInput{AmountRaw: "0"})
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = f.ledger.AddPayment(f.ctx, f.owner.ID, a.ID, PaymentInput{AmountRaw: "10", DateRaw: "yesterday"})
	require.ErrorIs(t, err, ErrValidation)

	f.checkInvariants()
}

func TestDeletePayment_Reopens(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	a := f.lineOf(m, f.a)

	first := f.pay(a.ID, "100000")
	require.Equal(t, models.StatusPaid, first.Line.Status)

	require.NoError(t, f.ledger.DeletePayment(f.ctx, f.owner.ID, first.Payment.ID))

	line := f.reload(a.ID)
	assert.Equal(t, int64(0), line.Paid)
	assert.Equal(t, int64(100000), line.Outstanding)
	assert.Equal(t, models.StatusOwes, line.Status)

	err := f.ledger.DeletePayment(f.ctx, f.owner.ID, first.Payment.ID)
	require.ErrorIs(t, err, ErrNotFound)
	f.checkInvariants()
}

func TestAllocate_FullPayerSettlesOthers(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	c := f.lineOf(m, f.c)

	// C pays the whole dinner on their own line.
	self := f.pay(c.ID, "300000")
	assert.Equal(t, int64(0), self.Line.Outstanding)

	toA, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.a.ID,
		AmountRaw:             "100000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), toA.Allocation.AmountApplied)
	assert.Equal(t, int64(200000), toA.Remaining)

	toB, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.b.ID,
		AmountRaw:             "100000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), toB.Remaining)

	assert.Equal(t, int64(0), f.reload(f.lineOf(m, f.a).ID).Outstanding)
	assert.Equal(t, int64(0), f.reload(f.lineOf(m, f.b).ID).Outstanding)

	allocs, err := f.ledger.ListAllocations(f.ctx, f.owner.ID, self.Payment.ID)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	var applied int64
	for _, a := range allocs {
		applied += a.AmountApplied
	}
	assert.LessOrEqual(t, applied, self.Payment.Amount)
	f.checkInvariants()
}

func TestAllocate_AppliesAtMostOutstanding(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "300000")
	f.pay(f.lineOf(m, f.a).ID, "70000")

	res, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.a.ID,
		AmountRaw:             "150000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), res.Allocation.AmountApplied)
	assert.Equal(t, int64(270000), res.Remaining)
	assert.Equal(t, models.StatusPaid, res.DestinationLine.Status)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.a.ID,
		AmountRaw:             "1",
	})
	require.ErrorIs(t, err, ErrValidation, "destination already settled")
}

func TestAllocate_OverAllocationLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "150000")

	_, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.a.ID,
		AmountRaw:             "100000",
	})
	require.NoError(t, err)

	bBefore := f.reload(f.lineOf(m, f.b).ID)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.b.ID,
		AmountRaw:             "60000",
	})
	require.ErrorIs(t, err, ErrOverAllocation)

	allocs, err := f.ledger.ListAllocations(f.ctx, f.owner.ID, self.Payment.ID)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, int64(100000), allocs[0].AmountApplied)
	assert.Equal(t, *bBefore, *f.reload(bBefore.ID))

	remaining, err := f.ledger.Remaining(f.ctx, f.owner.ID, self.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), remaining)
}

func TestAllocate_Preconditions(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "300000")
	notPayer := f.pay(f.lineOf(m, f.a).ID, "1000")

	other, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "expense", Category: "taxi", AmountRaw: "5000", DateRaw: "2025-03-03",
		Shares: []ShareInput{{PersonID: f.a.ID, AmountRaw: "5000"}},
	})
	require.NoError(t, err)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, notPayer.Payment.ID, AllocationInput{DestinationMovementID: other.ID, AmountRaw: "10"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: other.ID, AmountRaw: "-5"})
	require.ErrorIs(t, err, ErrInvalidAmount)

	// C has no line on the taxi ride.
	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: other.ID, AmountRaw: "10"})
	require.ErrorIs(t, err, ErrDestinationNotFound)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: "missing", AmountRaw: "10"})
	require.ErrorIs(t, err, ErrDestinationNotFound)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: m.ID, AmountRaw: "10"})
	require.ErrorIs(t, err, ErrValidation, "own line")

	f.checkInvariants()
}

func TestAllocate_OtherMovementSamePerson(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "300000")

	taxi, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "expense", Category: "taxi", AmountRaw: "40000", DateRaw: "2025-03-04",
		Shares: []ShareInput{
			{PersonID: f.a.ID, AmountRaw: "20000", IsFullPayer: true},
			{PersonID: f.c.ID, AmountRaw: "20000"},
		},
	})
	require.NoError(t, err)

	res, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: taxi.ID,
		AmountRaw:             "20000",
	})
	require.NoError(t, err)
	assert.Equal(t, f.c.ID, res.Allocation.DestinationPersonID)
	assert.Equal(t, taxi.ID, res.Allocation.DestinationMovementID)
	assert.Equal(t, models.StatusPaid, f.reload(f.lineOf(taxi, f.c).ID).Status)
}

func TestDeleteSourcePayment_RestoresDestination(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "300000")
	f.pay(f.lineOf(m, f.a).ID, "25000")

	aBefore := f.reload(f.lineOf(m, f.a).ID)
	bBefore := f.reload(f.lineOf(m, f.b).ID)

	for _, p := range []*models.Person{f.a, f.b} {
		_, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
			DestinationMovementID: m.ID,
			DestinationPersonID:   p.ID,
			AmountRaw:             "100000",
		})
		require.NoError(t, err)
	}
	require.Equal(t, int64(0), f.reload(aBefore.ID).Outstanding)

	require.NoError(t, f.ledger.DeletePayment(f.ctx, f.owner.ID, self.Payment.ID))

	assert.Equal(t, *aBefore, *f.reload(aBefore.ID))
	assert.Equal(t, *bBefore, *f.reload(bBefore.ID))

	allocs, err := f.store.ListAllocationsByDestinationMovement(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, allocs)
	f.checkInvariants()
}

func TestDeleteDestinationPayment_FreesSource(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "300000")

	res, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
		DestinationMovementID: m.ID,
		DestinationPersonID:   f.a.ID,
		AmountRaw:             "100000",
	})
	require.NoError(t, err)

	require.NoError(t, f.ledger.DeletePayment(f.ctx, f.owner.ID, res.Allocation.DestinationPaymentID))

	remaining, err := f.ledger.Remaining(f.ctx, f.owner.ID, self.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), remaining)
	assert.Equal(t, int64(100000), f.reload(f.lineOf(m, f.a).ID).Outstanding)
	f.checkInvariants()
}

func TestBankAndUseCredit(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	self := f.pay(f.lineOf(m, f.c).ID, "250000")

	for _, p := range []*models.Person{f.a, f.b} {
		_, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{
			DestinationMovementID: m.ID,
			DestinationPersonID:   p.ID,
			AmountRaw:             "100000",
		})
		require.NoError(t, err)
	}

	// No destination: everything left is banked, not just the request.
	banked, err := f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{AmountRaw: "1"})
	require.NoError(t, err)
	require.NotNil(t, banked.Banked)
	assert.Nil(t, banked.Allocation)
	assert.Equal(t, int64(50000), banked.Banked.Amount)
	assert.Equal(t, models.CreditKindCredit, banked.Banked.Kind)
	assert.Equal(t, int64(50000), f.balance(f.c))

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{AmountRaw: "1"})
	require.ErrorIs(t, err, ErrOverAllocation)

	lunch, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "expense", Category: "food", AmountRaw: "100000", DateRaw: "2025-03-05",
		Shares: []ShareInput{
			{PersonID: f.a.ID, AmountRaw: "50000", IsFullPayer: true},
			{PersonID: f.c.ID, AmountRaw: "50000"},
		},
	})
	require.NoError(t, err)

	res, err := f.ledger.AddPayment(f.ctx, f.owner.ID, f.lineOf(lunch, f.c).ID, PaymentInput{AmountRaw: "50000", UseCredit: true})
	require.NoError(t, err)
	assert.True(t, res.Payment.CreditFunded)
	assert.Equal(t, int64(0), res.CreditBalance)
	assert.Equal(t, int64(0), f.balance(f.c))

	history, err := f.ledger.CreditHistory(f.ctx, f.owner.ID, f.c.ID)
	require.NoError(t, err)
	require.Len(t, history.Entries, 2)
	assert.Equal(t, models.CreditKindDebit, history.Entries[1].Kind)
	assert.Equal(t, int64(-50000), history.Entries[1].Amount)

	// The banked credit is spent, so the source payment can no longer be deleted.
	err = f.ledger.DeletePayment(f.ctx, f.owner.ID, self.Payment.ID)
	require.ErrorIs(t, err, ErrInsufficientCredit)
	assert.Equal(t, int64(0), f.reload(f.lineOf(m, f.a).ID).Outstanding, "failed delete must not reopen destinations")
	f.checkInvariants()
}

func TestCreditFundedPaymentDeletionRestoresBalance(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	a := f.lineOf(m, f.a)

	_, err := f.ledger.AddCredit(f.ctx, f.owner.ID, f.a.ID, CreditInput{AmountRaw: "80000", Comment: "cash advance"})
	require.NoError(t, err)

	_, err = f.ledger.AddPayment(f.ctx, f.owner.ID, a.ID, PaymentInput{AmountRaw: "90000", UseCredit: true})
	require.ErrorIs(t, err, ErrInsufficientCredit)
	assert.Equal(t, int64(80000), f.balance(f.a))
	assert.Equal(t, int64(100000), f.reload(a.ID).Outstanding)

	res, err := f.ledger.AddPayment(f.ctx, f.owner.ID, a.ID, PaymentInput{AmountRaw: "60000", UseCredit: true})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), f.balance(f.a))

	require.NoError(t, f.ledger.DeletePayment(f.ctx, f.owner.ID, res.Payment.ID))
	assert.Equal(t, int64(80000), f.balance(f.a))

	history, err := f.ledger.CreditHistory(f.ctx, f.owner.ID, f.a.ID)
	require.NoError(t, err)
	require.Len(t, history.Entries, 3, "deposit, use and reversal are all kept")
	assert.Equal(t, models.OriginReversal, history.Entries[2].Origin)
	assert.Equal(t, int64(60000), history.Entries[2].Amount)
	assert.Equal(t, int64(80000), history.Balance)
	f.checkInvariants()
}

func TestDeleteMovement_Cascades(t *testing.T) {
	f := newFixture(t)
	dinner := f.dinner()
	self := f.pay(f.lineOf(dinner, f.c).ID, "300000")

	taxi, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "expense", Category: "taxi", AmountRaw: "40000", DateRaw: "2025-03-04",
		Shares: []ShareInput{
			{PersonID: f.a.ID, AmountRaw: "20000", IsFullPayer: true},
			{PersonID: f.c.ID, AmountRaw: "20000"},
		},
	})
	require.NoError(t, err)
	taxiC := f.lineOf(taxi, f.c)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: taxi.ID, AmountRaw: "20000"})
	require.NoError(t, err)
	require.Equal(t, int64(0), f.reload(taxiC.ID).Outstanding)

	require.NoError(t, f.ledger.DeleteMovement(f.ctx, f.owner.ID, dinner.ID))

	_, err = f.ledger.GetMovement(f.ctx, f.owner.ID, dinner.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(20000), f.reload(taxiC.ID).Outstanding, "allocation into the taxi ride is reversed")
	f.checkInvariants()

	// The destination side can be deleted on its own as well.
	require.NoError(t, f.ledger.DeleteMovement(f.ctx, f.owner.ID, taxi.ID))
	lines, err := f.store.ListDebtLines(f.ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeleteMovement_WithIncomingAllocation(t *testing.T) {
	f := newFixture(t)
	dinner := f.dinner()
	self := f.pay(f.lineOf(dinner, f.c).ID, "300000")

	taxi, err := f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "expense", Category: "taxi", AmountRaw: "20000", DateRaw: "2025-03-04",
		Shares: []ShareInput{{PersonID: f.c.ID, AmountRaw: "20000"}},
	})
	require.NoError(t, err)

	_, err = f.ledger.Allocate(f.ctx, f.owner.ID, self.Payment.ID, AllocationInput{DestinationMovementID: taxi.ID, AmountRaw: "20000"})
	require.NoError(t, err)

	require.NoError(t, f.ledger.DeleteMovement(f.ctx, f.owner.ID, taxi.ID))

	remaining, err := f.ledger.Remaining(f.ctx, f.owner.ID, self.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), remaining)
	f.checkInvariants()
}

func TestOwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	a := f.lineOf(m, f.a)
	res := f.pay(a.ID, "1000")

	intruder := f.user("intruder@example.com")

	_, err := f.ledger.GetMovement(f.ctx, intruder.ID, m.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.ledger.AddPayment(f.ctx, intruder.ID, a.ID, PaymentInput{AmountRaw: "10"})
	require.ErrorIs(t, err, ErrNotFound)

	err = f.ledger.DeletePayment(f.ctx, intruder.ID, res.Payment.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = f.ledger.DeleteMovement(f.ctx, intruder.ID, m.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.ledger.CreditBalance(f.ctx, intruder.ID, f.a.ID)
	require.ErrorIs(t, err, ErrNotFound)

	summaries, err := f.ledger.Summaries(f.ctx, intruder.ID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestDeletePerson(t *testing.T) {
	f := newFixture(t)
	f.dinner()

	err := f.ledger.DeletePerson(f.ctx, f.owner.ID, f.a.ID)
	require.ErrorIs(t, err, ErrValidation)

	idle := f.person(f.owner, "Idle")
	require.NoError(t, f.ledger.DeletePerson(f.ctx, f.owner.ID, idle.ID))

	err = f.ledger.DeletePerson(f.ctx, f.owner.ID, idle.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.ledger.CreatePerson(f.ctx, f.owner.ID, "   ")
	require.ErrorIs(t, err, ErrValidation)
}

func TestSummariesAndDashboard(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	f.pay(f.lineOf(m, f.a).ID, "40000")
	f.pay(f.lineOf(m, f.c).ID, "300000")
	_, err := f.ledger.AddCredit(f.ctx, f.owner.ID, f.c.ID, CreditInput{AmountRaw: "5000"})
	require.NoError(t, err)

	_, err = f.ledger.CreateMovement(f.ctx, f.owner.ID, MovementInput{
		Kind: "income", Category: "salary", AmountRaw: "1000000", DateRaw: "2025-03-06",
	})
	require.NoError(t, err)

	summaries, err := f.ledger.Summaries(f.ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	byName := make(map[string]int)
	for i, s := range summaries {
		byName[s.Name] = i
	}
	carla := summaries[byName["Carla"]]
	assert.Equal(t, int64(160000), carla.OwedByOthers)
	assert.Equal(t, int64(0), carla.Debe)
	assert.Equal(t, int64(5000), carla.Credit)
	assert.Equal(t, int64(165000), carla.Balance)

	ana := summaries[byName["Ana"]]
	assert.Equal(t, int64(60000), ana.Debe)
	assert.Equal(t, int64(40000), ana.Pagado)

	d, err := f.ledger.Dashboard(f.ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), d.Income)
	assert.Equal(t, int64(300000), d.Expense)
	assert.Equal(t, int64(700000), d.Balance)
	assert.Equal(t, int64(160000), d.TotalDebt)
	require.Len(t, d.Recent, 2)
	assert.Equal(t, models.KindIncome, d.Recent[0].Movement.Kind)
	assert.Equal(t, int64(160000), d.Recent[1].Outstanding)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	m := f.dinner()
	f.pay(f.lineOf(m, f.a).ID, "30000")

	err := f.store.WithTx(f.ctx, func(q storage.Queries) error {
		line, err := q.GetDebtLine(f.ctx, f.owner.ID, f.lineOf(m, f.a).ID)
		if err != nil {
			return err
		}
		// Corrupt the cached values; recompute must ignore them.
		line.Paid, line.Outstanding = 1, 1
		if err := recompute(f.ctx, q, line); err != nil {
			return err
		}
		first := *line
		if err := recompute(f.ctx, q, line); err != nil {
			return err
		}
		assert.Equal(t, first.Paid, line.Paid)
		assert.Equal(t, first.Outstanding, line.Outstanding)
		assert.Equal(t, int64(30000), line.Paid)
		return nil
	})
	require.NoError(t, err)
	f.checkInvariants()
}
