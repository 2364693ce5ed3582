package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

const allocationColumns = `id, source_payment_id, destination_movement_id, destination_person_id,
	destination_payment_id, amount_applied, date`

// CreateAllocation inserts an indirect allocation, generating its ID if unset.
func (q *queries) CreateAllocation(ctx context.Context, a *models.IndirectAllocation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := q.exec(ctx,
		`INSERT INTO indirect_allocations (`+allocationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SourcePaymentID, a.DestinationMovementID, a.DestinationPersonID,
		a.DestinationPaymentID, a.AmountApplied, toUnix(a.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

func (q *queries) listAllocations(ctx context.Context, column, value string) ([]models.IndirectAllocation, error) {
	rows, err := q.query(ctx,
		`SELECT `+allocationColumns+` FROM indirect_allocations WHERE `+column+` = ? ORDER BY date, id`,
		value,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocs []models.IndirectAllocation
	for rows.Next() {
		var a models.IndirectAllocation
		var date int64
		if err := rows.Scan(&a.ID, &a.SourcePaymentID, &a.DestinationMovementID, &a.DestinationPersonID,
			&a.DestinationPaymentID, &a.AmountApplied, &date); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.Date = fromUnix(date)
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}
	return allocs, nil
}

// ListAllocationsBySource returns allocations drawn from a source payment.
func (q *queries) ListAllocationsBySource(ctx context.Context, sourcePaymentID string) ([]models.IndirectAllocation, error) {
	return q.listAllocations(ctx, "source_payment_id", sourcePaymentID)
}

// ListAllocationsByDestinationPayment returns allocations that created paymentID.
func (q *queries) ListAllocationsByDestinationPayment(ctx context.Context, paymentID string) ([]models.IndirectAllocation, error) {
	return q.listAllocations(ctx, "destination_payment_id", paymentID)
}

// ListAllocationsByDestinationMovement returns allocations that landed on movementID.
func (q *queries) ListAllocationsByDestinationMovement(ctx context.Context, movementID string) ([]models.IndirectAllocation, error) {
	return q.listAllocations(ctx, "destination_movement_id", movementID)
}

// SumAllocations totals amount_applied over a source payment's allocations.
func (q *queries) SumAllocations(ctx context.Context, sourcePaymentID string) (int64, error) {
	total, err := q.sum(ctx,
		"SELECT COALESCE(SUM(amount_applied), 0) FROM indirect_allocations WHERE source_payment_id = ?",
		sourcePaymentID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocations: %w", err)
	}
	return total, nil
}

// DeleteAllocation removes an allocation row.
func (q *queries) DeleteAllocation(ctx context.Context, allocationID string) error {
	return q.execOne(ctx, "delete allocation", "DELETE FROM indirect_allocations WHERE id = ?", allocationID)
}
