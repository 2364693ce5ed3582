package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const lineColumns = `l.id, l.movement_id, l.person_id, l.share_amount, l.paid, l.outstanding, l.status, l.is_full_payer`

func scanLine(row rowScanner) (models.DebtLine, error) {
	var l models.DebtLine
	var status string
	err := row.Scan(&l.ID, &l.MovementID, &l.PersonID, &l.ShareAmount, &l.Paid, &l.Outstanding, &status, &l.IsFullPayer)
	l.Status = models.DebtStatus(status)
	return l, err
}

func (q *queries) listLines(ctx context.Context, query string, args ...any) ([]models.DebtLine, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt lines: %w", err)
	}
	defer rows.Close()

	var lines []models.DebtLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt lines: %w", err)
	}
	return lines, nil
}

func (q *queries) getLine(ctx context.Context, what, query string, args ...any) (*models.DebtLine, error) {
	l, err := scanLine(q.queryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debt line %s: %w", what, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt line: %w", err)
	}
	return &l, nil
}

// CreateDebtLine inserts a debt line, generating its ID if unset.
func (q *queries) CreateDebtLine(ctx context.Context, line *models.DebtLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	_, err := q.exec(ctx,
		`INSERT INTO debt_lines (id, movement_id, person_id, share_amount, paid, outstanding, status, is_full_payer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID, line.MovementID, line.PersonID, line.ShareAmount,
		line.Paid, line.Outstanding, string(line.Status), line.IsFullPayer,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt line: %w", err)
	}
	return nil
}

// GetDebtLine retrieves a debt line whose movement belongs to ownerID.
func (q *queries) GetDebtLine(ctx context.Context, ownerID, lineID string) (*models.DebtLine, error) {
	return q.getLine(ctx, lineID,
		`SELECT `+lineColumns+` FROM debt_lines l
		 JOIN movements m ON m.id = l.movement_id
		 WHERE l.id = ? AND m.owner_id = ?`,
		lineID, ownerID,
	)
}

// FindDebtLine retrieves the line of personID on movementID.
func (q *queries) FindDebtLine(ctx context.Context, ownerID, movementID, personID string) (*models.DebtLine, error) {
	return q.getLine(ctx, movementID+"/"+personID,
		`SELECT `+lineColumns+` FROM debt_lines l
		 JOIN movements m ON m.id = l.movement_id
		 WHERE l.movement_id = ? AND l.person_id = ? AND m.owner_id = ?`,
		movementID, personID, ownerID,
	)
}

// ListDebtLinesByMovement returns the lines of one movement.
func (q *queries) ListDebtLinesByMovement(ctx context.Context, movementID string) ([]models.DebtLine, error) {
	return q.listLines(ctx,
		`SELECT `+lineColumns+` FROM debt_lines l
		 JOIN people p ON p.id = l.person_id
		 WHERE l.movement_id = ? ORDER BY p.name, l.id`,
		movementID,
	)
}

// ListDebtLines returns every line on the owner's movements.
func (q *queries) ListDebtLines(ctx context.Context, ownerID string) ([]models.DebtLine, error) {
	return q.listLines(ctx,
		`SELECT `+lineColumns+` FROM debt_lines l
		 JOIN movements m ON m.id = l.movement_id
		 WHERE m.owner_id = ? ORDER BY l.movement_id, l.id`,
		ownerID,
	)
}

// UpdateDebtLine writes the derived paid/outstanding/status fields.
func (q *queries) UpdateDebtLine(ctx context.Context, line *models.DebtLine) error {
	return q.execOne(ctx, "update debt line",
		"UPDATE debt_lines SET paid = ?, outstanding = ?, status = ? WHERE id = ?",
		line.Paid, line.Outstanding, string(line.Status), line.ID,
	)
}

// DeleteDebtLine removes a line. Its payments must already be gone.
func (q *queries) DeleteDebtLine(ctx context.Context, lineID string) error {
	return q.execOne(ctx, "delete debt line", "DELETE FROM debt_lines WHERE id = ?", lineID)
}
