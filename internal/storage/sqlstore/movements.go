package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const movementColumns = `id, owner_id, kind, category, description, amount, date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (models.Movement, error) {
	var m models.Movement
	var kind string
	var date int64
	err := row.Scan(&m.ID, &m.OwnerID, &kind, &m.Category, &m.Description, &m.Amount, &date, &m.CreatedAt)
	m.Kind = models.MovementKind(kind)
	m.Date = fromUnix(date)
	return m, err
}

// CreateMovement inserts the movement row only; debt lines are written
// separately with CreateDebtLine in the same transaction.
func (q *queries) CreateMovement(ctx context.Context, m *models.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	_, err := q.exec(ctx,
		`INSERT INTO movements (`+movementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OwnerID, string(m.Kind), m.Category, m.Description, m.Amount, toUnix(m.Date), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

// GetMovement retrieves one of the owner's movements without its lines.
func (q *queries) GetMovement(ctx context.Context, ownerID, movementID string) (*models.Movement, error) {
	m, err := scanMovement(q.queryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = ? AND owner_id = ?`,
		movementID, ownerID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movement %s: %w", movementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement: %w", err)
	}
	return &m, nil
}

// ListMovements returns the owner's movements newest first, optionally
// limited to an inclusive date range.
func (q *queries) ListMovements(ctx context.Context, ownerID string, filter storage.MovementFilter) ([]models.Movement, error) {
	var where []string
	args := []any{ownerID}
	where = append(where, "owner_id = ?")
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, toUnix(filter.From))
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, toUnix(filter.To))
	}

	rows, err := q.query(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE `+strings.Join(where, " AND ")+
			` ORDER BY date DESC, created_at DESC, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

// DeleteMovement removes the movement row. Its lines, payments and
// allocations must already be gone.
func (q *queries) DeleteMovement(ctx context.Context, ownerID, movementID string) error {
	return q.execOne(ctx, "delete movement",
		"DELETE FROM movements WHERE id = ? AND owner_id = ?", movementID, ownerID)
}
