package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreatePerson persists a new person, generating ID and CreatedAt if unset.
func (q *queries) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	_, err := q.exec(ctx,
		"INSERT INTO people (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)",
		person.ID, person.OwnerID, person.Name, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// GetPerson retrieves one of the owner's people.
func (q *queries) GetPerson(ctx context.Context, ownerID, personID string) (*models.Person, error) {
	p := &models.Person{}
	err := q.queryRow(ctx,
		"SELECT id, owner_id, name, created_at FROM people WHERE id = ? AND owner_id = ?",
		personID, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

// ListPeople returns the owner's people ordered by name.
func (q *queries) ListPeople(ctx context.Context, ownerID string) ([]models.Person, error) {
	rows, err := q.query(ctx,
		"SELECT id, owner_id, name, created_at FROM people WHERE owner_id = ? ORDER BY name, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// DeletePerson removes one of the owner's people.
func (q *queries) DeletePerson(ctx context.Context, ownerID, personID string) error {
	res, err := q.exec(ctx, "DELETE FROM people WHERE id = ? AND owner_id = ?", personID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	return nil
}

// CountPersonReferences counts debt lines and credit entries that point at the person.
func (q *queries) CountPersonReferences(ctx context.Context, personID string) (int64, error) {
	n, err := q.sum(ctx,
		`SELECT (SELECT COUNT(*) FROM debt_lines WHERE person_id = ?)
		      + (SELECT COUNT(*) FROM credit_entries WHERE person_id = ?)`,
		personID, personID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count person references: %w", err)
	}
	return n, nil
}
