package ledger

import (
	"context"
	"strings"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreatePerson adds someone the owner can split movements with.
func (l *Ledger) CreatePerson(ctx context.Context, ownerID, name string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, l.finish("create_person", 0, validationf("name is required"), "owner_id", ownerID)
	}

	person := &models.Person{OwnerID: ownerID, Name: name}
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		return q.CreatePerson(ctx, person)
	})
	if err != nil {
		return nil, l.finish("create_person", 0, err, "owner_id", ownerID)
	}
	return person, l.finish("create_person", 0, nil)
}

// ListPeople returns the owner's people by name.
func (l *Ledger) ListPeople(ctx context.Context, ownerID string) ([]models.Person, error) {
	return l.store.ListPeople(ctx, ownerID)
}

// DeletePerson removes a person that has no debt lines and no credit history.
func (l *Ledger) DeletePerson(ctx context.Context, ownerID, personID string) error {
	err := l.store.WithTx(ctx, func(q storage.Queries) error {
		if _, err := q.GetPerson(ctx, ownerID, personID); err != nil {
			return err
		}
		refs, err := q.CountPersonReferences(ctx, personID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return validationf("person %s still has %d debt lines or credit entries", personID, refs)
		}
		return q.DeletePerson(ctx, ownerID, personID)
	})
	return l.finish("delete_person", 0, err, "owner_id", ownerID, "person_id", personID)
}
