package models

// Person is someone the owner splits movements with. A person has no
// login of their own.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// OwnerID is the user this person belongs to.
	OwnerID string

	// Name is the display name (e.g., "Ana", "Roommate").
	Name string

	// CreatedAt is the Unix timestamp when the person was added.
	CreatedAt int64
}
