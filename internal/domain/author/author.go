// Package author holds the author value types shared between layers.
package author

// Author is a read-only view of one author in the store.
type Author struct {
	id        string
	unitID    string
	firstName string
	lastName  string
	community string
}

// New creates an author. community may be empty.
func New(id, unitID, firstName, lastName, community string) Author {
	return Author{id: id, unitID: unitID, firstName: firstName, lastName: lastName, community: community}
}

// ID returns the author identifier.
func (a *Author) ID() string { return a.id }

// UnitID returns the organizational unit identifier.
func (a *Author) UnitID() string { return a.unitID }

// FirstName returns the author's first name.
func (a *Author) FirstName() string { return a.firstName }

// LastName returns the author's last name.
func (a *Author) LastName() string { return a.lastName }

// Community returns the optional community tag.
func (a *Author) Community() string { return a.community }

// DisplayName returns "First Last".
func (a *Author) DisplayName() string { return a.firstName + " " + a.lastName }

// Ranked is an author annotated with a per-query relevance score.
// Created only in result contexts, never persisted.
type Ranked struct {
	ID    string
	Score float64
}
