// Defines the Record struct that models one provider to be notified of a move.
// Tracks identity, catalog reference, display data and notification status.

package sim

import (
	"fmt"
)

// RecordStatus represents the notification state of a provider record.
type RecordStatus string

const (
	StatusNotContacted RecordStatus = "not_contacted"
	StatusSent         RecordStatus = "sent"
	StatusConfirmed    RecordStatus = "confirmed"
	StatusManualDone   RecordStatus = "manual_done"
)

// validStatuses maps accepted status strings.
var validStatuses = map[RecordStatus]bool{
	StatusNotContacted: true,
	StatusSent:         true,
	StatusConfirmed:    true,
	StatusManualDone:   true,
}

// IsValidStatus returns true if the given string is a recognized record status.
func IsValidStatus(status string) bool {
	return validStatuses[RecordStatus(status)]
}

// IsTerminal reports whether the simulator will never move a record out of s.
func (s RecordStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusManualDone
}

// IsPending reports whether s still needs dispatch progress (not_contacted or sent).
func (s RecordStatus) IsPending() bool {
	return s == StatusNotContacted || s == StatusSent
}

// Category groups providers for display. The set is closed.
type Category string

const (
	CategoryAccounts      Category = "accounts"
	CategoryInsurance     Category = "insurance"
	CategorySubscriptions Category = "subscriptions"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAccounts, CategoryInsurance, CategorySubscriptions, CategoryOther}

// IsValidCategory returns true if the given string is a recognized category.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if string(c) == category {
			return true
		}
	}
	return false
}

// Record models a single provider's notification lifecycle for one move.
type Record struct {
	ID         string       // Unique within the collection, assigned at creation
	ProviderID string       // Catalog reference (empty for custom providers)
	Name       string       // Display name
	Category   Category     // Display grouping
	CustomerID string       // Free-text account/customer reference (optional)
	Status     RecordStatus // not_contacted, sent, confirmed, manual_done
}

// This method returns a human-readable string representation of a Record.
func (r Record) String() string {
	return fmt.Sprintf("Record: (ID: %s, Name: %s, Category: %s, Status: %s)", r.ID, r.Name, r.Category, r.Status)
}

// RecordInput carries the caller-provided fields of a new record.
// A zero Status means StatusNotContacted.
type RecordInput struct {
	ProviderID string
	Name       string
	Category   Category
	CustomerID string
	Status     RecordStatus
}

// NewRecord creates a Record from input with the given id.
// Status defaults to StatusNotContacted when input leaves it empty.
func NewRecord(id string, input RecordInput) Record {
	status := input.Status
	if status == "" {
		status = StatusNotContacted
	}
	return Record{
		ID:         id,
		ProviderID: input.ProviderID,
		Name:       input.Name,
		Category:   input.Category,
		CustomerID: input.CustomerID,
		Status:     status,
	}
}

// RecordPatch holds the fields to overwrite on an existing record.
// Nil fields are left untouched. Status may be set to any value: manual
// edits are not constrained by the dispatch state machine.
type RecordPatch struct {
	ProviderID *string
	Name       *string
	Category   *Category
	CustomerID *string
	Status     *RecordStatus
}

// apply returns a copy of r with the non-nil patch fields applied.
func (p RecordPatch) apply(r Record) Record {
	if p.ProviderID != nil {
		r.ProviderID = *p.ProviderID
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.CustomerID != nil {
		r.CustomerID = *p.CustomerID
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}
