package sim

import (
	"fmt"
	"regexp"
	"strings"
)

// Address is a postal address as entered in the move form.
type Address struct {
	Street     string
	PostalCode string
	City       string
}

// IsComplete reports whether street, postal code and city are all non-empty.
func (a Address) IsComplete() bool {
	return a.Street != "" && a.PostalCode != "" && a.City != ""
}

// String formats the address on one line.
func (a Address) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.Street, a.PostalCode, a.City))
}

// MoveDetails holds the move form and the contact data confirmed before dispatch.
type MoveDetails struct {
	OldAddress   Address
	NewAddress   Address
	MoveDate     string // ISO yyyy-mm-dd, optional
	AlreadyMoved bool
	FullName     string
	Email        string
	Phone        string
	Birthday     string
}

// AddressesComplete reports whether both old and new address are complete.
func (m MoveDetails) AddressesComplete() bool {
	return m.OldAddress.IsComplete() && m.NewAddress.IsComplete()
}

// MovePatch holds the move fields to overwrite. Nil fields are left untouched.
type MovePatch struct {
	OldAddress   *Address
	NewAddress   *Address
	MoveDate     *string
	AlreadyMoved *bool
	FullName     *string
	Email        *string
	Phone        *string
	Birthday     *string
}

// Apply returns a copy of m with the non-nil patch fields applied.
func (p MovePatch) Apply(m MoveDetails) MoveDetails {
	if p.OldAddress != nil {
		m.OldAddress = *p.OldAddress
	}
	if p.NewAddress != nil {
		m.NewAddress = *p.NewAddress
	}
	if p.MoveDate != nil {
		m.MoveDate = *p.MoveDate
	}
	if p.AlreadyMoved != nil {
		m.AlreadyMoved = *p.AlreadyMoved
	}
	if p.FullName != nil {
		m.FullName = *p.FullName
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.Birthday != nil {
		m.Birthday = *p.Birthday
	}
	return m
}

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// ValidateContact checks the confirmation step: a name, a plausible email
// address and the consent to forward the data to the selected providers.
func ValidateContact(fullName, email string, accepted bool) error {
	if strings.TrimSpace(fullName) == "" {
		return fmt.Errorf("full name must not be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	if !accepted {
		return fmt.Errorf("consent to forward the data to the selected providers is required")
	}
	return nil
}
