// Package domain holds the shared value types of the approval workflow:
// entity identifiers and the closed enumerations (audit level, risk tier,
// case status, audit outcome) that the routing and transition rules dispatch
// on. Construct values via the Parse functions at trust boundaries; direct
// casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "riskgate/pkg/domain-errors"
)

// CaseID identifies one submission moving through the approval workflow.
type CaseID uuid.UUID

// AuditorID identifies an auditor in the directory.
type AuditorID uuid.UUID

// CustomerID identifies a registered customer.
type CustomerID uuid.UUID

func NewCaseID() CaseID         { return CaseID(uuid.New()) }
func NewAuditorID() AuditorID   { return AuditorID(uuid.New()) }
func NewCustomerID() CustomerID { return CustomerID(uuid.New()) }

func (id CaseID) String() string     { return uuid.UUID(id).String() }
func (id AuditorID) String() string  { return uuid.UUID(id).String() }
func (id CustomerID) String() string { return uuid.UUID(id).String() }

func (id CaseID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AuditorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CustomerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseCaseID constructs a CaseID from external input.
func ParseCaseID(s string) (CaseID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CaseID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid case id")
	}
	return CaseID(u), nil
}

// ParseAuditorID constructs an AuditorID from external input.
func ParseAuditorID(s string) (AuditorID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AuditorID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid auditor id")
	}
	return AuditorID(u), nil
}

// ParseCustomerID constructs a CustomerID from external input.
func ParseCustomerID(s string) (CustomerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CustomerID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid customer id")
	}
	return CustomerID(u), nil
}

// MarshalText lets IDs serialize as their canonical UUID string in JSON.
func (id CaseID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id AuditorID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id CustomerID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *CaseID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = CaseID(u)
	return nil
}

func (id *AuditorID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = AuditorID(u)
	return nil
}

func (id *CustomerID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = CustomerID(u)
	return nil
}
