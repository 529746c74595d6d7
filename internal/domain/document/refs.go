package document

import (
	"fmt"

	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemableType discriminates the catalog entity a line item points at
type ItemableType string

const (
	ItemableTypeProduct ItemableType = "PRODUCT"
	ItemableTypeService ItemableType = "SERVICE"
	ItemableTypeCourse  ItemableType = "COURSE"
)

// String returns the string representation of ItemableType
func (t ItemableType) String() string {
	return string(t)
}

// IsValid returns true if the itemable type is valid
func (t ItemableType) IsValid() bool {
	switch t {
	case ItemableTypeProduct, ItemableTypeService, ItemableTypeCourse:
		return true
	}
	return false
}

// ParseItemableType parses a string into an ItemableType
func ParseItemableType(s string) (ItemableType, error) {
	t := ItemableType(s)
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_ITEMABLE_TYPE", fmt.Sprintf("Unrecognized itemable type %q", s))
	}
	return t, nil
}

// SourceType discriminates the parent document a line item belongs to
type SourceType string

const (
	SourceTypeOrder       SourceType = "ORDER"
	SourceTypePurchase    SourceType = "PURCHASE"
	SourceTypeConsignment SourceType = "CONSIGNMENT"
)

// String returns the string representation of SourceType
func (t SourceType) String() string {
	return string(t)
}

// IsValid returns true if the source type is valid
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeOrder, SourceTypePurchase, SourceTypeConsignment:
		return true
	}
	return false
}

// ParseSourceType parses a string into a SourceType
func ParseSourceType(s string) (SourceType, error) {
	t := SourceType(s)
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_SOURCE_TYPE", fmt.Sprintf("Unrecognized source type %q", s))
	}
	return t, nil
}

// ItemableRef is a discriminated reference to one of the catalog tables.
// Stored as an (id, type) pair, never a typed foreign key.
type ItemableRef struct {
	Type ItemableType
	ID   uuid.UUID
}

// NewItemableRef creates a validated itemable reference
func NewItemableRef(itemableType ItemableType, id uuid.UUID) (ItemableRef, error) {
	if !itemableType.IsValid() {
		return ItemableRef{}, shared.NewDomainError("INVALID_ITEMABLE_TYPE", fmt.Sprintf("Unrecognized itemable type %q", itemableType))
	}
	if id == uuid.Nil {
		return ItemableRef{}, shared.NewDomainError("INVALID_INPUT", "Itemable ID cannot be empty")
	}
	return ItemableRef{Type: itemableType, ID: id}, nil
}

// String returns a human-readable form of the reference
func (r ItemableRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// SourceRef is a discriminated reference to one of the document tables.
type SourceRef struct {
	Type SourceType
	ID   uuid.UUID
}

// NewSourceRef creates a validated source reference
func NewSourceRef(sourceType SourceType, id uuid.UUID) (SourceRef, error) {
	if !sourceType.IsValid() {
		return SourceRef{}, shared.NewDomainError("INVALID_SOURCE_TYPE", fmt.Sprintf("Unrecognized source type %q", sourceType))
	}
	if id == uuid.Nil {
		return SourceRef{}, shared.NewDomainError("INVALID_INPUT", "Source ID cannot be empty")
	}
	return SourceRef{Type: sourceType, ID: id}, nil
}

// String returns a human-readable form of the reference
func (r SourceRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}
