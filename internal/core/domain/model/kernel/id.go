package kernel

import (
	"errors"

	"morna/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrIDIsNotConstructed is returned for the zero ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("id must be created via NewID, ParseID or IDFromUUID")

// ID identifies an order, box or container. The zero value is invalid.
type ID struct {
	value uuid.UUID
}

// NewID generates a random identifier.
func NewID() ID {
	return ID{value: uuid.New()}
}

// ParseID accepts any textual form understood by uuid.Parse.
func ParseID(s string) (ID, error) {
	value, err := uuid.Parse(s)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return IDFromUUID(value)
}

// MustParseID is ParseID for literals known to be valid.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IDFromUUID wraps a stored uuid. uuid.Nil is rejected.
func IDFromUUID(value uuid.UUID) (ID, error) {
	id := ID{value: value}
	if err := id.Validate(); err != nil {
		return ID{}, err
	}
	return id, nil
}

func (id ID) String() string {
	return id.value.String()
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.value.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ID) UUID() uuid.UUID {
	return id.value
}

func (id ID) Equal(other ID) bool {
	return id.value == other.value
}

func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}

func (id ID) Validate() error {
	if id.IsZero() {
		return ErrIDIsNotConstructed
	}
	return nil
}

// OptionalID converts a nullable stored uuid.
func OptionalID(value *uuid.UUID) (*ID, error) {
	if value == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := IDFromUUID(*value)
	if err != nil {
		return nil, errors.Join(errs.NewValueIsInvalidError("reference id"), err)
	}
	return &id, nil
}
