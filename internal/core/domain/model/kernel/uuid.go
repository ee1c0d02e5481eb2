package kernel

import (
	"fmt"

	"courierbot/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one
// of the constructor functions. Validating a zero-value UUID returns it.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object shared by every aggregate in the
// assistant: couriers, deliveries, knowledge entries, and conversation log
// records all carry one. It wraps github.com/google/uuid so the rest of the
// domain never touches the library type directly.
//
// The zero value is invalid. Construct through NewUUID, UUIDFromString, or
// UUIDFromBytes; aggregates reject a zero identifier during their own
// construction. UUID is immutable and safe to share across goroutines.
//
// Example:
//
//	courierID := kernel.NewUUID()
//
//	// Reconstructing the caller identity from a request header
//	courierID, err := kernel.UUIDFromString(headerValue)
//	if err != nil {
//	    // reject the request
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. This is how new deliveries,
// knowledge entries, and log records get their identifiers.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its text form. It accepts the canonical
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" layout as well as the braced and
// urn:uuid: variants.
//
// Used at the boundaries: the X-Courier-ID request header and tracking
// references arriving from outside the service.
//
// Example:
//
//	courierID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Courier-ID"))
//	if err != nil {
//	    return echo.ErrUnauthorized
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice. Repositories use it when
// restoring aggregates from rows that store identifiers as binary uuid
// columns. A slice of the wrong length, or one holding the nil UUID, is
// rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical text form,
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx". The zero value renders as the nil
// UUID. Used for logging and for identifiers in JSON responses.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the wrapped uuid.UUID for persistence mappings. Gorm DTOs
// store identifiers as uuid columns, so the repositories call this when
// converting an aggregate to its row; slice it (`id.Bytes()[:]`) when raw
// bytes are needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs carry the same value. The ownership
// checks on deliveries compare courier identifiers with it.
//
// Example:
//
//	if !dlv.CourierID().IsEqual(callerID) {
//	    // not this courier's delivery
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil for any
// UUID produced by a constructor. Aggregate and command constructors call it
// on every identifier they receive.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
