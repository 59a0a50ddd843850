package services

import "errors"

// Coarse, user-safe error kinds. Services log the underlying transport
// detail and surface one of these so controllers can map to a status code
// without ever leaking driver internals.
var (
	// ErrPersistence: the row write was rejected; nothing was stored.
	ErrPersistence = errors.New("record could not be saved")

	// ErrImageUpload: the blob write failed after the row was persisted; the
	// row has been compensated (deleted), so callers can tell this apart
	// from ErrPersistence ("row never existed").
	ErrImageUpload = errors.New("image could not be uploaded and the record was removed")

	ErrList             = errors.New("records could not be loaded")
	ErrLookup           = errors.New("record not found")
	ErrMutationRejected = errors.New("update was rejected")

	// ErrSession means an existing session failed verification; a missing
	// session is a nil result, not an error.
	ErrSession = errors.New("session could not be verified")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)
