package services

import "errors"

// Closed error kinds per coordinator. Handlers map these to response
// codes with errors.Is; anything outside this list becomes a generic
// 500 without exposing internal error text.

// Registration coordinator.
var (
	// ErrRegistrationInvalid covers missing fields and identity
	// gateway rejections. The wrapped message is safe to return to
	// the caller.
	ErrRegistrationInvalid = errors.New("registration invalid")
	// ErrRegistrationConflict means the local record could not be
	// created after the remote identity already was. The remote
	// identity is left orphaned; there is no compensation call.
	ErrRegistrationConflict = errors.New("registration conflict")
)

// Track upload coordinator.
var (
	ErrNoFile             = errors.New("no file uploaded")
	ErrStorageCredentials = errors.New("storage credentials not available")
	ErrStorageClient      = errors.New("storage provider rejected the upload")
	ErrStorageUnknown     = errors.New("storage upload failed")
)

// Token service.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// License service.
var (
	// ErrTrackMissing means a license referenced a track that does
	// not exist.
	ErrTrackMissing = errors.New("referenced track does not exist")
)
