package documents

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Messages shown to users when a document name is rejected.
const (
	MessageEmptyName        = "The file must have a name."
	MessageInvalidExtension = "The file must end with '.txt' or '.md'."
	MessageInvalidName      = "The file name must not contain path separators."
)

const (
	codeNameEmpty        = "DOCUMENT_NAME_EMPTY"
	codeExtensionInvalid = "DOCUMENT_EXTENSION_INVALID"
	codeNameInvalid      = "DOCUMENT_NAME_INVALID"
	codeNotFound         = "DOCUMENT_NOT_FOUND"
	codeStorageFailure   = "DOCUMENT_STORAGE_FAILURE"
)

var (
	// ErrEmptyName is returned when a document is created without a name.
	ErrEmptyName = errors.New("documents: empty name")
	// ErrInvalidExtension is returned for names not ending in .txt or .md.
	ErrInvalidExtension = errors.New("documents: invalid extension")
	// ErrInvalidName is returned for names that would escape the directory.
	ErrInvalidName = errors.New("documents: invalid name")
	// ErrNotFound is returned when reading or deleting a missing document.
	ErrNotFound = errors.New("documents: not found")
)

func validationError(sentinel error, message, code string) error {
	return goerrors.Wrap(sentinel, goerrors.CategoryValidation, message).
		WithTextCode(code)
}

func notFoundError(name string, cause error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrNotFound, name, cause), goerrors.CategoryNotFound, name+" does not exist.").
		WithTextCode(codeNotFound)
}

func storageError(op, name string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryInternal, fmt.Sprintf("document %s failed for %s", op, name)).
		WithTextCode(codeStorageFailure)
}

// UserMessage returns the user-facing text for a name validation error, or
// an empty string when err is not one.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyName):
		return MessageEmptyName
	case errors.Is(err, ErrInvalidExtension):
		return MessageInvalidExtension
	case errors.Is(err, ErrInvalidName):
		return MessageInvalidName
	default:
		return ""
	}
}

// IsValidation reports whether err rejects a document name.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsNotFound reports whether err refers to a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
