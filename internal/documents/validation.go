package documents

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Extensions accepted for document names.
const (
	ExtText     = ".txt"
	ExtMarkdown = ".md"
)

const (
	ruleNameEmpty        = "cms.documents.name_empty"
	ruleExtensionInvalid = "cms.documents.extension_invalid"
	ruleNameInvalid      = "cms.documents.name_invalid"
)

// ValidateName checks a name submitted for creation. The empty check runs
// first, then the extension check, then the path check.
func ValidateName(name string) error {
	err := validation.Validate(name,
		validation.Required.ErrorObject(validation.NewError(ruleNameEmpty, MessageEmptyName)),
		validation.By(func(value any) error {
			if !HasDocumentExtension(value.(string)) {
				return validation.NewError(ruleExtensionInvalid, MessageInvalidExtension)
			}
			return nil
		}),
		validation.By(func(value any) error {
			if !isPlainName(value.(string)) {
				return validation.NewError(ruleNameInvalid, MessageInvalidName)
			}
			return nil
		}),
	)
	if err == nil {
		return nil
	}

	var rule validation.Error
	if !errors.As(err, &rule) {
		return validationError(ErrInvalidName, MessageInvalidName, codeNameInvalid)
	}
	switch rule.Code() {
	case ruleNameEmpty:
		return validationError(ErrEmptyName, MessageEmptyName, codeNameEmpty)
	case ruleExtensionInvalid:
		return validationError(ErrInvalidExtension, MessageInvalidExtension, codeExtensionInvalid)
	default:
		return validationError(ErrInvalidName, MessageInvalidName, codeNameInvalid)
	}
}

// HasDocumentExtension reports whether name ends with .txt or .md.
func HasDocumentExtension(name string) bool {
	return strings.HasSuffix(name, ExtText) || strings.HasSuffix(name, ExtMarkdown)
}

func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}
