package validators

import "errors"

// ErrValidation marks every failure produced by [RequestValidator.Validate].
// Check with [errors.Is]; the wrapped message lists the offending fields.
var ErrValidation = errors.New("validation failed")
