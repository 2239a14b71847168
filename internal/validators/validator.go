// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for incoming API payloads.
//
// Validation rules live on the request structs as `validate` struct tags
// and are enforced by the go-playground/validator library. Failures are
// normalised to [ErrValidation] with human-readable, JSON-field-named
// messages so transport layers can map them to a 400 without inspecting
// library internals.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps go-playground/validator with JSON field naming and
// sentinel error conversion. Safe for concurrent use.
type RequestValidator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *RequestValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			return name[:i]
		}
		return name
	})

	return &RequestValidator{v: v}
}

// Validate checks the struct against its `validate` tags.
// Returns nil on success, or an error wrapping [ErrValidation] whose message
// names every offending field.
func (rv *RequestValidator) Validate(s any) error {
	err := rv.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Field()+" "+friendlyMessage(e))
	}
	sort.Strings(messages)

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	default:
		return "is invalid"
	}
}
