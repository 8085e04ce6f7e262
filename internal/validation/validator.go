// Package validation holds the field validators run against inbound requests
// before any use case executes.
//
// A Validator returns nil on success, a *domain.ValidationError for an
// expected failure, and any other error only when a repository-backed check
// could not complete.
package validation

import (
	"context"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

type Validator interface {
	Validate(ctx context.Context) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(ctx context.Context) error

func (f ValidatorFunc) Validate(ctx context.Context) error { return f(ctx) }

// First runs validators in order and returns the first failure.
func First(ctx context.Context, validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// nonEmpty fails with RequiredField whenever empty reports true.
type nonEmpty struct {
	field string
	empty func() bool
}

func (v nonEmpty) Validate(context.Context) error {
	if v.empty() {
		return domain.RequiredField(v.field)
	}
	return nil
}

// Required rejects nil, zero values and zero-length collections.
func Required(field string, value any) Validator {
	return nonEmpty{field: field, empty: func() bool { return isAbsent(value) }}
}

// RequiredString also rejects strings that are blank once trimmed.
func RequiredString(field, value string) Validator {
	return nonEmpty{field: field, empty: func() bool { return strings.TrimSpace(value) == "" }}
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}

type minLength struct {
	field string
	value any
	min   int
}

// MinLength counts runes for strings and elements for collections. It does
// not check presence; chain it after Required.
func MinLength(field string, value any, min int) Validator {
	return minLength{field: field, value: value, min: min}
}

func (v minLength) Validate(context.Context) error {
	if length(v.value) < v.min {
		return domain.MinLength(v.field, v.min)
	}
	return nil
}

func length(value any) int {
	switch s := value.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(s)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len()
	}
	return 0
}

// local@label(.label)*.tld; the TLD must be alphabetic.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)

type emailFormat struct {
	value any
}

func EmailFormat(value any) Validator {
	return emailFormat{value: value}
}

func (v emailFormat) Validate(context.Context) error {
	s, ok := v.value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return domain.ErrBadEmailFormat
	}
	return nil
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
