// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "errors"

var (
	// ErrConfig is wrapped by every error New reports.
	ErrConfig = errors.New("stablematch: configuration error")
	// ErrDataIntegrity is wrapped by errors Run reports when the two
	// populations' preferences disagree.
	ErrDataIntegrity = errors.New("stablematch: data integrity error")

	ErrCapacity            = errors.New("capacity must be positive")
	ErrEmptyID             = errors.New("empty id")
	ErrDuplicateID         = errors.New("duplicate id")
	ErrUnknownID           = errors.New("unknown id in preferences")
	ErrDuplicatePreference = errors.New("duplicate preference")
	ErrUnranked            = errors.New("candidate not ranked by receiver")
)

// causeError matches both its category and its specific cause.
type causeError struct {
	category error
	cause    error
	msg      string
}

func (e *causeError) Error() string {
	return e.category.Error() + ": " + e.msg + ": " + e.cause.Error()
}

func (e *causeError) Unwrap() []error {
	return []error{e.category, e.cause}
}

func configError(cause error, msg string) error {
	return &causeError{category: ErrConfig, cause: cause, msg: msg}
}

func integrityError(cause error, msg string) error {
	return &causeError{category: ErrDataIntegrity, cause: cause, msg: msg}
}
