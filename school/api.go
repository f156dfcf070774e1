// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package school uses stablematch to allocate students to schools.
package school

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/someonegg/stablematch"
)

type Student struct {
	Name        string   `json:"name" yaml:"name"`
	Preferences []string `json:"preferences" yaml:"preferences"` // school names
}

type School struct {
	Name        string   `json:"name" yaml:"name"`
	Preferences []string `json:"preferences" yaml:"preferences"` // student names
	Capacity    int      `json:"capacity" yaml:"capacity"`
}

type Data struct {
	Students []*Student `json:"students" yaml:"students"`
	Schools  []*School  `json:"schools" yaml:"schools"`
}

// Side selects which population proposes.
type Side string

const (
	Students Side = "students"
	Schools  Side = "schools"
)

var ErrUnknownSide = fmt.Errorf("%w: proposing side must be either %q or %q",
	stablematch.ErrConfig, Students, Schools)

// ParseSide accepts the side names, their singular forms and the menu
// numbers 1 (students) and 2 (schools).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "students", "student", "1":
		return Students, nil
	case "schools", "school", "2":
		return Schools, nil
	}
	return "", fmt.Errorf("%w, got %q", ErrUnknownSide, s)
}

type Matcher struct {
	// Proposing defaults to Students.
	Proposing Side

	// Workers > 1 resolves the schools (or students) of a round concurrently.
	Workers int

	// Logger receives the round trace at debug level. Can be nil.
	Logger *zap.Logger
}

type Allocation struct {
	Proposing Side           `json:"proposing" yaml:"proposing"`
	Rounds    int            `json:"rounds" yaml:"rounds"`
	Schools   []*SchoolAlloc `json:"schools" yaml:"schools"`
	Unmatched []string       `json:"unmatched" yaml:"unmatched"`
	Summary   Summary        `json:"summary" yaml:"summary"`
}

type SchoolAlloc struct {
	Name     string   `json:"name" yaml:"name"`
	Capacity int      `json:"capacity" yaml:"capacity"`
	Students []string `json:"students" yaml:"students"` // in the school's preference order
}

type Summary struct {
	StudentsCount  int `json:"students" yaml:"students"`
	SchoolsCount   int `json:"schools" yaml:"schools"`
	Seats          int `json:"seats" yaml:"seats"`
	SeatsFilled    int `json:"seats_filled" yaml:"seats_filled"`
	UnmatchedCount int `json:"unmatched" yaml:"unmatched"`
}
