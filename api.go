// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stablematch provides a capacitated stable matching engine based on
// the deferred acceptance (Gale-Shapley) algorithm.
//
// Proposers consume their preference lists front to back, receivers hold
// the best proposals they have seen so far up to their capacity and reject
// the rest. The result is the proposer-optimal stable matching.
package stablematch

import "go.uber.org/zap"

type Matcher interface {
	Match(proposers, receivers []Record) (assignment Assignment, err error)
}

// Record is the construction input of one agent.
type Record struct {
	ID          string
	Preferences []string // most preferred first
	Capacity    int
}

type Matches map[string][]string // agent ID -> matched IDs

// Assignment is the caller-facing view of a finished run.
type Assignment struct {
	Rounds    int
	Receivers Matches  // receiverID -> held proposers, in the receiver's preference order
	Proposers Matches  // proposerID -> held receivers, in the proposer's preference order
	Unmatched []string // proposers holding nothing, in input order
}

type options struct {
	logger  *zap.Logger
	workers int
}

type Option func(*options)

// WithLogger traces every round at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers resolves the receivers of a round concurrently with up to n
// goroutines. n <= 1 keeps the resolve phase sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
