// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs deferred acceptance over one proposer and one receiver
// population. It is single use: after Run the agents are read only.
type Engine struct {
	proposers  []*Proposer
	receivers  []*Receiver
	proposerOf map[string]*Proposer
	receiverOf map[string]*Receiver

	logger  *zap.Logger
	workers int

	rounds int
	ran    bool
	err    error
}

// New validates both populations and builds the agents. Every error wraps
// ErrConfig.
func New(proposers, receivers []Record, opts ...Option) (*Engine, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate("proposer", proposers, receivers); err != nil {
		return nil, err
	}
	if err := validate("receiver", receivers, proposers); err != nil {
		return nil, err
	}

	e := &Engine{
		proposers:  make([]*Proposer, len(proposers)),
		receivers:  make([]*Receiver, len(receivers)),
		proposerOf: make(map[string]*Proposer, len(proposers)),
		receiverOf: make(map[string]*Receiver, len(receivers)),
		logger:     o.logger,
		workers:    o.workers,
	}
	for i, rec := range proposers {
		e.proposers[i] = newProposer(rec)
		e.proposerOf[rec.ID] = e.proposers[i]
	}
	for i, rec := range receivers {
		e.receivers[i] = newReceiver(rec)
		e.receiverOf[rec.ID] = e.receivers[i]
	}
	return e, nil
}

func validate(kind string, side, other []Record) error {
	known := make(map[string]struct{}, len(other))
	for _, rec := range other {
		known[rec.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(side))
	for _, rec := range side {
		if rec.ID == "" {
			return configError(ErrEmptyID, kind)
		}
		if _, dup := ids[rec.ID]; dup {
			return configError(ErrDuplicateID, fmt.Sprintf("%s %q", kind, rec.ID))
		}
		ids[rec.ID] = struct{}{}

		if rec.Capacity <= 0 {
			return configError(ErrCapacity,
				fmt.Sprintf("%s %q has capacity %d", kind, rec.ID, rec.Capacity))
		}

		prefs := make(map[string]struct{}, len(rec.Preferences))
		for _, id := range rec.Preferences {
			if _, ok := known[id]; !ok {
				return configError(ErrUnknownID, fmt.Sprintf("%s %q lists %q", kind, rec.ID, id))
			}
			if _, dup := prefs[id]; dup {
				return configError(ErrDuplicatePreference,
					fmt.Sprintf("%s %q lists %q twice", kind, rec.ID, id))
			}
			prefs[id] = struct{}{}
		}
	}
	return nil
}

// Run executes rounds until every proposer is full or exhausted, and returns
// the number of rounds executed. Calling Run again returns the same result.
func (e *Engine) Run() (rounds int, err error) {
	if e.ran {
		return e.rounds, e.err
	}
	e.ran = true

	for !e.Done() {
		incoming := e.propose()
		if len(incoming) == 0 {
			// Done guarantees some proposer can still propose.
			break
		}
		if err := e.resolveAll(incoming); err != nil {
			e.err = err
			return e.rounds, err
		}
		e.rounds++
		e.logger.Debug("round finished", zap.Int("round", e.rounds))
	}

	return e.rounds, nil
}

// propose collects this round's proposals per receiver, in proposer order.
func (e *Engine) propose() map[*Receiver][]string {
	incoming := make(map[*Receiver][]string)
	for _, p := range e.proposers {
		for _, id := range p.popNext() {
			r := e.receiverOf[id]
			incoming[r] = append(incoming[r], p.ID)
			e.logger.Debug("propose",
				zap.Int("round", e.rounds+1),
				zap.String("proposer", p.ID),
				zap.String("receiver", r.ID))
		}
	}
	return incoming
}

// resolveAll resolves every receiver with proposals. All decisions are
// computed before any is applied, so the parallel and sequential modes
// produce the same state.
func (e *Engine) resolveAll(incoming map[*Receiver][]string) error {
	var pending []*Receiver
	for _, r := range e.receivers {
		if len(incoming[r]) > 0 {
			pending = append(pending, r)
		}
	}

	decisions := make([]decision, len(pending))
	if e.workers > 1 && len(pending) > 1 {
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i, r := range pending {
			g.Go(func() error {
				d, err := resolve(r, incoming[r])
				decisions[i] = d
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, r := range pending {
			d, err := resolve(r, incoming[r])
			if err != nil {
				return err
			}
			decisions[i] = d
		}
	}

	for _, d := range decisions {
		e.apply(d)
	}
	return nil
}

func (e *Engine) apply(d decision) {
	r := d.receiver

	r.held = make(map[string]struct{}, r.Capacity)
	for _, id := range d.held {
		r.held[id] = struct{}{}
		e.proposerOf[id].held[r.ID] = struct{}{}
	}
	for _, id := range d.rejected {
		delete(e.proposerOf[id].held, r.ID)
	}

	e.logger.Debug("resolve",
		zap.Int("round", e.rounds+1),
		zap.String("receiver", r.ID),
		zap.Strings("held", r.Held()),
		zap.Strings("rejected", d.rejected),
		zap.Strings("declined", d.declined))
}

// Rounds returns the number of rounds executed so far.
func (e *Engine) Rounds() int {
	return e.rounds
}

func (e *Engine) Proposers() []*Proposer {
	return e.proposers
}

func (e *Engine) Receivers() []*Receiver {
	return e.receivers
}

func (e *Engine) Proposer(id string) *Proposer {
	return e.proposerOf[id]
}

func (e *Engine) Receiver(id string) *Receiver {
	return e.receiverOf[id]
}

// Matches returns every receiver's held proposers, most preferred first.
func (e *Engine) Matches() Matches {
	matches := make(Matches, len(e.receivers))
	for _, r := range e.receivers {
		matches[r.ID] = r.Held()
	}
	return matches
}

// Unmatched returns the proposers holding nothing, in input order.
func (e *Engine) Unmatched() []string {
	var ids []string
	for _, p := range e.proposers {
		if len(p.held) == 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (e *Engine) Assignment() Assignment {
	proposers := make(Matches, len(e.proposers))
	for _, p := range e.proposers {
		proposers[p.ID] = p.Held()
	}
	return Assignment{
		Rounds:    e.rounds,
		Receivers: e.Matches(),
		Proposers: proposers,
		Unmatched: e.Unmatched(),
	}
}

type deferredMatcher struct {
	opts []Option
}

// DeferredAcceptance returns a Matcher building a fresh Engine per Match.
func DeferredAcceptance(opts ...Option) Matcher {
	return deferredMatcher{opts}
}

func (m deferredMatcher) Match(proposers, receivers []Record) (Assignment, error) {
	e, err := New(proposers, receivers, m.opts...)
	if err != nil {
		return Assignment{}, err
	}
	if _, err := e.Run(); err != nil {
		return Assignment{}, err
	}
	return e.Assignment(), nil
}
