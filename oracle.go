// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "fmt"

// Done reports whether every proposer is full or has exhausted its
// preferences. Full receivers alone do not end the run.
func (e *Engine) Done() bool {
	for _, p := range e.proposers {
		if !p.Satisfied() {
			return false
		}
	}
	return true
}

// CheckInvariants verifies the capacity and symmetry invariants of the
// current agent state.
func (e *Engine) CheckInvariants() error {
	for _, p := range e.proposers {
		if len(p.held) > p.Capacity {
			return fmt.Errorf("proposer %q holds %d > capacity %d", p.ID, len(p.held), p.Capacity)
		}
		for id := range p.held {
			r, ok := e.receiverOf[id]
			if !ok || !r.Holds(p.ID) {
				return fmt.Errorf("proposer %q holds %q which does not hold it", p.ID, id)
			}
		}
	}
	for _, r := range e.receivers {
		if len(r.held) > r.Capacity {
			return fmt.Errorf("receiver %q holds %d > capacity %d", r.ID, len(r.held), r.Capacity)
		}
		for id := range r.held {
			p, ok := e.proposerOf[id]
			if !ok || !p.Holds(r.ID) {
				return fmt.Errorf("receiver %q holds %q which does not hold it", r.ID, id)
			}
		}
	}
	return nil
}

type BlockingPair struct {
	Proposer string
	Receiver string
}

// BlockingPairs lists every proposer/receiver pair that are not matched to
// each other but would both rather be: each has spare capacity or prefers
// the other over its worst current match. A stable matching has none.
func (e *Engine) BlockingPairs() []BlockingPair {
	var pairs []BlockingPair
	for _, p := range e.proposers {
		pWorst := worstRank(p.held, p.rank)
		for i, id := range p.prefs {
			if p.Holds(id) {
				continue
			}
			if p.Available() <= 0 && i > pWorst {
				continue
			}
			r := e.receiverOf[id]
			ri, ranked := r.rank[p.ID]
			if !ranked {
				continue
			}
			if r.Available() <= 0 && ri > worstRank(r.held, r.rank) {
				continue
			}
			pairs = append(pairs, BlockingPair{Proposer: p.ID, Receiver: r.ID})
		}
	}
	return pairs
}

// worstRank returns the largest rank in set. Unranked members rank below
// every ranked id.
func worstRank(set map[string]struct{}, rank map[string]int) int {
	worst := -1
	for id := range set {
		i, ok := rank[id]
		if !ok {
			i = len(rank)
		}
		if i > worst {
			worst = i
		}
	}
	return worst
}
