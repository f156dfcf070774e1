// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "sort"

// Proposer consumes its preferences front to back. Consumed entries are
// never proposed to again.
type Proposer struct {
	ID       string
	Capacity int

	prefs []string // immutable copy of the input ranking
	next  int      // first unconsumed entry of prefs
	rank  map[string]int
	held  map[string]struct{}
}

func newProposer(rec Record) *Proposer {
	p := &Proposer{
		ID:       rec.ID,
		Capacity: rec.Capacity,
		prefs:    append([]string(nil), rec.Preferences...),
		rank:     make(map[string]int, len(rec.Preferences)),
		held:     make(map[string]struct{}, rec.Capacity),
	}
	for i, id := range p.prefs {
		p.rank[id] = i
	}
	return p
}

func (p *Proposer) Available() int {
	return p.Capacity - len(p.held)
}

// Remaining returns the preferences not proposed to yet.
func (p *Proposer) Remaining() []string {
	return append([]string(nil), p.prefs[p.next:]...)
}

func (p *Proposer) Full() bool {
	return len(p.held) >= p.Capacity
}

func (p *Proposer) Exhausted() bool {
	return p.next >= len(p.prefs)
}

// Satisfied reports whether p has nothing left to do: it is full or it has
// proposed to every receiver it ranks.
func (p *Proposer) Satisfied() bool {
	return p.Full() || p.Exhausted()
}

// Held returns the receivers holding p, most preferred first.
func (p *Proposer) Held() []string {
	return sortByRank(p.held, p.rank)
}

func (p *Proposer) Holds(receiverID string) bool {
	_, ok := p.held[receiverID]
	return ok
}

// popNext consumes min(Available, remaining) preferences.
func (p *Proposer) popNext() []string {
	n := p.Available()
	if rest := len(p.prefs) - p.next; rest < n {
		n = rest
	}
	if n <= 0 {
		return nil
	}
	next := p.prefs[p.next : p.next+n]
	p.next += n
	return next
}

// Receiver ranks proposers but never consumes its preferences.
type Receiver struct {
	ID       string
	Capacity int

	prefs []string
	rank  map[string]int
	held  map[string]struct{}
}

func newReceiver(rec Record) *Receiver {
	r := &Receiver{
		ID:       rec.ID,
		Capacity: rec.Capacity,
		prefs:    append([]string(nil), rec.Preferences...),
		rank:     make(map[string]int, len(rec.Preferences)),
		held:     make(map[string]struct{}, rec.Capacity),
	}
	for i, id := range r.prefs {
		r.rank[id] = i
	}
	return r
}

func (r *Receiver) Available() int {
	return r.Capacity - len(r.held)
}

func (r *Receiver) Full() bool {
	return len(r.held) >= r.Capacity
}

// Held returns the proposers r currently holds, most preferred first.
func (r *Receiver) Held() []string {
	return sortByRank(r.held, r.rank)
}

func (r *Receiver) Holds(proposerID string) bool {
	_, ok := r.held[proposerID]
	return ok
}

// Rank returns the position of proposerID in r's preferences.
func (r *Receiver) Rank(proposerID string) (int, bool) {
	i, ok := r.rank[proposerID]
	return i, ok
}

// sortByRank orders ids by rank, unranked ids last by id.
func sortByRank(set map[string]struct{}, rank map[string]int) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, oki := rank[ids[i]]
		rj, okj := rank[ids[j]]
		switch {
		case oki && okj:
			return ri < rj
		case oki != okj:
			return oki
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
