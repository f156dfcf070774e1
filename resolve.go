// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"
)

// decision is the outcome of resolving one receiver in one round. It is
// computed without touching any agent and applied afterwards.
type decision struct {
	receiver *Receiver

	held     []string // new held set
	rejected []string // previously held, released now
	declined []string // proposed this round, never held
}

// resolve merges r's held set with this round's incoming proposals and keeps
// the best r.Capacity of them. A proposer already held is a candidate once.
func resolve(r *Receiver, incoming []string) (decision, error) {
	d := decision{receiver: r}

	candidates := make([]string, 0, len(r.held)+len(incoming))
	seen := make(map[string]struct{}, cap(candidates))
	for _, id := range r.Held() {
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}
	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}

	if len(candidates) <= r.Capacity {
		d.held = candidates
		return d, nil
	}

	for _, id := range candidates {
		if _, ok := r.rank[id]; !ok {
			return d, integrityError(ErrUnranked,
				fmt.Sprintf("receiver %q was proposed to by %q", r.ID, id))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return r.rank[candidates[i]] < r.rank[candidates[j]]
	})

	d.held = candidates[:r.Capacity]
	for _, id := range candidates[r.Capacity:] {
		if r.Holds(id) {
			d.rejected = append(d.rejected, id)
		} else {
			d.declined = append(d.declined, id)
		}
	}
	return d, nil
}
