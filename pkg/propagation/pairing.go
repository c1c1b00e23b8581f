package propagation

import (
	"iter"
	"math/rand/v2"
	"slices"
)

const unpaired = -1

// Pairing matches each user with at most one partner for an iteration.
// Partnership is symmetric: if a is paired with b, b is paired with a.
type Pairing struct {
	partner []int
}

// Partner returns the partner of user.
func (p Pairing) Partner(user int) (int, bool) {
	if user < 0 || user >= len(p.partner) || p.partner[user] == unpaired {
		return 0, false
	}
	return p.partner[user], true
}

// Len returns the number of pairs.
func (p Pairing) Len() int {
	n := 0
	for u, v := range p.partner {
		if v != unpaired && u < v {
			n++
		}
	}
	return n
}

// Pairs yields every pair once, lower index first.
func (p Pairing) Pairs() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for u, v := range p.partner {
			if v != unpaired && u < v {
				if !yield(u, v) {
					return
				}
			}
		}
	}
}

// buildPairing visits users in random order and pairs every still unpaired
// user with a random unpaired candidate. Both sides are written in the same
// step, so no user can be booked twice.
func buildPairing(n int, candidates func(user int) []int, memory *contactMemory, rng *rand.Rand) Pairing {
	partner := make([]int, n)
	for i := range partner {
		partner[i] = unpaired
	}
	for _, u := range rng.Perm(n) {
		if partner[u] != unpaired {
			continue
		}
		free := slices.DeleteFunc(candidates(u), func(v int) bool {
			return v == u || partner[v] != unpaired
		})
		v := memory.pick(u, free, rng)
		if v == unpaired {
			continue
		}
		partner[u] = v
		partner[v] = u
		memory.remember(v, u)
	}
	return Pairing{partner: partner}
}

// contactMemory remembers each user's last wait contacts so they are not
// chosen again until the wait time has passed.
type contactMemory struct {
	wait   int
	recent [][]int
}

func newContactMemory(wait int) *contactMemory {
	return &contactMemory{wait: wait}
}

func (c *contactMemory) ensure(n int) {
	for len(c.recent) < n {
		c.recent = append(c.recent, nil)
	}
}

func (c *contactMemory) reset(n int) {
	c.recent = make([][]int, n)
}

// pick chooses a random candidate not contacted during the wait window. It
// returns unpaired when there is none.
func (c *contactMemory) pick(user int, candidates []int, rng *rand.Rand) int {
	if len(candidates) == 0 {
		return unpaired
	}
	fresh := candidates
	if c.wait > 0 && len(c.recent[user]) > 0 {
		fresh = make([]int, 0, len(candidates))
		for _, v := range candidates {
			if !slices.Contains(c.recent[user], v) {
				fresh = append(fresh, v)
			}
		}
		if len(fresh) == 0 {
			return unpaired
		}
	}
	v := fresh[rng.IntN(len(fresh))]
	c.remember(user, v)
	return v
}

func (c *contactMemory) remember(user, contact int) {
	if c.wait <= 0 {
		return
	}
	r := append(c.recent[user], contact)
	if len(r) > c.wait {
		r = r[len(r)-c.wait:]
	}
	c.recent[user] = r
}
