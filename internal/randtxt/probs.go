// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package randtxt

import "sort"

// prob associates a string with a probability or a cumulative
// probability.
type prob struct {
	s string
	p float64
}

type probs []prob

// byProb sorts by probability.
type byProb struct {
	probs
}

func (s byProb) Len() int      { return len(s.probs) }
func (s byProb) Swap(i, j int) { s.probs[i], s.probs[j] = s.probs[j], s.probs[i] }
func (s byProb) Less(i, j int) bool {
	return s.probs[i].p < s.probs[j].p
}

// SearchProb returns the index of the first entry with a cumulative
// probability larger or equal p.
func (s probs) SearchProb(p float64) int {
	i := sort.Search(len(s), func(k int) bool { return s[k].p >= p })
	if i >= len(s) {
		i = len(s) - 1
	}
	return i
}

// cdf computes the cumulative distribution function for the n
// probabilities provided by p.
func cdf(n int, p func(i int) prob) probs {
	prs := make(probs, n)
	sum := 0.0
	for i := range prs {
		pr := p(i)
		sum += pr.p
		prs[i] = pr
	}
	q := 1.0 / sum
	x := 0.0
	for i, pr := range prs {
		x += pr.p * q
		if x > 1.0 {
			x = 1.0
		}
		prs[i].p = x
	}
	if !sort.IsSorted(byProb{prs}) {
		panic("cdf not sorted")
	}
	return prs
}
