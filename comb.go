// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import "sort"

// Comb is an always-combinational block: a function of its input signals that
// is re-evaluated every time one of its inputs changes.
//
type Comb struct {
	id      int
	name    string
	inputs  []*Signal
	fn      func()
	pending bool
}

// Name returns the block's name.
//
func (c *Comb) Name() string { return c.name }

// Inputs returns the block's sensitivity list.
//
func (c *Comb) Inputs() []*Signal { return c.inputs }

// AlwaysComb registers fn as an always-combinational block sensitive to the
// given inputs. fn is evaluated once in the first delta cycle of the next run,
// then every time the committed value of any input changes. fn should only
// read its inputs and write its outputs.
//
// Output writes are committed in the next delta cycle of the same instant, so
// cascaded blocks settle before time advances.
//
func (k *Kernel) AlwaysComb(name string, inputs []*Signal, fn func()) *Comb {
	c := &Comb{
		id:     len(k.combs),
		name:   name,
		inputs: inputs,
		fn:     fn,
	}
	k.combs = append(k.combs, c)
	for _, in := range inputs {
		in.combs = append(in.combs, c)
	}
	k.markComb(c)
	return c
}

func (k *Kernel) markComb(c *Comb) {
	if !c.pending {
		c.pending = true
		k.pendingCombs = append(k.pendingCombs, c)
	}
}

// evalCombs evaluates pending blocks in registration order.
func (k *Kernel) evalCombs() {
	cs := k.pendingCombs
	k.pendingCombs = k.spareCombs[:0]
	sort.Slice(cs, func(i, j int) bool { return cs[i].id < cs[j].id })
	for _, c := range cs {
		c.pending = false
		c.fn()
		k.stats.Evals++
	}
	k.spareCombs = cs[:0]
}
