package hwlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/db47h/evsim/hwtest"
)

// pair adapts a two input gate to a 2 bits input bus: a[1] drives a, a[0]
// drives b.
func pair(g func(k *evsim.Kernel, a, b, out *evsim.Signal) *evsim.Comb) hwtest.GateFn {
	return func(k *evsim.Kernel, a, out *evsim.Signal) *evsim.Comb {
		x, y := k.NewBit(""), k.NewBit("")
		k.AlwaysComb("split", []*evsim.Signal{a}, func() {
			x.Write(a.Read() >> 1)
			y.Write(a.Read())
		})
		return g(k, x, y, out)
	}
}

func TestGates(t *testing.T) {
	td := []struct {
		name    string
		in, out uint
		gate    hwtest.GateFn
		want    []string
	}{
		{"AND", 2, 1, hl.And, []string{"0", "0", "0", "1"}},
		{"AND3", 3, 1, hl.And, []string{"0", "0", "0", "0", "0", "0", "0", "1"}},
		{"OR", 2, 1, hl.Or, []string{"0", "1", "1", "1"}},
		{"OR3", 3, 1, hl.Or, []string{"0", "1", "1", "1", "1", "1", "1", "1"}},
		{"NOT", 1, 1, hl.Not, []string{"1", "0"}},
		{"NOT2", 2, 2, hl.Not, []string{"11", "10", "01", "00"}},
		{"XOR", 2, 1, hl.Xor, []string{"0", "1", "1", "0"}},
		{"XOR3", 3, 1, hl.Xor, []string{"0", "1", "1", "0", "1", "0", "0", "0"}},
		{"PARITY", 2, 1, hl.OddParity, []string{"0", "1", "1", "0"}},
		{"PARITY3", 3, 1, hl.OddParity, []string{"0", "1", "1", "0", "1", "0", "0", "1"}},
		{"NAND", 2, 1, pair(hl.Nand), []string{"1", "1", "1", "0"}},
		{"NOR", 2, 1, pair(hl.Nor), []string{"1", "0", "0", "0"}},
		{"XNOR", 2, 1, pair(hl.Xnor), []string{"1", "0", "0", "1"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			assert.Equal(t, d.want, hwtest.TruthTable(t, d.in, d.out, d.gate))
		})
	}
}

// Reducing gates of width 4 checked against their definition.
func TestReduce4(t *testing.T) {
	and := hwtest.TruthTable(t, 4, 1, hl.And)
	or := hwtest.TruthTable(t, 4, 1, hl.Or)
	par := hwtest.TruthTable(t, 4, 1, hl.OddParity)
	for v := 0; v < 16; v++ {
		n := 0
		for i := uint(0); i < 4; i++ {
			n += v >> i & 1
		}
		assert.Equal(t, evsim.Bin(b2u(v == 15), 1), and[v], "AND %04b", v)
		assert.Equal(t, evsim.Bin(b2u(v != 0), 1), or[v], "OR %04b", v)
		assert.Equal(t, evsim.Bin(uint64(n&1), 1), par[v], "PARITY %04b", v)
	}
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func TestGateNames(t *testing.T) {
	k := evsim.NewKernel()
	a, out := k.NewSignal("a", 2, 0), k.NewBit("out")
	assert.Equal(t, "AND:out", hl.And(k, a, out).Name())
	b := k.NewBit("b")
	c := hl.Nand(k, b, b, k.NewBit("nb"))
	assert.Equal(t, "NAND:nb", c.Name())
	assert.Equal(t, []*evsim.Signal{b, b}, c.Inputs())
}
