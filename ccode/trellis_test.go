package ccode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// codeWith75 builds the classic (2, 1, 2) code with generators (7, 5).
func codeWith75(t *testing.T) *Code {
	t.Helper()

	code, err := New(2, 1, 2)
	require.NoError(t, err)
	require.NoError(t, code.SetGenerator(7, 0))
	require.NoError(t, code.SetGenerator(5, 1))

	return code
}

func TestNextState(t *testing.T) {
	code := codeWith75(t)

	cases := []struct {
		state uint32
		input uint8
		want  uint32
	}{
		{0b00, 0, 0b00},
		{0b00, 1, 0b01},
		{0b01, 0, 0b10},
		{0b01, 1, 0b11},
		{0b10, 0, 0b00},
		{0b10, 1, 0b01},
		{0b11, 0, 0b10},
		{0b11, 1, 0b11},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, code.NextState(tc.state, tc.input),
			"state %02b input %d", tc.state, tc.input)
	}
}

func TestNextOutput(t *testing.T) {
	code := codeWith75(t)

	cases := []struct {
		state uint32
		input uint8
		want  []uint8
	}{
		{0b00, 0, []uint8{0, 0}},
		{0b00, 1, []uint8{1, 1}},
		{0b01, 0, []uint8{1, 0}},
		{0b01, 1, []uint8{0, 1}},
		{0b10, 1, []uint8{0, 0}},
		{0b11, 0, []uint8{0, 1}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, code.NextOutput(tc.state, tc.input),
			"state %02b input %d", tc.state, tc.input)
	}
}

// NextOutput must be a pure function of its arguments.
func TestNextOutputDeterministic(t *testing.T) {
	code := codeWith75(t)

	for state := uint32(0); state < uint32(code.NumStates()); state++ {
		for input := uint8(0); input <= 1; input++ {
			first := code.NextOutput(state, input)
			for range 10 {
				require.Equal(t, first, code.NextOutput(state, input))
			}
		}
	}
}

// PrevStates must be a left-inverse of NextState: every state reached by a
// transition lists the transition's source among its predecessors, and
// every listed predecessor really does transition there.
func TestPrevStatesLeftInverse(t *testing.T) {
	configs := []struct {
		n, m int
		gens []uint32
	}{
		{2, 2, []uint32{7, 5}},
		{2, 3, []uint32{15, 17}},
		{3, 2, []uint32{7, 7, 5}},
		{1, 0, []uint32{1}},
	}

	for _, cfg := range configs {
		code, err := New(cfg.n, 1, cfg.m)
		require.NoError(t, err)
		for i, g := range cfg.gens {
			require.NoError(t, code.SetGenerator(g, i))
		}

		for state := uint32(0); state < uint32(code.NumStates()); state++ {
			for input := uint8(0); input <= 1; input++ {
				next := code.NextState(state, input)
				require.Contains(t, code.PrevStates(next), state,
					"n=%d m=%d state=%d input=%d", cfg.n, cfg.m, state, input)
			}

			for _, pred := range code.PrevStates(state) {
				require.Equal(t, state, code.NextState(pred, uint8(state&1)),
					"n=%d m=%d state=%d pred=%d", cfg.n, cfg.m, state, pred)
			}
		}
	}
}

func TestPrevOutput(t *testing.T) {
	code := codeWith75(t)

	for state := uint32(0); state < uint32(code.NumStates()); state++ {
		for _, pred := range code.PrevStates(state) {
			require.Equal(t, code.NextOutput(pred, uint8(state&1)), code.PrevOutput(state, pred))
		}
	}
}

func TestWindowCounts(t *testing.T) {
	code := codeWith75(t) // 3-bit window

	require.Equal(t, 3, code.OnesInWindow(0b111))
	require.Equal(t, 0, code.OnesInWindow(0))
	require.Equal(t, 3, code.ZerosInWindow(0))
	require.Equal(t, 1, code.OnesInWindow(0b001))
	require.Equal(t, 2, code.ZerosInWindow(0b001))

	// Bits above the window are ignored.
	require.Equal(t, 3, code.OnesInWindow(0xFF))
	require.Equal(t, 0, code.ZerosInWindow(0xFF))
}
