package susa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gta100/susa/ccode"
	"github.com/gta100/susa/errs"
)

func TestNewConvCode(t *testing.T) {
	t.Run("RateHalf", func(t *testing.T) {
		code, err := NewConvCode(2, 7, 5)
		require.NoError(t, err)
		require.Equal(t, 2, code.N())
		require.InDelta(t, 0.5, code.Rate(), 1e-15)
	})

	t.Run("BadGenerator", func(t *testing.T) {
		_, err := NewConvCode(2, 7, 9)
		require.ErrorIs(t, err, errs.ErrInvalidOctalDigit)
	})

	t.Run("NoGenerators", func(t *testing.T) {
		_, err := NewConvCode(2)
		require.ErrorIs(t, err, errs.ErrInvalidCodeParam)
	})
}

func TestEncodeMatrix(t *testing.T) {
	code, err := NewConvCode(2, 7, 5)
	require.NoError(t, err)

	t.Run("ReferenceVector", func(t *testing.T) {
		bits := mat.NewDense(4, 1, []float64{1, 0, 1, 1})
		out, err := Encode(code, bits)
		require.NoError(t, err)

		require.Equal(t, 8, out.Len())
		want := []float64{1, 1, 1, 0, 0, 0, 0, 1}
		for i, v := range want {
			require.Equal(t, v, out.AtVec(i), "bit %d", i)
		}
	})

	t.Run("NonZeroIsOne", func(t *testing.T) {
		a, err := Encode(code, mat.NewDense(3, 1, []float64{1, 0, 1}))
		require.NoError(t, err)
		b, err := Encode(code, mat.NewDense(3, 1, []float64{0.5, 0, -3}))
		require.NoError(t, err)
		require.True(t, mat.Equal(a, b))
	})

	t.Run("WrongShape", func(t *testing.T) {
		_, err := Encode(code, mat.NewDense(2, 2, nil))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})
}

func TestDecodeBCJRMatrix(t *testing.T) {
	code, err := NewConvCode(2, 7, 5)
	require.NoError(t, err)

	bits := []uint8{1, 0, 1, 1, 0, 1}
	encoded, err := code.Encode(bits)
	require.NoError(t, err)

	// One row per trellis step, noiseless antipodal samples.
	received := mat.NewDense(len(bits), 2, nil)
	for i, b := range encoded {
		received.Set(i/2, i%2, 2*float64(b)-1)
	}

	t.Run("RecoversInput", func(t *testing.T) {
		soft, err := DecodeBCJR(code, received, 100)
		require.NoError(t, err)
		require.Equal(t, len(bits), soft.Len())

		for i, b := range bits {
			if b == 1 {
				require.Greater(t, soft.AtVec(i), 0.5, "bit %d", i)
			} else {
				require.Less(t, soft.AtVec(i), 0.5, "bit %d", i)
			}
		}
	})

	t.Run("LLROption", func(t *testing.T) {
		llr, err := DecodeBCJR(code, received, 100, ccode.WithLLROutput())
		require.NoError(t, err)

		for i, b := range bits {
			if b == 1 {
				require.Greater(t, llr.AtVec(i), 0.0, "bit %d", i)
			} else {
				require.Less(t, llr.AtVec(i), 0.0, "bit %d", i)
			}
		}
	})

	t.Run("WrongColumns", func(t *testing.T) {
		_, err := DecodeBCJR(code, mat.NewDense(4, 3, nil), 100)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})
}
