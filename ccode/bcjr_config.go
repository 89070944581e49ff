package ccode

import (
	"fmt"

	"github.com/gta100/susa/errs"
	"github.com/gta100/susa/internal/options"
)

// decodeConfig holds the per-call BCJR settings.
type decodeConfig struct {
	prior float64
	llr   bool
}

// DecodeOption configures one DecodeBCJR call.
type DecodeOption = options.Option[*decodeConfig]

// WithPrior sets the a-priori probability of an input bit being 1. The
// default of 0.5 models an equiprobable source; values outside (0, 1) are
// rejected.
func WithPrior(p float64) DecodeOption {
	return options.New(func(cfg *decodeConfig) error {
		if !(p > 0 && p < 1) {
			return fmt.Errorf("%w: got %v", errs.ErrInvalidPrior, p)
		}
		cfg.prior = p

		return nil
	})
}

// WithLLROutput switches the soft output from the a-posteriori probability
// P(bit=1) to the log-likelihood ratio ln(L1/L0). The LLR may be ±Inf when
// one hypothesis has zero likelihood; the sign still carries the hard
// decision.
func WithLLROutput() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.llr = true
	})
}
