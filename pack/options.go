package pack

import (
	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/internal/options"
)

// FloatPrecision selects how the packer narrows a Float value to a wire
// width, per spec.md §3's "force_float_precision" pack option.
type FloatPrecision uint8

const (
	// FloatAuto lets the packer choose float32 or float64 for each float
	// on its own: float32 when the value round-trips exactly through
	// binary32, float64 otherwise. The choice is not made once per
	// Pack/PackTo call, so one document can contain both widths.
	FloatAuto FloatPrecision = iota
	// FloatSingle always emits float 32 (0xca).
	FloatSingle
	// FloatDouble always emits float 64 (0xcb).
	FloatDouble
)

// config holds the resolved pack-time settings for one Pack/PackTo call.
type config struct {
	floatPrecision FloatPrecision
	registry       *ext.Registry
}

func newConfig() *config {
	return &config{
		floatPrecision: FloatAuto,
		registry:       ext.Default,
	}
}

// Option is a functional option for Pack and PackTo.
type Option = options.Option[*config]

// WithFloatPrecision sets how the packer narrows Float values to wire
// width. The default is FloatAuto.
func WithFloatPrecision(p FloatPrecision) Option {
	return options.NoError(func(c *config) {
		c.floatPrecision = p
	})
}

// WithRegistry overrides the extension registry consulted before the
// standard family switch. The default is ext.Default.
func WithRegistry(r *ext.Registry) Option {
	return options.NoError(func(c *config) {
		c.registry = r
	})
}
