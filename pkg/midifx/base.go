package midifx

import "github.com/grainwave/dawcore/pkg/framework/param"

// base implements the bookkeeping every Effect shares: a name, a bypass
// flag, and a parameter registry. Concrete effects embed it and add their
// own Process.
type base struct {
	name     string
	bypassed bool
	params   *param.Registry
}

func newBase(name string) base {
	return base{name: name, params: param.NewRegistry()}
}

func (b *base) Name() string           { return b.name }
func (b *base) Bypassed() bool         { return b.bypassed }
func (b *base) SetBypass(bypass bool)  { b.bypassed = bypass }
func (b *base) Params() *param.Registry { return b.params }
