// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import "github.com/cpmech/gosl/chk"

// Gradient holds the gradient-factor schedule. The gradient factor scales the
// allowed supersaturation: GfLow applies at the first (deepest) stop and
// GfHigh at the surface; between the two the factor relaxes linearly as the
// diver ascends. Depths here are gauge pressures [bar]
type Gradient struct {
	GfLow     float64 `json:"gflow"`     // gradient factor at the first stop
	GfHigh    float64 `json:"gfhigh"`    // gradient factor at the surface
	Gf        float64 `json:"gf"`        // current gradient factor
	FirstStop float64 `json:"firststop"` // depth of the first stop [bar]; 0 means not set
}

// Init sets the gradient factor pair. Requires 0 < gfLow <= gfHigh <= 1.
// Until a first stop is set via SetGfAtDepth the current factor is GfHigh
func (o *Gradient) Init(gfLow, gfHigh float64) (err error) {
	if gfLow <= 0 || gfLow > gfHigh || gfHigh > 1 {
		return chk.Err(_gradient_err01, gfLow, gfHigh)
	}
	o.GfLow, o.GfHigh = gfLow, gfHigh
	o.Gf = gfHigh
	o.FirstStop = 0
	return
}

// SetGfAtDepth fixes the depth [bar] of the first decompression stop and
// switches the current factor to GfLow
func (o *Gradient) SetGfAtDepth(depth float64) {
	if depth > 0 {
		o.FirstStop = depth
		o.Gf = o.GfLow
		return
	}
	o.FirstStop = 0
	o.Gf = o.GfHigh
}

// UpdateGfAtDepth recomputes the current factor for the given depth [bar] by
// linear interpolation between GfHigh (surface) and GfLow (first stop),
// clamped to [GfLow, GfHigh]
func (o *Gradient) UpdateGfAtDepth(depth float64) {
	if o.FirstStop <= 0 {
		o.Gf = o.GfHigh
		return
	}
	gf := o.GfHigh + (o.GfLow-o.GfHigh)*depth/o.FirstStop
	if gf < o.GfLow {
		gf = o.GfLow
	}
	if gf > o.GfHigh {
		gf = o.GfHigh
	}
	o.Gf = gf
}

// GF returns the current gradient factor
func (o Gradient) GF() float64 {
	return o.Gf
}

// error messages
var (
	_gradient_err01 = "invalid coefficient: gradient factors must satisfy 0 < gf_low <= gf_high <= 1 (gf_low=%g, gf_high=%g)\n"
)
