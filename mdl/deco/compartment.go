// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Compartment holds the state of one theoretical tissue: the inert gas
// partial pressures [bar] and the per-gas kinetic and M-value coefficients.
// Compartments are value types owned by a Model; all mutation goes through
// the Model's segment operations
type Compartment struct {

	// state
	PpHe float64 // partial pressure of Helium [bar]
	PpN2 float64 // partial pressure of Nitrogen [bar]

	// kinetic constants, k = ln(2) / (60 * half-time) [1/s]
	kHe float64
	kN2 float64

	// M-value coefficients (a in bar, b dimensionless)
	aHe float64
	bHe float64
	aN2 float64
	bN2 float64
}

// SetCoefficients sets the half-times [min] and the M-value coefficients for
// both inert gases and derives the kinetic constants. a coefficients are
// given in bar. All inputs must be strictly positive
func (o *Compartment) SetCoefficients(hHe, hN2, aHe, bHe, aN2, bN2 float64) (err error) {
	for _, v := range []float64{hHe, hN2, aHe, bHe, aN2, bN2} {
		if v <= 0 {
			return chk.Err(_compartment_err01, hHe, hN2, aHe, bHe, aN2, bN2)
		}
	}
	o.kHe = math.Ln2 / (60.0 * hHe)
	o.kN2 = math.Ln2 / (60.0 * hN2)
	o.aHe, o.bHe = aHe, bHe
	o.aN2, o.bN2 = aN2, bN2
	return
}

// SetPp sets the inert gas partial pressures [bar]. PpN2 must be strictly
// positive and PpHe non-negative
func (o *Compartment) SetPp(ppHe, ppN2 float64) (err error) {
	if ppN2 <= 0 || ppHe < 0 {
		return chk.Err(_compartment_err02, ppHe, ppN2)
	}
	o.PpHe, o.PpN2 = ppHe, ppN2
	return
}

// ConstDepth integrates the tissue loading at constant inspired partial
// pressures [bar] over dt [s] using the Haldane equation
func (o *Compartment) ConstDepth(ppHeInspired, ppN2Inspired, dt float64) (err error) {
	if dt < 0 || ppHeInspired < 0 || ppN2Inspired < 0 {
		return chk.Err(_compartment_err03, ppHeInspired, ppN2Inspired, dt)
	}
	o.PpHe = haldane(ppHeInspired, o.PpHe, o.kHe, dt)
	o.PpN2 = haldane(ppN2Inspired, o.PpN2, o.kN2, dt)
	return
}

// AscDesc integrates the tissue loading over dt [s] while the inspired
// partial pressures change linearly from the given start values [bar] at the
// given rates [bar/s], using the Schreiner equation
func (o *Compartment) AscDesc(ppHeInspired, ppN2Inspired, rateHe, rateN2, dt float64) (err error) {
	if dt <= 0 || ppHeInspired < 0 || ppN2Inspired < 0 {
		return chk.Err(_compartment_err04, ppHeInspired, ppN2Inspired, dt)
	}
	o.PpHe = schreiner(ppHeInspired, o.PpHe, rateHe, o.kHe, dt)
	o.PpN2 = schreiner(ppN2Inspired, o.PpN2, rateN2, o.kN2, dt)
	return
}

// MValueAt returns the tolerated total inert gas pressure (M-value) [bar] at
// the given ambient pressure [bar]. The a and b coefficients are blended
// linearly by the current He/N2 content. An unloaded compartment returns the
// surface N2 limit
func (o Compartment) MValueAt(pAmb float64) float64 {
	p := o.PpHe + o.PpN2
	if p == 0 {
		return o.aN2
	}
	a := (o.PpHe*o.aHe + o.PpN2*o.aN2) / p
	b := (o.PpHe*o.bHe + o.PpN2*o.bN2) / p
	return a + pAmb/b
}

// MaxAmb returns the minimum tolerated ambient pressure [bar] for the current
// loading under gradient factor gf. The result may be negative, meaning the
// compartment tolerates surfacing; callers clamp to surface pressure
func (o Compartment) MaxAmb(gf float64) float64 {
	p := o.PpHe + o.PpN2
	a, b := o.aN2, o.bN2
	if p > 0 {
		a = (o.PpHe*o.aHe + o.PpN2*o.aN2) / p
		b = (o.PpHe*o.bHe + o.PpN2*o.bN2) / p
	}
	return (p - a*gf) / (gf/b - gf + 1.0)
}

// Mv returns the supersaturation ratio: total inert gas pressure over the
// M-value at the given ambient pressure [bar]
func (o Compartment) Mv(pAmb float64) float64 {
	return (o.PpHe + o.PpN2) / o.MValueAt(pAmb)
}

// haldane computes the new tissue partial pressure after dt [s] at constant
// inspired pressure:  pp + (ppi - pp) * (1 - 2^(-t/half-time))
func haldane(ppInspired, pp, k, dt float64) float64 {
	return ppInspired + (pp-ppInspired)*math.Exp(-k*dt)
}

// schreiner computes the new tissue partial pressure after dt [s] with the
// inspired pressure changing linearly at the given rate [bar/s]
func schreiner(ppInspired, pp, rate, k, dt float64) float64 {
	return ppInspired + rate*(dt-1.0/k) - (ppInspired-pp-rate/k)*math.Exp(-k*dt)
}

// error messages
var (
	_compartment_err01 = "invalid coefficient: all half-times and M-value coefficients must be positive (h_he=%g, h_n2=%g, a_he=%g, b_he=%g, a_n2=%g, b_n2=%g)\n"
	_compartment_err02 = "invalid pressure: pp_he=%g must be non-negative and pp_n2=%g must be positive\n"
	_compartment_err03 = "model state: cannot integrate constant depth with pp_he_inspired=%g, pp_n2_inspired=%g, dt=%g\n"
	_compartment_err04 = "model state: cannot integrate ascent/descent with pp_he_inspired=%g, pp_n2_inspired=%g, dt=%g\n"
)
