// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Model aggregates the sixteen tissue compartments, the gradient-factor
// schedule and the oxygen-toxicity counters, and exposes the segment-level
// operations (constant depth, ascent/descent) and the whole-body queries
// (ceiling, M-value, controlling compartment) used by a dive planner.
//
// A Model owns all of its state; there is no global configuration. It is not
// safe for concurrent use: planners exploring alternative ascents must work
// on a Clone. Segment operations either update all compartments and the
// oxygen counters, or return an error leaving the model untouched.
// Units are metric only (bar, metres, seconds, Celsius)
type Model struct {

	// configuration (immutable after Init)
	Deco   string  // table variant: "zhl16a", "zhl16b" or "zhl16c"
	Values string  // compartment-0 selector: "1a" or "1b"
	Psurf  float64 // ambient pressure at the surface [bar]
	FInert float64 // inert gas fraction of air (N2)
	PpH2O  float64 // water vapour partial pressure in the lungs [bar]
	AscH2O bool    // subtract water vapour in ascent/descent inspired pressures

	// state
	Tissues  [Ncomps]Compartment // the sixteen compartments
	Gradient Gradient            // gradient factor schedule
	OxTox    OxTox               // oxygen toxicity counters
	MetaData string              // free text on where the model was created
}

// New returns a new model for the given table variant ("zhl16a", "zhl16b" or
// "zhl16c") and compartment-0 selector ("1a" or "1b"). Init must be called
// before the model is used
func New(deco, values string) (o *Model, err error) {
	if _, ok := zhl16Tables[deco]; !ok {
		return nil, chk.Err(_coefficients_err01, deco)
	}
	if _, ok := zhl16C0[values]; !ok {
		return nil, chk.Err(_coefficients_err02, values)
	}
	o = new(Model)
	o.Deco, o.Values = deco, values
	o.MetaData = "(none)"
	return
}

// Init initialises the model: loads the coefficient table, derives the water
// vapour pressure from the surface temperature, saturates all compartments
// with surface air and resets the gradient and oxygen counters.
//  Parameters:
//   "gflow"    -- gradient factor at the first stop (default 0.30)
//   "gfhigh"   -- gradient factor at the surface (default 0.80)
//   "surftemp" -- surface temperature [C] (default 20)
//   "psurf"    -- surface ambient pressure [bar] (default 1.01325)
//   "finert"   -- inert gas fraction of air (default 0.7902)
//   "strict"   -- >0 => refuse ppO2 beyond 3.0 bar (default 0)
//   "asch2o"   -- >0 => water vapour correction in asc/desc (default 1)
func (o *Model) Init(prms fun.Prms) (err error) {

	// default parameters
	gfLow, gfHigh := 0.30, 0.80
	surfTemp := 20.0
	o.Psurf = 1.01325
	o.FInert = 0.7902
	o.AscH2O = true
	o.OxTox = OxTox{}

	// read parameters
	for _, p := range prms {
		switch p.N {
		case "gflow":
			gfLow = p.V
		case "gfhigh":
			gfHigh = p.V
		case "surftemp":
			surfTemp = p.V
		case "psurf":
			o.Psurf = p.V
		case "finert":
			o.FInert = p.V
		case "strict":
			o.OxTox.Strict = p.V > 0
		case "asch2o":
			o.AscH2O = p.V > 0
		default:
			return chk.Err(_model_err01, p.N)
		}
	}
	if o.Psurf <= 0 || o.FInert <= 0 || o.FInert >= 1 {
		return chk.Err(_model_err02, o.Psurf, o.FInert)
	}

	// coefficients and water vapour
	err = o.SetTimeConstants(o.Deco, o.Values)
	if err != nil {
		return
	}
	o.PpH2O, err = PpH2OSurf(surfTemp)
	if err != nil {
		return
	}

	// surface equilibrium with air
	for i := 0; i < Ncomps; i++ {
		err = o.Tissues[i].SetPp(0, o.FInert*(o.Psurf-o.PpH2O))
		if err != nil {
			return
		}
	}

	// gradient schedule
	return o.Gradient.Init(gfLow, gfHigh)
}

// GetPrms gets (an example of) parameters
func (o Model) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "gflow", V: 0.30},
		&fun.Prm{N: "gfhigh", V: 0.80},
		&fun.Prm{N: "surftemp", V: 20},
		&fun.Prm{N: "psurf", V: 1.01325},
		&fun.Prm{N: "finert", V: 0.7902},
		&fun.Prm{N: "strict", V: 0},
		&fun.Prm{N: "asch2o", V: 1},
	}
}

// inspired computes the inspired inert gas partial pressures [bar] and the
// effective ppO2 [bar] for a segment at absolute pressure pAmb, breathing the
// mix (fHe, fN2) either open circuit (ppO2Set = 0) or on a closed-circuit
// loop holding the given O2 setpoint. The water vapour pressure wet [bar] is
// subtracted from the available pressure
func (o *Model) inspired(pAmb, fHe, fN2, ppO2Set, wet float64) (ppHe, ppN2, ppO2 float64) {

	// closed circuit: the setpoint consumes part of the loop pressure and
	// the diluent provides the inert gases
	if ppO2Set > 0 {
		pInert := 0.0
		if fHe+fN2 > 0 {
			pInert = pAmb - ppO2Set - wet
		}
		if pInert > 0 {
			ppHe = pInert * fHe / (fHe + fN2)
			ppN2 = pInert * fN2 / (fHe + fN2)
		}
		// in shallow water a high setpoint cannot be held: the loop ppO2 is
		// bounded by the ambient pressure
		if ppO2Set <= pAmb && pInert > 0 {
			ppO2 = ppO2Set
		} else {
			ppO2 = pAmb - wet
		}
		return
	}

	// open circuit
	ppHe = (pAmb - wet) * fHe
	ppN2 = (pAmb - wet) * fN2
	ppO2 = (pAmb - wet) * (1.0 - fHe - fN2)
	return
}

// ConstDepth applies a constant depth segment: pressure is the gauge pressure
// [bar] of the depth, segTime the duration [s], (fHe, fN2) the breathed inert
// fractions and ppO2Set the CCR setpoint [bar] (0 for open circuit). At the
// surface on open circuit the segment counts as oxygen recovery time
func (o *Model) ConstDepth(pressure, segTime, fHe, fN2, ppO2Set float64) (err error) {
	if segTime < 0 {
		return chk.Err(_model_err03, segTime)
	}
	pAmb := pressure + o.Psurf
	ppHe, ppN2, ppO2 := o.inspired(pAmb, fHe, fN2, ppO2Set, o.PpH2O)
	if ppHe < 0 || ppN2 < 0 {
		return chk.Err(_model_err04, ppHe, ppN2)
	}

	// oxygen accounting; AddO2 fails before anything accumulates, keeping
	// the whole segment atomic
	if ppO2Set == 0 && pressure == 0 {
		o.OxTox.RemoveO2(segTime)
	} else {
		err = o.OxTox.AddO2(segTime, ppO2)
		if err != nil {
			return
		}
	}

	// tissue loading
	if segTime > 0 {
		for i := 0; i < Ncomps; i++ {
			err = o.Tissues[i].ConstDepth(ppHe, ppN2, segTime)
			if err != nil {
				return
			}
		}
	}
	return
}

// AscDesc applies a depth transition from start to finish gauge pressure
// [bar] at the given rate [m/s]. The inspired pressures change linearly over
// the segment; on closed circuit the inert fractions of the loop are
// recomputed at both ends to derive per-gas rates
func (o *Model) AscDesc(start, finish, rate, fHe, fN2, ppO2Set float64) (err error) {

	// segment duration; the rate sign is normalised to the direction of the
	// pressure change
	if rate == 0 {
		return chk.Err(_model_err05)
	}
	rateBar := math.Abs(DepthToPressure(rate))
	segTime := math.Abs(finish-start) / rateBar
	if segTime <= 0 {
		return chk.Err(_model_err06, start, finish)
	}
	if finish < start {
		rateBar = -rateBar
	}

	pAmbStart := start + o.Psurf
	pAmbFinish := finish + o.Psurf

	var ppHe, ppN2, rateHe, rateN2, ppO2 float64
	if ppO2Set > 0 {
		// closed circuit: inert pressure at both ends of the transition,
		// clamped at zero for shallow water or a high setpoint
		pInertStart := math.Max(0, pAmbStart-ppO2Set-o.PpH2O)
		pInertFinish := math.Max(0, pAmbFinish-ppO2Set-o.PpH2O)
		if fHe+fN2 > 0 {
			ppHe = pInertStart * fHe / (fHe + fN2)
			ppN2 = pInertStart * fN2 / (fHe + fN2)
			rateHe = (pInertFinish*fHe/(fHe+fN2) - ppHe) / segTime
			rateN2 = (pInertFinish*fN2/(fHe+fN2) - ppN2) / segTime
		}
		ppO2 = ppO2Set
	} else {
		// open circuit; the water vapour correction mirrors ConstDepth when
		// the asch2o flag is on (legacy profiles used the raw ambient)
		base := pAmbStart
		if o.AscH2O {
			base -= o.PpH2O
		}
		ppHe = base * fHe
		ppN2 = base * fN2
		rateHe = rateBar * fHe
		rateN2 = rateBar * fN2
		ppO2 = ((pAmbStart-pAmbFinish)/2.0 + pAmbFinish - o.PpH2O) * (1.0 - fHe - fN2)
	}
	if ppHe < 0 || ppN2 < 0 {
		return chk.Err(_model_err04, ppHe, ppN2)
	}

	// oxygen accounting; AddO2 fails before anything accumulates, keeping
	// the whole segment atomic
	err = o.OxTox.AddO2(segTime, ppO2)
	if err != nil {
		return
	}

	// tissue loading
	for i := 0; i < Ncomps; i++ {
		err = o.Tissues[i].AscDesc(ppHe, ppN2, rateHe, rateN2, segTime)
		if err != nil {
			return
		}
	}
	return
}

// Ceiling returns the current ceiling: the shallowest depth [m] to which the
// diver may ascend under the current gradient factor. Zero means direct
// ascent to the surface is allowed
func (o *Model) Ceiling() float64 {
	pressure := 0.0
	for i := 0; i < Ncomps; i++ {
		p := o.Tissues[i].MaxAmb(o.Gradient.Gf) - o.Psurf
		if p > pressure {
			pressure = p
		}
	}
	return PressureToDepth(pressure)
}

// CeilingPabs returns the ceiling as an absolute pressure [bar] (no clamping
// to the surface)
func (o *Model) CeilingPabs() float64 {
	pressure := 0.0
	for i := 0; i < Ncomps; i++ {
		p := o.Tissues[i].MaxAmb(o.Gradient.Gf)
		if p > pressure {
			pressure = p
		}
	}
	return pressure
}

// MValue returns the maximum supersaturation ratio over all compartments at
// the given gauge pressure [bar]
func (o *Model) MValue(pressure float64) float64 {
	pAbs := pressure + o.Psurf
	max := 0.0
	for i := 0; i < Ncomps; i++ {
		mv := o.Tissues[i].Mv(pAbs)
		if mv > max {
			max = mv
		}
	}
	return max
}

// ControlCompartment returns the 1-based index of the compartment governing
// the ceiling. Ties resolve to the lowest index
func (o *Model) ControlCompartment() int {
	control := 0
	max := 0.0
	for i := 0; i < Ncomps; i++ {
		p := o.Tissues[i].MaxAmb(o.Gradient.Gf) - o.Psurf
		if p > max {
			control = i
			max = p
		}
	}
	return control + 1
}

// FirstStop returns the depth [m] of the first decompression stop: the
// ceiling rounded up to the next multiple of three metres. Zero means no
// stops are required
func (o *Model) FirstStop() float64 {
	return math.Ceil(o.Ceiling()/3.0) * 3.0
}

// Ndl estimates the remaining no-decompression time [min] at the given gauge
// pressure [bar] breathing the given mix, by simulating minute-wise stays on
// a clone until a ceiling appears. Capped at NdlMax
func (o *Model) Ndl(pressure, fHe, fN2, ppO2Set float64) (mins int, err error) {
	sim := o.Clone()
	for mins = 0; mins < NdlMax; mins++ {
		if sim.Ceiling() > 0 {
			return
		}
		err = sim.ConstDepth(pressure, 60, fHe, fN2, ppO2Set)
		if err != nil {
			return
		}
	}
	return
}

// Clone returns a deep, independent copy of the model
func (o *Model) Clone() *Model {
	c := *o
	return &c
}

// Validate checks a model rebuilt from a serialised state: the partial
// pressure invariants must hold and any zeroed coefficients are restored
// from the table selectors
func (o *Model) Validate() (err error) {
	restore := false
	for i := 0; i < Ncomps; i++ {
		c := &o.Tissues[i]
		if c.PpN2 <= 0 {
			return chk.Err(_model_err07, c.PpN2, i)
		}
		if c.PpHe < 0 {
			return chk.Err(_model_err08, c.PpHe, i)
		}
		if c.kHe == 0 || c.kN2 == 0 || c.aHe == 0 || c.bHe == 0 || c.aN2 == 0 || c.bN2 == 0 {
			restore = true
		}
	}
	if restore {
		return o.SetTimeConstants(o.Deco, o.Values)
	}
	return
}

// String returns a per-compartment report of the model state
func (o *Model) String() (l string) {
	for i := 0; i < Ncomps; i++ {
		c := o.Tissues[i]
		l += io.Sf("C:%d He:%09.6f N2:%09.6f gf:%04.2f mv_at:%09.6f max_amb:%09.6f MV:%09.6f\n",
			i, c.PpHe, c.PpN2, o.Gradient.Gf, c.MValueAt(o.Psurf), c.MaxAmb(o.Gradient.Gf), c.Mv(o.Psurf))
	}
	return
}

// error messages
var (
	_model_err01 = "model: parameter named %q is incorrect\n"
	_model_err02 = "model: surface pressure (%g) and inert fraction (%g) are out of range\n"
	_model_err03 = "model state: segment time must be non-negative (%g)\n"
	_model_err04 = "model state: inspired partial pressures are negative (pp_he=%g, pp_n2=%g)\n"
	_model_err05 = "model state: ascent/descent rate must be non-zero\n"
	_model_err06 = "model state: start and finish pressures are equal (%g, %g)\n"
	_model_err07 = "model validation: pp_n2=%g is not positive in compartment %d\n"
	_model_err08 = "model validation: pp_he=%g is negative in compartment %d\n"
)
