// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Driver runs a dive profile (Path) through a Model, managing the
// gradient-factor schedule along the ascent and recording the ceiling, the
// current gradient factor, the controlling compartment and the oxygen
// counters after every segment
type Driver struct {

	// input
	model *Model

	// settings
	Silent     bool    // do not show error messages
	CheckRates bool    // check Schreiner slopes against numerical derivatives
	TolRate    float64 // tolerance for the rate check
	VerRate    bool    // verbose rate check

	// results
	Res     []*Model    // model snapshots; Res[0] is the initial state
	Summ    [][]float64 // summary per snapshot: time [s], depth [m], ceiling [m], gf, otu, cns
	Control []int       // controlling compartment per snapshot (1-based)
}

// Init initialises the driver with a ready (Init-ed) model
func (o *Driver) Init(model *Model) (err error) {
	if model == nil {
		return chk.Err(_driver_err01)
	}
	o.model = model
	o.TolRate = 1e-6
	o.VerRate = chk.Verbose
	return
}

// Model returns the driven model
func (o *Driver) Model() *Model {
	return o.model
}

// Run applies all segments of the path in chronological order. The first
// positive ceiling fixes the first decompression stop (rounded up to 3 m)
// and switches the gradient schedule to gf_low; ascending transitions then
// relax the factor towards gf_high
func (o *Driver) Run(pth *Path) (err error) {

	// check path and allocate results
	err = pth.Check()
	if err != nil {
		return
	}
	nr := 1 + pth.Size()
	o.Res = make([]*Model, nr)
	o.Summ = la.MatAlloc(nr, 6)
	o.Control = make([]int, nr)
	o.record(0, 0, 0)

	// apply segments
	t := 0.0
	for i, s := range pth.Segs {

		if s.Trans() {
			var pre *Model
			if o.CheckRates && s.PpO2 == 0 {
				pre = o.model.Clone()
			}
			err = o.model.AscDesc(DepthToPressure(s.D0), DepthToPressure(s.D1), s.Rate, s.FHe, s.FN2, s.PpO2)
			if err != nil {
				if !o.Silent {
					io.Pfred(_driver_err02, i, err)
				}
				return
			}
			dt := math.Abs(s.D1-s.D0) / s.Rate
			t += dt
			if pre != nil {
				err = o.checkRates(pre, s, dt)
				if err != nil {
					return
				}
			}
		} else {
			err = o.model.ConstDepth(DepthToPressure(s.D0), s.Time, s.FHe, s.FN2, s.PpO2)
			if err != nil {
				if !o.Silent {
					io.Pfred(_driver_err03, i, err)
				}
				return
			}
			t += s.Time
		}

		// gradient schedule
		if o.model.Gradient.FirstStop == 0 && o.model.Ceiling() > 0 {
			o.model.Gradient.SetGfAtDepth(DepthToPressure(o.model.FirstStop()))
		}
		if s.Trans() && s.D1 < s.D0 && o.model.Gradient.FirstStop > 0 {
			o.model.Gradient.UpdateGfAtDepth(DepthToPressure(s.D1))
		}

		o.record(1+i, t, s.D1)
	}
	return
}

// record stores a snapshot and its summary row at the given time [s] and
// depth [m]
func (o *Driver) record(k int, t, depth float64) {
	m := o.model
	o.Res[k] = m.Clone()
	o.Summ[k][0] = t
	o.Summ[k][1] = depth
	o.Summ[k][2] = m.Ceiling()
	o.Summ[k][3] = m.Gradient.Gf
	o.Summ[k][4] = m.OxTox.Otu
	o.Summ[k][5] = m.OxTox.Cns
	o.Control[k] = m.ControlCompartment()
}

// checkRates compares the analytical tissue loading slope at the end of an
// open-circuit transition, dpp/dt = k*(palv(t) - pp(t)), with a central
// difference of the Schreiner closed form, for the fastest compartment
func (o *Driver) checkRates(pre *Model, s *Seg, dt float64) (err error) {
	base := pre.Psurf + DepthToPressure(s.D0)
	if pre.AscH2O {
		base -= pre.PpH2O
	}
	rateBar := DepthToPressure(s.Rate)
	if s.D1 < s.D0 {
		rateBar = -rateBar
	}
	c := pre.Tissues[0]
	for _, gas := range []struct {
		name     string
		insp, pp float64
		rate, k  float64
	}{
		{"He", base * s.FHe, c.PpHe, rateBar * s.FHe, c.kHe},
		{"N2", base * s.FN2, c.PpN2, rateBar * s.FN2, c.kN2},
	} {
		g := gas
		ana := g.k * (g.insp + g.rate*dt - schreiner(g.insp, g.pp, g.rate, g.k, dt))
		dnum := num.DerivCen(func(x float64, args ...interface{}) float64 {
			return schreiner(g.insp, g.pp, g.rate, g.k, x)
		}, dt)
		err = chk.PrintAnaNum(io.Sf("dpp%s/dt", g.name), o.TolRate, ana, dnum, o.VerRate)
		if err != nil {
			return chk.Err(_driver_err04, err)
		}
	}
	return
}

// Plot draws the depth/ceiling history and the final tissue loadings
func (o *Driver) Plot(dirout, fnkey string) {
	nr := len(o.Res)
	if nr < 2 {
		return
	}
	T := make([]float64, nr)
	D := make([]float64, nr)
	C := make([]float64, nr)
	for k := 0; k < nr; k++ {
		T[k] = o.Summ[k][0]
		D[k] = -o.Summ[k][1]
		C[k] = -o.Summ[k][2]
	}
	last := o.Res[nr-1]
	X := utl.LinSpace(1, Ncomps, Ncomps)
	He := make([]float64, Ncomps)
	N2 := make([]float64, Ncomps)
	for i := 0; i < Ncomps; i++ {
		He[i] = last.Tissues[i].PpHe
		N2[i] = last.Tissues[i].PpN2
	}
	plt.Subplot(2, 1, 1)
	plt.Plot(T, D, "'b-', label='depth', clip_on=0")
	plt.Plot(T, C, "'r--', label='ceiling', clip_on=0")
	plt.Gll("$t$ [s]", "depth [m]", "")
	plt.Subplot(2, 1, 2)
	plt.Plot(X, N2, "'g.-', label='pp_N2', clip_on=0")
	plt.Plot(X, He, "'m.-', label='pp_He', clip_on=0")
	plt.Gll("compartment", "pp [bar]", "")
	plt.SaveD(dirout, fnkey+".png")
}

// error messages
var (
	_driver_err01 = "driver: model is not available\n"
	_driver_err02 = "ascent/descent of segment %d failed\n%v\n"
	_driver_err03 = "constant depth of segment %d failed\n%v\n"
	_driver_err04 = "check of tissue loading rates failed:\n%v\n"
)
