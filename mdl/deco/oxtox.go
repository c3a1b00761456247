// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// oxygen exposure constants
const (
	// otuMinPpO2 is the threshold below which no whole-body (OTU) load
	// accumulates [bar]
	otuMinPpO2 = 0.5

	// maxPpO2 is the hard physiological exposure limit [bar]; beyond it the
	// strict mode refuses the segment
	maxPpO2 = 3.0

	// cnsHalfLife is the half-life of the CNS clock during surface
	// intervals [min]
	cnsHalfLife = 90.0
)

// cnsLimits is the NOAA-derived piecewise-linear CNS exposure limit:
// limit [min] = slope * ppO2 + icpt for lo < ppO2 <= hi. The segments are
// continuous at the breakpoints; at 1.6 bar the limit is 45 min. Exposures
// above the table clamp to the 45-min limit
var cnsLimits = []struct {
	lo, hi      float64 // ppO2 range [bar]
	slope, icpt float64 // limit-line coefficients [min/bar], [min]
}{
	{0.5, 0.6, -1800.0, 1800.0},
	{0.6, 0.7, -1500.0, 1620.0},
	{0.7, 0.8, -1200.0, 1410.0},
	{0.8, 0.9, -900.0, 1170.0},
	{0.9, 1.1, -600.0, 900.0},
	{1.1, 1.5, -300.0, 570.0},
	{1.5, 1.6, -750.0, 1245.0},
}

// OxTox accumulates the oxygen-toxicity exposure over a dive: whole-body
// load in OTU (Hamilton/Repex) and the CNS clock as a fraction of the NOAA
// limit. MaxPpO2 records the worst inspired ppO2 seen
type OxTox struct {
	Otu     float64 `json:"otu"`     // oxygen tolerance units
	Cns     float64 `json:"cns"`     // CNS clock, 1.0 == 100% of the limit
	MaxPpO2 float64 `json:"maxppo2"` // maximum ppO2 seen [bar]
	Strict  bool    `json:"-"`       // refuse exposures beyond maxPpO2
}

// AddO2 accumulates dt [s] of exposure at the given inspired ppO2 [bar].
// In strict mode exposures above 3.0 bar are refused and nothing accumulates
func (o *OxTox) AddO2(dt, ppO2 float64) (err error) {
	if o.Strict && ppO2 > maxPpO2 {
		return chk.Err(_oxtox_err01, ppO2, maxPpO2)
	}
	d := dt / 60.0
	if ppO2 > otuMinPpO2 {
		o.Otu += d * math.Pow(otuMinPpO2/(ppO2-otuMinPpO2), -5.0/6.0)
		if ppO2 > o.MaxPpO2 {
			o.MaxPpO2 = ppO2
		}
		limit := 45.0
		for _, seg := range cnsLimits {
			if ppO2 > seg.lo && ppO2 <= seg.hi {
				limit = seg.slope*ppO2 + seg.icpt
				break
			}
		}
		o.Cns += d / limit
	}
	return
}

// RemoveO2 accounts for dt [s] of surface interval: the CNS clock decays
// with a 90-min half-life; the OTU count is left unchanged
func (o *OxTox) RemoveO2(dt float64) {
	o.Cns *= math.Exp(-dt * math.Ln2 / (cnsHalfLife * 60.0))
}

// error messages
var (
	_oxtox_err01 = "invalid O2 exposure: ppO2=%g exceeds the %g bar limit\n"
)
