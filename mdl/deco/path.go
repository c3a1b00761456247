// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import "github.com/cpmech/gosl/chk"

// Seg is one leg of a dive profile: either a stay at constant depth or a
// transition between two depths at a fixed rate, breathing one gas mix
type Seg struct {
	D0   float64 // start depth [m]
	D1   float64 // finish depth [m]
	Time float64 // duration at constant depth [s]; ignored on transitions
	Rate float64 // transition rate [m/s]; ignored on stays
	FHe  float64 // He fraction of the breathed mix
	FN2  float64 // N2 fraction of the breathed mix
	PpO2 float64 // CCR setpoint [bar]; 0 means open circuit
}

// Trans tells whether the segment is a depth transition
func (o Seg) Trans() bool {
	return o.D0 != o.D1
}

// Path is a chronological dive profile consumed by Driver
type Path struct {
	Segs []*Seg
}

// AddConst appends a stay of the given duration [s] at the given depth [m]
func (o *Path) AddConst(depth, time, fHe, fN2, ppO2 float64) {
	o.Segs = append(o.Segs, &Seg{D0: depth, D1: depth, Time: time, FHe: fHe, FN2: fN2, PpO2: ppO2})
}

// AddTrans appends a transition from depth d0 to d1 [m] at the given rate
// [m/s]
func (o *Path) AddTrans(d0, d1, rate, fHe, fN2, ppO2 float64) {
	o.Segs = append(o.Segs, &Seg{D0: d0, D1: d1, Rate: rate, FHe: fHe, FN2: fN2, PpO2: ppO2})
}

// Size returns the number of segments
func (o *Path) Size() int {
	return len(o.Segs)
}

// Check verifies that the profile is contiguous and that rates and times are
// workable before the driver starts mutating a model
func (o *Path) Check() (err error) {
	depth := 0.0
	for i, s := range o.Segs {
		if s.D0 != depth {
			return chk.Err(_path_err01, i, s.D0, depth)
		}
		if s.Trans() && s.Rate <= 0 {
			return chk.Err(_path_err02, i, s.Rate)
		}
		if !s.Trans() && s.Time < 0 {
			return chk.Err(_path_err03, i, s.Time)
		}
		depth = s.D1
	}
	return
}

// error messages
var (
	_path_err01 = "path: segment %d starts at %g m but the previous one ended at %g m\n"
	_path_err02 = "path: transition segment %d needs a positive rate (%g)\n"
	_path_err03 = "path: constant segment %d needs a non-negative time (%g)\n"
)
