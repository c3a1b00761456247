// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package deco implements the Buhlmann ZH-L16 decompression model: sixteen
// theoretical tissue compartments loaded with inert gases (He and N2) via the
// Haldane and Schreiner equations, the gradient-factor conservatism schedule,
// and oxygen-toxicity (OTU/CNS) accounting.
//  References:
//   [1] Buhlmann AA (1984) Decompression - Decompression Sickness.
//       Springer-Verlag, Berlin.
//   [2] Baker EC (1998) Understanding M-values. Immersed, 3(3), 23-27.
//   [3] Hamilton RW, Thalmann ED (2003) Decompression practice. In:
//       Brubakk AO, Neuman TS (eds) Bennett and Elliott's physiology and
//       medicine of diving, 5th ed. Saunders, 455-500.
package deco

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// constants
const (
	// Ncomps is the number of tissue compartments in all ZH-L16 variants
	Ncomps = 16

	// MeterToBar converts a depth in metres of fresh water into a pressure
	// difference in bar
	MeterToBar = 0.0998

	// mmHgToBar converts millimetres of mercury into bar
	mmHgToBar = 1.0 / 750.0615

	// NdlMax caps the no-decompression-limit search [min]
	NdlMax = 99
)

// DepthToPressure converts a depth [m] into a (gauge) pressure [bar]
func DepthToPressure(depth float64) float64 {
	return depth * MeterToBar
}

// PressureToDepth converts a (gauge) pressure [bar] into a depth [m]
func PressureToDepth(pressure float64) float64 {
	return pressure / MeterToBar
}

// PpH2OSurf computes the partial pressure of water vapour [bar] in the lungs
// for a given temperature [C], using the Antoine equation. At body
// temperature (37 C) the result is about 0.0626 bar, close to the
// conventional 0.0627 bar
func PpH2OSurf(temp float64) (float64, error) {
	if temp < 0.06 {
		return 0, chk.Err(_deco_err01, temp)
	}
	mmHg := math.Pow(10.0, 8.07131-1730.63/(233.426+temp))
	return mmHg * mmHgToBar, nil
}

// error messages
var (
	_deco_err01 = "water vapour pressure: temperature %g is out of range\n"
)
