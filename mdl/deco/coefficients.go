// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import "github.com/cpmech/gosl/chk"

// coefs holds one row of the published ZH-L16 tables: half-times [min] and
// the M-value coefficients for both gases. NOTE: following the historical
// data layout, the a coefficients are stored here with a ten-fold factor;
// SetTimeConstants divides them by 10 on ingestion (the only place where the
// normalisation to bar happens)
type coefs struct {
	hHe float64 // He half-time [min]
	hN2 float64 // N2 half-time [min]
	aHe float64 // He a coefficient (x 10)
	bHe float64 // He b coefficient
	aN2 float64 // N2 a coefficient (x 10)
	bN2 float64 // N2 b coefficient
}

// zhl16C0 holds the two published choices for the fastest compartment. The
// selector ("1a" or "1b") only affects compartment 0 and is the same for all
// table variants
var zhl16C0 = map[string]coefs{
	"1a": {1.51, 4.0, 17.424, 0.4245, 12.599, 0.5050},
	"1b": {1.88, 5.0, 16.189, 0.4770, 11.696, 0.5578},
}

// zhl16Tables holds the three published table variants. They share the
// half-times and the He column; the variants differ in the N2 a coefficients
// of the mid and slow compartments (a: original 1990 values; b: slightly more
// conservative mid range; c: for computer implementations, with lower N2 a
// values than b in compartments 4..14, hence lower M-values). Row 0 is
// a placeholder which the 1a/1b selector always overrides
var zhl16Tables = map[string][Ncomps]coefs{
	"zhl16a": {
		{1.88, 5.0, 16.189, 0.4770, 11.696, 0.5578},
		{3.02, 8.0, 13.830, 0.5747, 10.000, 0.6514},
		{4.72, 12.5, 11.919, 0.6527, 8.618, 0.7222},
		{6.99, 18.5, 10.458, 0.7223, 7.562, 0.7825},
		{10.21, 27.0, 9.220, 0.7582, 6.667, 0.8126},
		{14.48, 38.3, 8.205, 0.7957, 5.933, 0.8434},
		{20.53, 54.3, 7.305, 0.8279, 5.282, 0.8693},
		{29.11, 77.0, 6.502, 0.8553, 4.710, 0.8910},
		{41.20, 109.0, 5.950, 0.8757, 4.187, 0.9092},
		{55.19, 146.0, 5.545, 0.8903, 3.798, 0.9222},
		{70.69, 187.0, 5.333, 0.8997, 3.497, 0.9319},
		{90.34, 239.0, 5.189, 0.9073, 3.223, 0.9403},
		{115.29, 305.0, 5.181, 0.9122, 2.971, 0.9477},
		{147.42, 390.0, 5.176, 0.9171, 2.737, 0.9544},
		{188.24, 498.0, 5.172, 0.9217, 2.523, 0.9602},
		{240.03, 635.0, 5.119, 0.9267, 2.327, 0.9653},
	},
	"zhl16b": {
		{1.88, 5.0, 16.189, 0.4770, 11.696, 0.5578},
		{3.02, 8.0, 13.830, 0.5747, 10.000, 0.6514},
		{4.72, 12.5, 11.919, 0.6527, 8.618, 0.7222},
		{6.99, 18.5, 10.458, 0.7223, 7.562, 0.7825},
		{10.21, 27.0, 9.220, 0.7582, 6.667, 0.8126},
		{14.48, 38.3, 8.205, 0.7957, 5.600, 0.8434},
		{20.53, 54.3, 7.305, 0.8279, 4.947, 0.8693},
		{29.11, 77.0, 6.502, 0.8553, 4.500, 0.8910},
		{41.20, 109.0, 5.950, 0.8757, 4.187, 0.9092},
		{55.19, 146.0, 5.545, 0.8903, 3.798, 0.9222},
		{70.69, 187.0, 5.333, 0.8997, 3.497, 0.9319},
		{90.34, 239.0, 5.189, 0.9073, 3.223, 0.9403},
		{115.29, 305.0, 5.181, 0.9122, 2.850, 0.9477},
		{147.42, 390.0, 5.176, 0.9171, 2.737, 0.9544},
		{188.24, 498.0, 5.172, 0.9217, 2.523, 0.9602},
		{240.03, 635.0, 5.119, 0.9267, 2.327, 0.9653},
	},
	"zhl16c": {
		{1.88, 5.0, 16.189, 0.4770, 11.696, 0.5578},
		{3.02, 8.0, 13.830, 0.5747, 10.000, 0.6514},
		{4.72, 12.5, 11.919, 0.6527, 8.618, 0.7222},
		{6.99, 18.5, 10.458, 0.7223, 7.562, 0.7825},
		{10.21, 27.0, 9.220, 0.7582, 6.200, 0.8126},
		{14.48, 38.3, 8.205, 0.7957, 5.043, 0.8434},
		{20.53, 54.3, 7.305, 0.8279, 4.410, 0.8693},
		{29.11, 77.0, 6.502, 0.8553, 4.000, 0.8910},
		{41.20, 109.0, 5.950, 0.8757, 3.750, 0.9092},
		{55.19, 146.0, 5.545, 0.8903, 3.500, 0.9222},
		{70.69, 187.0, 5.333, 0.8997, 3.295, 0.9319},
		{90.34, 239.0, 5.189, 0.9073, 3.065, 0.9403},
		{115.29, 305.0, 5.181, 0.9122, 2.835, 0.9477},
		{147.42, 390.0, 5.176, 0.9171, 2.610, 0.9544},
		{188.24, 498.0, 5.172, 0.9217, 2.480, 0.9602},
		{240.03, 635.0, 5.119, 0.9267, 2.327, 0.9653},
	},
}

// SetTimeConstants loads the coefficients of the selected table variant
// ("zhl16a", "zhl16b" or "zhl16c") and fastest-compartment selector ("1a" or
// "1b") into the sixteen compartments
func (o *Model) SetTimeConstants(deco, values string) (err error) {
	tab, ok := zhl16Tables[deco]
	if !ok {
		return chk.Err(_coefficients_err01, deco)
	}
	c0, ok := zhl16C0[values]
	if !ok {
		return chk.Err(_coefficients_err02, values)
	}
	tab[0] = c0
	for i, r := range tab {
		// divide the stored ten-fold a coefficients; downstream math uses bar
		err = o.Tissues[i].SetCoefficients(r.hHe, r.hN2, r.aHe/10.0, r.bHe, r.aN2/10.0, r.bN2)
		if err != nil {
			return
		}
	}
	return
}

// error messages
var (
	_coefficients_err01 = "invalid coefficient: table variant %q is not available (zhl16a, zhl16b, zhl16c)\n"
	_coefficients_err02 = "invalid coefficient: compartment-0 selector %q is not available (1a, 1b)\n"
)
