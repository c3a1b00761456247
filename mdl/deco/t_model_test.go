// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// newModel builds an initialised model for the tests
func newModel(tst *testing.T, deco, values string, prms fun.Prms) *Model {
	m, err := New(deco, values)
	if err != nil {
		tst.Errorf("cannot allocate model:\n%v", err)
		return nil
	}
	err = m.Init(prms)
	if err != nil {
		tst.Errorf("cannot initialise model:\n%v", err)
		return nil
	}
	return m
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. initialisation and coefficient tables")

	m := newModel(tst, "zhl16b", "1b", nil)
	if m == nil {
		return
	}
	io.Pforan("pp_h2o = %v\n", m.PpH2O)

	// all compartments start in surface equilibrium with air
	for i := 0; i < Ncomps; i++ {
		chk.Scalar(tst, io.Sf("pp_he %d", i), 1e-15, m.Tissues[i].PpHe, 0)
		chk.Scalar(tst, io.Sf("pp_n2 %d", i), 1e-15, m.Tissues[i].PpN2, m.FInert*(m.Psurf-m.PpH2O))
	}

	// the ten-fold table representation is normalised on load
	chk.Scalar(tst, "a_he c0", 1e-15, m.Tissues[0].aHe, 1.6189)
	chk.Scalar(tst, "a_n2 c0", 1e-15, m.Tissues[0].aN2, 1.1696)
	chk.Scalar(tst, "b_n2 c0", 1e-15, m.Tissues[0].bN2, 0.5578)
	chk.Scalar(tst, "k_he c0", 1e-14, m.Tissues[0].kHe, 0.00614492181347)
	chk.Scalar(tst, "a_n2 c15", 1e-15, m.Tissues[15].aN2, 0.2327)

	// variant c lowers the mid-range N2 a coefficients
	mc := newModel(tst, "zhl16c", "1b", nil)
	if mc == nil {
		return
	}
	chk.Scalar(tst, "a_n2 c4 (zhl16c)", 1e-15, mc.Tissues[4].aN2, 0.6200)
	chk.Scalar(tst, "a_n2 c4 (zhl16b)", 1e-15, m.Tissues[4].aN2, 0.6667)

	// the 1a selector only swaps the fastest compartment
	ma := newModel(tst, "zhl16b", "1a", nil)
	if ma == nil {
		return
	}
	chk.Scalar(tst, "a_he c0 (1a)", 1e-15, ma.Tissues[0].aHe, 1.7424)
	chk.Scalar(tst, "a_he c1 (1a)", 1e-15, ma.Tissues[1].aHe, 1.3830)

	// unknown selectors are refused
	if _, err := New("zhl17", "1b"); err == nil {
		tst.Errorf("unknown table variant must be rejected")
	}
	if _, err := New("zhl16b", "2a"); err == nil {
		tst.Errorf("unknown compartment-0 selector must be rejected")
	}
	if err := m.Init(fun.Prms{&fun.Prm{N: "gfwrong", V: 1}}); err == nil {
		tst.Errorf("unknown parameter must be rejected")
	}
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. air dive: ceiling and controlling compartment")

	m := newModel(tst, "zhl16b", "1b", nil)
	if m == nil {
		return
	}

	// at the surface there is no ceiling
	chk.Scalar(tst, "ceiling at surface", 1e-15, m.Ceiling(), 0)

	// load 25 min of air at 30 m
	err := m.ConstDepth(DepthToPressure(30), 25*60, 0, 0.79, 0)
	if err != nil {
		tst.Errorf("const depth failed:\n%v", err)
		return
	}
	ceil := m.Ceiling()
	io.Pforan("ceiling = %v m  control = %v\n", ceil, m.ControlCompartment())
	if ceil <= 0 {
		tst.Errorf("25 min of air at 30 m must produce a ceiling")
		return
	}
	if c := m.ControlCompartment(); c < 1 || c > Ncomps {
		tst.Errorf("controlling compartment out of range: %d", c)
	}
	if m.CeilingPabs() <= m.Psurf {
		tst.Errorf("absolute ceiling must exceed the surface pressure")
	}
	if m.MValue(0) <= 0 {
		tst.Errorf("supersaturation ratio must be positive after loading")
	}

	// further loading cannot shrink the ceiling
	err = m.ConstDepth(DepthToPressure(30), 10*60, 0, 0.79, 0)
	if err != nil {
		tst.Errorf("const depth failed:\n%v", err)
		return
	}
	if m.Ceiling() < ceil {
		tst.Errorf("ceiling must not decrease while on-gassing: %v < %v", m.Ceiling(), ceil)
	}

	// first stop is the ceiling rounded up to 3 m
	fs := m.FirstStop()
	if fs < m.Ceiling() || fs-m.Ceiling() >= 3 {
		tst.Errorf("first stop %v does not bracket the ceiling %v", fs, m.Ceiling())
	}
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. clone independence")

	m := newModel(tst, "zhl16b", "1b", nil)
	if m == nil {
		return
	}
	m.ConstDepth(DepthToPressure(30), 20*60, 0, 0.79, 0)

	c := m.Clone()
	ppN2 := m.Tissues[0].PpN2
	otu := m.OxTox.Otu
	gf := m.Gradient.Gf

	c.ConstDepth(DepthToPressure(40), 20*60, 0, 0.79, 0)
	c.Gradient.SetGfAtDepth(1.0)
	c.MetaData = "clone"

	chk.Scalar(tst, "original pp_n2", 1e-15, m.Tissues[0].PpN2, ppN2)
	chk.Scalar(tst, "original otu", 1e-15, m.OxTox.Otu, otu)
	chk.Scalar(tst, "original gf", 1e-15, m.Gradient.Gf, gf)
	chk.String(tst, m.MetaData, "(none)")
	if c.Tissues[0].PpN2 <= ppN2 {
		tst.Errorf("clone must keep its own state")
	}
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. validation restores zeroed constants")

	m := newModel(tst, "zhl16c", "1b", nil)
	if m == nil {
		return
	}
	m.ConstDepth(DepthToPressure(24), 30*60, 0, 0.79, 0)
	ref := m.Clone()

	// zero the derived constants, as after deserialisation
	for i := 0; i < Ncomps; i++ {
		m.Tissues[i].kHe = 0
		m.Tissues[i].kN2 = 0
	}
	err := m.Validate()
	if err != nil {
		tst.Errorf("validation failed:\n%v", err)
		return
	}
	for i := 0; i < Ncomps; i++ {
		chk.Scalar(tst, io.Sf("k_he %d", i), 1e-17, m.Tissues[i].kHe, ref.Tissues[i].kHe)
		chk.Scalar(tst, io.Sf("k_n2 %d", i), 1e-17, m.Tissues[i].kN2, ref.Tissues[i].kN2)
		chk.Scalar(tst, io.Sf("pp_n2 %d", i), 1e-17, m.Tissues[i].PpN2, ref.Tissues[i].PpN2)
	}

	// corrupted pressures are refused
	bad := m.Clone()
	bad.Tissues[3].PpN2 = 0
	if err := bad.Validate(); err == nil {
		tst.Errorf("pp_n2 = 0 must fail validation")
	}
	bad = m.Clone()
	bad.Tissues[3].PpHe = -0.1
	if err := bad.Validate(); err == nil {
		tst.Errorf("pp_he < 0 must fail validation")
	}
}

func Test_model05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model05. encode/decode round trip")

	m := newModel(tst, "zhl16b", "1b", fun.Prms{
		&fun.Prm{N: "gflow", V: 0.35},
		&fun.Prm{N: "gfhigh", V: 0.75},
		&fun.Prm{N: "strict", V: 1},
	})
	if m == nil {
		return
	}
	m.MetaData = "test dive"
	m.ConstDepth(DepthToPressure(30), 20*60, 0.2, 0.5, 0)
	m.Gradient.SetGfAtDepth(0.9)

	b, err := m.Encode()
	if err != nil {
		tst.Errorf("encode failed:\n%v", err)
		return
	}
	io.Pforan("%s\n", string(b))

	r, err := Decode(b)
	if err != nil {
		tst.Errorf("decode failed:\n%v", err)
		return
	}
	chk.String(tst, r.Deco, "zhl16b")
	chk.String(tst, r.MetaData, "test dive")
	for i := 0; i < Ncomps; i++ {
		chk.Scalar(tst, io.Sf("pp_he %d", i), 1e-17, r.Tissues[i].PpHe, m.Tissues[i].PpHe)
		chk.Scalar(tst, io.Sf("pp_n2 %d", i), 1e-17, r.Tissues[i].PpN2, m.Tissues[i].PpN2)
		chk.Scalar(tst, io.Sf("k_he %d", i), 1e-17, r.Tissues[i].kHe, m.Tissues[i].kHe)
	}
	chk.Scalar(tst, "otu", 1e-17, r.OxTox.Otu, m.OxTox.Otu)
	chk.Scalar(tst, "cns", 1e-17, r.OxTox.Cns, m.OxTox.Cns)
	chk.Scalar(tst, "gf", 1e-17, r.Gradient.Gf, m.Gradient.Gf)
	chk.Scalar(tst, "first stop", 1e-17, r.Gradient.FirstStop, m.Gradient.FirstStop)
	if !r.OxTox.Strict {
		tst.Errorf("strict flag must survive the round trip")
	}
	chk.Scalar(tst, "ceiling", 1e-15, r.Ceiling(), m.Ceiling())
}

func Test_model06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model06. closed circuit edge cases")

	// CCR bottom segment: inert loading comes from the diluent
	m := newModel(tst, "zhl16b", "1b", nil)
	if m == nil {
		return
	}
	err := m.ConstDepth(DepthToPressure(30), 10*60, 0.35, 0.44, 1.3)
	if err != nil {
		tst.Errorf("ccr const depth failed:\n%v", err)
		return
	}
	if m.Tissues[0].PpHe <= 0 {
		tst.Errorf("diluent helium must load the fast compartment")
	}

	// pure oxygen loop: no inert gas inspired, tissues off-gas
	ppN2 := m.Tissues[0].PpN2
	err = m.ConstDepth(DepthToPressure(6), 10*60, 0, 0, 1.4)
	if err != nil {
		tst.Errorf("pure oxygen segment failed:\n%v", err)
		return
	}
	if m.Tissues[0].PpN2 >= ppN2 {
		tst.Errorf("pure oxygen must off-gas nitrogen: %v >= %v", m.Tissues[0].PpN2, ppN2)
	}

	// shallow water with a high setpoint: the loop cannot hold it and the
	// inspired inert pressures collapse to zero
	ppN2 = m.Tissues[0].PpN2
	err = m.ConstDepth(DepthToPressure(3), 10*60, 0.35, 0.44, 1.6)
	if err != nil {
		tst.Errorf("shallow ccr segment failed:\n%v", err)
		return
	}
	if m.Tissues[0].PpN2 >= ppN2 {
		tst.Errorf("shallow high setpoint must keep off-gassing: %v >= %v", m.Tissues[0].PpN2, ppN2)
	}
}

func Test_model07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model07. segment errors leave the model untouched")

	m := newModel(tst, "zhl16b", "1b", fun.Prms{&fun.Prm{N: "strict", V: 1}})
	if m == nil {
		return
	}
	ref := m.Clone()

	// zero rate and zero-length transitions
	if err := m.AscDesc(0, DepthToPressure(30), 0, 0, 0.79, 0); err == nil {
		tst.Errorf("zero rate must be rejected")
	}
	if err := m.AscDesc(1.0, 1.0, 0.2, 0, 0.79, 0); err == nil {
		tst.Errorf("equal start and finish must be rejected")
	}
	if err := m.ConstDepth(DepthToPressure(30), -60, 0, 0.79, 0); err == nil {
		tst.Errorf("negative time must be rejected")
	}

	// strict oxygen refusal: breathing pure O2 far beyond the limit
	if err := m.ConstDepth(DepthToPressure(25), 60, 0, 0, 0); err == nil {
		tst.Errorf("strict mode must refuse ppO2 beyond 3 bar")
	}

	// nothing may have moved
	for i := 0; i < Ncomps; i++ {
		chk.Scalar(tst, io.Sf("pp_he %d", i), 1e-17, m.Tissues[i].PpHe, ref.Tissues[i].PpHe)
		chk.Scalar(tst, io.Sf("pp_n2 %d", i), 1e-17, m.Tissues[i].PpN2, ref.Tissues[i].PpN2)
	}
	chk.Scalar(tst, "otu", 1e-17, m.OxTox.Otu, ref.OxTox.Otu)
}

func Test_model08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model08. descent, no-deco time and first stop")

	m := newModel(tst, "zhl16b", "1b", nil)
	if m == nil {
		return
	}

	// descend to 30 m on air
	err := m.AscDesc(0, DepthToPressure(30), 0.333, 0, 0.79, 0)
	if err != nil {
		tst.Errorf("descent failed:\n%v", err)
		return
	}
	if m.Tissues[0].PpN2 <= m.FInert*(m.Psurf-m.PpH2O) {
		tst.Errorf("descent must on-gas the fast compartment")
		return
	}

	// fresh at depth there is still no-deco time left
	ndl, err := m.Ndl(DepthToPressure(30), 0, 0.79, 0)
	if err != nil {
		tst.Errorf("ndl failed:\n%v", err)
		return
	}
	io.Pforan("ndl = %v min\n", ndl)
	if ndl <= 0 || ndl > NdlMax {
		tst.Errorf("ndl out of range: %d", ndl)
		return
	}

	// more bottom time shortens it
	m.ConstDepth(DepthToPressure(30), 10*60, 0, 0.79, 0)
	ndl2, err := m.Ndl(DepthToPressure(30), 0, 0.79, 0)
	if err != nil {
		tst.Errorf("ndl failed:\n%v", err)
		return
	}
	if ndl2 >= ndl {
		tst.Errorf("bottom time must shorten the ndl: %d >= %d", ndl2, ndl)
	}
}
