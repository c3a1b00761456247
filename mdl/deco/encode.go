// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deco

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
)

// modelData is the serialised form of a Model: the table selectors, the
// per-compartment partial pressures and the gradient and oxygen state. The
// derived coefficients are not stored; Validate restores them from the
// selectors on decoding
type modelData struct {
	Deco     string            `json:"deco"`
	Values   string            `json:"values"`
	MetaData string            `json:"metadata"`
	Psurf    float64           `json:"psurf"`
	FInert   float64           `json:"finert"`
	PpH2O    float64           `json:"pph2o"`
	AscH2O   bool              `json:"asch2o"`
	Strict   bool              `json:"strict"`
	PpHe     [Ncomps]float64   `json:"pphe"`
	PpN2     [Ncomps]float64   `json:"ppn2"`
	OxTox    OxTox             `json:"oxtox"`
	Gradient Gradient          `json:"gradient"`
}

// Encode serialises the model state to JSON
func (o *Model) Encode() ([]byte, error) {
	d := modelData{
		Deco:     o.Deco,
		Values:   o.Values,
		MetaData: o.MetaData,
		Psurf:    o.Psurf,
		FInert:   o.FInert,
		PpH2O:    o.PpH2O,
		AscH2O:   o.AscH2O,
		Strict:   o.OxTox.Strict,
		OxTox:    o.OxTox,
		Gradient: o.Gradient,
	}
	for i := 0; i < Ncomps; i++ {
		d.PpHe[i] = o.Tissues[i].PpHe
		d.PpN2[i] = o.Tissues[i].PpN2
	}
	return json.Marshal(&d)
}

// Decode rebuilds a model from its serialised state and validates it,
// restoring the kinetic and M-value coefficients from the table selectors
func Decode(b []byte) (o *Model, err error) {
	var d modelData
	if e := json.Unmarshal(b, &d); e != nil {
		return nil, chk.Err(_encode_err01, e)
	}
	o, err = New(d.Deco, d.Values)
	if err != nil {
		return
	}
	o.MetaData = d.MetaData
	o.Psurf = d.Psurf
	o.FInert = d.FInert
	o.PpH2O = d.PpH2O
	o.AscH2O = d.AscH2O
	o.OxTox = d.OxTox
	o.OxTox.Strict = d.Strict
	o.Gradient = d.Gradient
	for i := 0; i < Ncomps; i++ {
		o.Tissues[i].PpHe = d.PpHe[i]
		o.Tissues[i].PpN2 = d.PpN2[i]
	}
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// error messages
var (
	_encode_err01 = "model validation: cannot unmarshal model data:\n%v\n"
)
