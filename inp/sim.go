// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file: the
// decompression model settings and the planned dive profile
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ozymandium/dipplanner/mdl/deco"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of the dive plan
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/dipplanner
}

// Settings holds the decompression model configuration. All values are
// immutable inputs consumed once at model construction
type Settings struct {
	Deco     string  `json:"deco"`     // table variant: zhl16a, zhl16b or zhl16c
	Values   string  `json:"values"`   // compartment-0 selector: 1a or 1b
	GfLow    float64 `json:"gflow"`    // gradient factor at the first stop
	GfHigh   float64 `json:"gfhigh"`   // gradient factor at the surface
	SurfTemp float64 `json:"surftemp"` // surface temperature [C]
	Psurf    float64 `json:"psurf"`    // surface ambient pressure [bar]
	FInert   float64 `json:"finert"`   // inert gas fraction of air
	Strict   bool    `json:"strict"`   // refuse ppO2 beyond 3.0 bar
	AscH2O   bool    `json:"asch2o"`   // water vapour correction in asc/desc
}

// SetDefault sets default values
func (o *Settings) SetDefault() {
	o.Deco = "zhl16c"
	o.Values = "1b"
	o.GfLow = 0.30
	o.GfHigh = 0.80
	o.SurfTemp = 20
	o.Psurf = 1.01325
	o.FInert = 0.7902
	o.Strict = false
	o.AscH2O = true
}

// Stage holds one leg of the planned dive: a transition to Depth at Rate
// followed by Time minutes at Depth, breathing one gas mix
type Stage struct {
	Desc  string  `json:"desc"`  // description of the stage. ex: descent, bottom
	Depth float64 `json:"depth"` // target depth [m]
	Time  float64 `json:"time"`  // time at depth [min]; 0 for a pure transition
	Rate  float64 `json:"rate"`  // transition rate [m/s]; must be positive when Depth differs from the previous depth
	FHe   float64 `json:"fhe"`   // He fraction of the breathed mix
	FN2   float64 `json:"fn2"`   // N2 fraction of the breathed mix
	PpO2  float64 `json:"ppo2"`  // CCR setpoint [bar]; 0 means open circuit
}

// Simulation holds all dive plan data
type Simulation struct {

	// input
	Data     Data     `json:"data"`     // global data
	Settings Settings `json:"settings"` // model configuration
	Stages   []*Stage `json:"stages"`   // dive profile

	// derived
	Key    string // simulation key; e.g. trimix01.sim => trimix01
	DirOut string // directory to save results
}

// ReadSim reads a dive plan from a .sim JSON file
func ReadSim(simfilepath string, createDirOut bool) *Simulation {

	// new sim with defaults
	var o Simulation
	o.Settings.SetDefault()

	// read and decode
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key and output directory
	o.Key = io.FnKey(filepath.Base(simfilepath))
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/dipplanner/" + o.Key
	}
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("ReadSim: cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}
	return &o
}

// GetModel builds an initialised decompression model from the settings
func (o *Simulation) GetModel() (m *deco.Model, err error) {
	m, err = deco.New(o.Settings.Deco, o.Settings.Values)
	if err != nil {
		return
	}
	strict, asch2o := 0.0, 0.0
	if o.Settings.Strict {
		strict = 1
	}
	if o.Settings.AscH2O {
		asch2o = 1
	}
	err = m.Init(fun.Prms{
		&fun.Prm{N: "gflow", V: o.Settings.GfLow},
		&fun.Prm{N: "gfhigh", V: o.Settings.GfHigh},
		&fun.Prm{N: "surftemp", V: o.Settings.SurfTemp},
		&fun.Prm{N: "psurf", V: o.Settings.Psurf},
		&fun.Prm{N: "finert", V: o.Settings.FInert},
		&fun.Prm{N: "strict", V: strict},
		&fun.Prm{N: "asch2o", V: asch2o},
	})
	if err != nil {
		return nil, err
	}
	m.MetaData = o.Key
	return
}

// GetPath translates the stage list into the profile consumed by the driver.
// Each stage first moves from the current depth to its target (when the
// depths differ) and then stays there for its time
func (o *Simulation) GetPath() (pth *deco.Path, err error) {
	pth = new(deco.Path)
	depth := 0.0
	for i, s := range o.Stages {
		if s.Depth != depth {
			if s.Rate <= 0 {
				return nil, chk.Err(_sim_err01, i, depth, s.Depth, s.Rate)
			}
			pth.AddTrans(depth, s.Depth, s.Rate, s.FHe, s.FN2, s.PpO2)
			depth = s.Depth
		}
		if s.Time > 0 {
			pth.AddConst(depth, s.Time*60, s.FHe, s.FN2, s.PpO2)
		}
	}
	return
}

// error messages
var (
	_sim_err01 = "stage %d: moving from %g m to %g m needs a positive rate (%g)\n"
)
