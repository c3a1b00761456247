// Copyright 2016 The Dipplanner Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"

	"github.com/ozymandium/dipplanner/inp"
	"github.com/ozymandium/dipplanner/mdl/deco"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nDipplanner -- Buhlmann ZH-L16 dive planning tool\n\n")

	// simulation filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a filename. Ex.: trimix01.sim")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".sim"
	}

	// read dive plan and build model
	sim := inp.ReadSim(fnamepath, true)
	io.Pf("%v\n", sim.Data.Desc)
	model, err := sim.GetModel()
	if err != nil {
		chk.Panic("cannot build model:\n%v", err)
	}
	pth, err := sim.GetPath()
	if err != nil {
		chk.Panic("cannot build dive profile:\n%v", err)
	}

	// run
	var drv deco.Driver
	err = drv.Init(model)
	if err != nil {
		chk.Panic("cannot initialise driver:\n%v", err)
	}
	err = drv.Run(pth)
	if err != nil {
		chk.Panic("dive profile failed:\n%v", err)
	}

	// report
	io.Pf("\n%9s%9s%9s%7s%9s%9s%9s\n", "t[s]", "depth", "ceiling", "gf", "otu", "cns", "control")
	for k, row := range drv.Summ {
		io.Pf("%9.1f%9.2f%9.2f%7.2f%9.2f%9.3f%9d\n",
			row[0], row[1], row[2], row[3], row[4], row[5], drv.Control[k])
	}
	io.Pf("\ntissue compartments:\n%v\n", model)
	io.Pf("ceiling             = %.2f m\n", model.Ceiling())
	io.Pf("first stop          = %.0f m\n", model.FirstStop())
	io.Pf("control compartment = %d\n", model.ControlCompartment())
	io.Pf("max ppO2 seen       = %.2f bar\n", model.OxTox.MaxPpO2)

	// save model state
	b, err := model.Encode()
	if err != nil {
		chk.Panic("cannot encode model:\n%v", err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.Pf("\n")
	io.WriteFileV(io.Sf("%s/%s-model.json", sim.DirOut, sim.Key), &buf)
}
