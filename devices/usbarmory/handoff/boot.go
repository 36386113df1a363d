// Copyright 2021 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


//go:build armory
// +build armory

package main

import (
	"github.com/golang/glog"
	"github.com/google/boot-handoff/handoff"
	"github.com/usbarmory/tamago/arm"
	"github.com/usbarmory/tamago/soc/nxp/imx6ul"
)

// defined in exec_arm.s
func exec(entry, r0, r1, r2 uint32)
func svc()

// executor leaves Go for good: the jump is made from supervisor mode with
// caches flushed and disabled, as Linux expects.
type executor struct{}

func (executor) Jump(entry uint64, args handoff.Args) {
	arm.SystemExceptionHandler = func(n int) {
		if n != arm.SUPERVISOR {
			panic("unhandled exception")
		}

		setLEDs(false, false)

		// RNGB driver doesn't play well with previous initializations
		imx6ul.RNGB.Reset()

		imx6ul.ARM.FlushDataCache()
		imx6ul.ARM.DisableCache()

		exec(uint32(entry), uint32(args[0]), uint32(args[1]), uint32(args[2]))
	}

	svc()
	glog.Error("handoff: returned from supervisor call")
}

func (executor) Halt() {
	haltAndCatchFire("handoff: kernel did not start", 15)
}
