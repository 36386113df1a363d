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
	"time"

	"github.com/golang/glog"
	"github.com/google/boot-handoff/internal/led"
	usbarmory "github.com/usbarmory/tamago/board/usbarmory/mk2"
)

func setLEDs(blue, white bool) {
	usbarmory.LED("blue", blue)
	usbarmory.LED("white", white)
}

// haltAndCatchFire logs msg and signals code on the LEDs forever.
func haltAndCatchFire(msg string, code int) {
	glog.Errorf("halting with code %d: %s", code, msg)
	glog.Flush()
	round := led.Fault.Code(code)
	for {
		for _, s := range round {
			setLEDs(s.Blue, s.White)
			time.Sleep(s.Hold)
		}
	}
}
