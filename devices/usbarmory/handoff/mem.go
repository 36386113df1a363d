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
	"fmt"
	_ "unsafe"

	"github.com/google/boot-handoff/internal/memory"
)

// The Go runtime is moved to the top 256MiB of RAM so that the kernel blob and
// device tree can be staged in the first 256MiB, where the kernel expects them.

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = 0x90000000

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = 0x10000000

const (
	stagingStart = 0x80000000
	stagingEnd   = 0x90000000
)

// stage copies b to addr, which must lie outside of the runtime's RAM.
func stage(mem memory.Physical, b []byte, addr uint64) error {
	if addr < stagingStart || addr > stagingEnd || uint64(len(b)) > stagingEnd-addr {
		return fmt.Errorf("0x%x bytes at 0x%x fall outside [0x%x, 0x%x)", len(b), addr, stagingStart, stagingEnd)
	}
	_, err := mem.WriteAt(b, int64(addr))
	return err
}
