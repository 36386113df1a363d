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

package handoff

import (
	"fmt"

	"github.com/golang/glog"
)

// Args holds the values placed in the first four argument registers at handoff.
type Args [4]uint64

// Executor performs the architectural part of a kernel handoff.
type Executor interface {
	// Jump transfers control to entry with args in the argument registers.
	// It only returns if the kernel handed control back.
	Jump(entry uint64, args Args)
	// Halt stops the processor for good. It must not return.
	Halt()
}

// Protocol is a kernel boot protocol's register contract.
type Protocol int

const (
	// AArch64 boots with x0 = dtb and x1-x3 = 0.
	AArch64 Protocol = iota
	// ARM boots with r0 = 0, r1 = ~0 (no machine type) and r2 = dtb.
	ARM
)

func (p Protocol) String() string {
	switch p {
	case AArch64:
		return "aarch64"
	case ARM:
		return "arm"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// ParseProtocol maps a protocol name as produced by String back to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "", "aarch64", "arm64":
		return AArch64, nil
	case "arm":
		return ARM, nil
	}
	return 0, fmt.Errorf("unknown boot protocol %q", s)
}

// Args returns the argument registers for booting with the device tree at dtb.
func (p Protocol) Args(dtb uint64) Args {
	if p == ARM {
		return Args{0, 0xffffffff, dtb, 0}
	}
	return Args{dtb, 0, 0, 0}
}

// Transfer hands the CPU to the kernel described by d. It does not return.
//
// If the kernel returns the processor is halted via e.Halt.
func Transfer(e Executor, p Protocol, d Descriptor, dtb uint64) {
	glog.Infof("Kernel Load Address = 0x%x, Device Tree Load Address = 0x%x", d.Entry(), dtb)
	glog.Infof("Loading kernel (%s, image base 0x%x)...", p, d.Base())
	glog.Flush()

	e.Jump(d.Entry(), p.Args(dtb))

	glog.Errorf("Kernel at 0x%x returned control, halting", d.Entry())
	glog.Flush()
	e.Halt()
	panic("handoff: Halt returned")
}
