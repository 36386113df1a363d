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

// Package handoff decides, once per boot, whether early firmware should jump
// straight into a pre-loaded kernel or carry on booting itself.
package handoff

import (
	"errors"
	"io"
	"sync"

	"github.com/golang/glog"
)

// Opts configures an Arbiter. Memory and Executor are required.
type Opts struct {
	// Memory gives access to physical memory, addressed by offset.
	Memory io.ReaderAt
	// Layout locates the kernel within the loaded blob.
	Layout Layout
	// Protocol selects the register contract used at handoff.
	Protocol Protocol
	// Requester reports whether the platform wants a direct kernel boot.
	Requester BootRequester
	// Executor performs the handoff.
	Executor Executor
	// Latch guards against repeated evaluation. A private Latch is used if nil.
	Latch *Latch
}

// Arbiter runs the continue-or-boot decision at most once.
type Arbiter struct {
	opts  Opts
	latch *Latch

	mu        sync.Mutex
	decision  Decision
	evaluated bool
}

// New returns an Arbiter using the given options.
func New(opts Opts) (*Arbiter, error) {
	if opts.Memory == nil {
		return nil, errors.New("handoff: Opts.Memory is nil")
	}
	if opts.Executor == nil {
		return nil, errors.New("handoff: Opts.Executor is nil")
	}
	l := opts.Latch
	if l == nil {
		l = &Latch{}
	}
	return &Arbiter{opts: opts, latch: l}, nil
}

// ContinueOrBoot either returns, letting firmware boot continue, or transfers
// control to the kernel loaded at kernel and never returns.
//
// Only the first call does anything; every later call returns immediately.
func (a *Arbiter) ContinueOrBoot(dtb, kernel uint64) {
	if !a.latch.TryAcquire() {
		return
	}
	if dtb == 0 {
		glog.Info("No device tree, continuing firmware boot")
		return
	}

	o := ScanOverrides(a.opts.Memory, dtb)
	requested := a.opts.Requester != nil && a.opts.Requester.LinuxBootRequested()
	d := ResolveIntent(o.Any(), requested)
	a.record(d)
	glog.Infof("Boot intent: %s (overrides %+v, kernel boot requested %t)", d, o, requested)

	if d != BootKernel {
		return
	}
	if !IsKernelPresent(a.opts.Memory, a.opts.Layout, kernel, dtb) {
		glog.Infof("No kernel image at 0x%x, continuing firmware boot", kernel)
		return
	}
	desc, err := a.opts.Layout.Describe(kernel)
	if err != nil {
		// IsKernelPresent has already accepted this layout.
		glog.Errorf("kernel layout: %v", err)
		return
	}
	Transfer(a.opts.Executor, a.opts.Protocol, desc, dtb)
}

// Decision returns the resolved boot intent and whether one was recorded.
func (a *Arbiter) Decision() (Decision, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.decision, a.evaluated
}

func (a *Arbiter) record(d Decision) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.decision, a.evaluated = d, true
}
