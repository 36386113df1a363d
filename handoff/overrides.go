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
	"io"

	"github.com/golang/glog"
	"github.com/google/boot-handoff/internal/cmdline"
	"github.com/google/boot-handoff/internal/fdt"
)

const (
	chosenPath   = "/chosen"
	bootArgsProp = "bootargs"

	// ForceNormalBootMarker asks Android to skip recovery and boot normally.
	ForceNormalBootMarker = "androidboot.force_normal_boot=1"
	// SkipInitramfsMarker tells the kernel to mount system as root directly.
	SkipInitramfsMarker = "skip_initramfs"
)

// Overrides records which override markers were found on the kernel command line.
type Overrides struct {
	ForceNormalBoot bool
	SkipInitramfs   bool
}

// Any returns true if at least one override marker was present.
func (o Overrides) Any() bool {
	return o.ForceNormalBoot || o.SkipInitramfs
}

// ScanOverrides searches the bootargs of the device tree at dtb for override markers.
//
// A nil dtb, a tree which can't be parsed, a missing /chosen node and a missing
// bootargs property all report no overrides.
func ScanOverrides(mem io.ReaderAt, dtb uint64) Overrides {
	if dtb == 0 {
		return Overrides{}
	}
	t, err := fdt.Open(mem, dtb)
	if err != nil {
		glog.Warningf("Failed to read device tree at 0x%x: %v", dtb, err)
		return Overrides{}
	}
	chosen, ok := t.PathNode(chosenPath)
	if !ok {
		glog.Warning("Failed to get cmdline: no /chosen node")
		return Overrides{}
	}
	args, ok := t.Property(chosen, bootArgsProp)
	if !ok {
		return Overrides{}
	}

	var buf cmdline.Buffer
	if buf.Fill(args) {
		glog.V(1).Infof("bootargs truncated from %d to %d bytes", len(args), cmdline.Capacity-1)
	}
	glog.V(1).Infof("cmdline: %q", buf.String())
	return Overrides{
		ForceNormalBoot: buf.Contains(ForceNormalBootMarker),
		SkipInitramfs:   buf.Contains(SkipInitramfsMarker),
	}
}
