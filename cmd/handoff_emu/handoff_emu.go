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

// handoff_emu emulates the early firmware stage which decides between
// handing off to a pre-loaded kernel and continuing firmware boot.
//
// The kernel blob and device tree are "loaded" into an emulated physical
// memory map at the addresses given in the config, and the handoff is
// reported instead of performed.
//
// Usage:
//
//	go run ./cmd/handoff_emu --logtostderr --config=handoff.conf
//	go run ./cmd/handoff_emu --logtostderr --disk=boot.img --bootargs="console=ttyS0 skip_initramfs"
package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/google/boot-handoff/cmd/handoff_emu/impl"
)

var (
	configFile      = flag.String("config", "", "Path to the handoff config; defaults to /boot/handoff.conf on --disk")
	disk            = flag.String("disk", "", "Optional ext4 image holding the config and images; paths are then inside it")
	partitionOffset = flag.Int64("partition_offset", 0, "Byte offset of the ext4 filesystem within --disk")
	kernel          = flag.String("kernel", "", "Path to the kernel blob, overrides the config")
	dtb             = flag.String("dtb", "", "Path to the device tree blob, overrides the config")
	bootArgs        = flag.String("bootargs", "", "If set, replaces /chosen/bootargs in the device tree")
	bootRequested   = flag.Bool("linux_boot_requested", true, "Whether the platform requests a direct kernel boot")
	bootFlagFile    = flag.String("boot_flag_file", "", "If set, map this file at --boot_flag_addr and take the boot request from it")
	bootFlagAddr    = flag.Uint64("boot_flag_addr", 0x146bf000, "Physical address of the boot request flag word")
	bootFlagValue   = flag.Uint("boot_flag_value", 0x77665501, "Flag word value which requests a direct kernel boot")
)

func main() {
	flag.Parse()

	ctx := context.Background()
	if err := impl.Main(ctx, impl.EmulatorOpts{
		ConfigFile:         *configFile,
		Disk:               *disk,
		PartitionOffset:    *partitionOffset,
		Kernel:             *kernel,
		DeviceTree:         *dtb,
		BootArgs:           *bootArgs,
		LinuxBootRequested: *bootRequested,
		BootFlagFile:       *bootFlagFile,
		BootFlagAddr:       *bootFlagAddr,
		BootFlagValue:      uint32(*bootFlagValue),
	}); err != nil {
		glog.Exitf("handoff_emu: %v", err)
	}
}
