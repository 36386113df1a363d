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

// handoff is the USB armory Mk II firmware stage which either hands the CPU to
// a pre-loaded Linux kernel or carries on with the firmware boot.
//
// Build-time parameters are set with -ldflags "-X main.Boot=uSD ...".
package main

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"
	"github.com/google/boot-handoff/handoff"
	"github.com/google/boot-handoff/internal/config"
	"github.com/google/boot-handoff/internal/ext4"
	"github.com/google/boot-handoff/internal/fdt"
	"github.com/google/boot-handoff/internal/memory"
	"github.com/google/boot-handoff/internal/platform"
	"golang.org/x/mod/sumdb/note"

	usbarmory "github.com/usbarmory/tamago/board/usbarmory/mk2"
	"github.com/usbarmory/tamago/soc/nxp/usdhc"
)

var (
	Build    string
	Revision string

	// Boot selects the boot media, "eMMC" or "uSD".
	Boot string
	// StartKernel is the byte offset of the ext4 boot partition.
	StartKernel string
	// PublicKey, if set, is the note verifier key which must sign the config.
	PublicKey string
	// BootLinux is "true" when this image should hand off to Linux.
	BootLinux string
)

func init() {
	// There's no filesystem to log into.
	flag.Set("logtostderr", "true")

	setLEDs(false, false)
}

func main() {
	glog.Infof("handoff %s (%s)", Revision, Build)

	var card *usdhc.USDHC
	switch Boot {
	case "eMMC":
		card = usbarmory.MMC
	case "uSD":
		card = usbarmory.SD
	default:
		haltAndCatchFire("invalid boot parameter", 1)
	}

	// The uSD slot can take a moment to settle after power-on.
	detect := backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), 10)
	if err := backoff.Retry(card.Detect, detect); err != nil {
		haltAndCatchFire(fmt.Sprintf("card detect error: %v", err), 2)
	}

	offset, err := strconv.ParseInt(StartKernel, 0, 64)
	if err != nil {
		haltAndCatchFire(fmt.Sprintf("invalid kernel partition start offset: %v", err), 3)
	}
	part := &ext4.Partition{Dev: cardReader{card: card}, Offset: offset}

	cfg, err := readConfig(part)
	if err != nil {
		haltAndCatchFire(fmt.Sprintf("invalid configuration: %v", err), 4)
	}
	if p := cfg.HandoffProtocol(); p != handoff.ARM {
		haltAndCatchFire(fmt.Sprintf("invalid configuration: protocol %s, this is a 32-bit ARM board", p), 5)
	}
	usbarmory.LED("white", true)

	kernel, err := part.ReadAll(cfg.Kernel)
	if err != nil {
		haltAndCatchFire(fmt.Sprintf("invalid kernel path: %v", err), 6)
	}
	dtb, err := part.ReadAll(cfg.DeviceTree)
	if err != nil {
		haltAndCatchFire(fmt.Sprintf("invalid dtb path: %v", err), 7)
	}
	if cfg.BootArgs != "" {
		if dtb, err = fdt.SetBootArgs(dtb, cfg.BootArgs); err != nil {
			haltAndCatchFire(fmt.Sprintf("dtb fixup error: %v", err), 8)
		}
	}

	mem := memory.Physical{}
	if err := stage(mem, kernel, cfg.KernelAddr); err != nil {
		haltAndCatchFire(fmt.Sprintf("failed to stage kernel: %v", err), 9)
	}
	if err := stage(mem, dtb, cfg.DeviceTreeAddr); err != nil {
		haltAndCatchFire(fmt.Sprintf("failed to stage dtb: %v", err), 10)
	}
	usbarmory.LED("blue", true)

	a, err := handoff.New(handoff.Opts{
		Memory:    mem,
		Layout:    cfg.HandoffLayout(),
		Protocol:  cfg.HandoffProtocol(),
		Requester: platform.Static(BootLinux == "true"),
		Executor:  executor{},
	})
	if err != nil {
		haltAndCatchFire(err.Error(), 11)
	}
	a.ContinueOrBoot(cfg.DeviceTreeAddr, cfg.KernelAddr)

	d, _ := a.Decision()
	glog.Infof("handoff: continuing firmware boot (intent %s)", d)
	usbarmory.LED("white", false)
	// Nothing else lives in this image yet, park here.
	select {}
}

func readConfig(part *ext4.Partition) (config.Config, error) {
	if PublicKey == "" {
		glog.Warning("no public key, skipping config signature verification")
		raw, err := part.ReadAll(config.DefaultPath)
		if err != nil {
			return config.Config{}, err
		}
		return config.Parse(raw)
	}
	v, err := note.NewVerifier(PublicKey)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid public key: %w", err)
	}
	raw, err := part.ReadAll(config.DefaultPath + config.SignatureSuffix)
	if err != nil {
		return config.Config{}, err
	}
	return config.ParseSigned(raw, note.VerifierList(v))
}
