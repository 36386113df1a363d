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

// Package impl is the implementation of the handoff emulator.
package impl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/google/boot-handoff/handoff"
	"github.com/google/boot-handoff/internal/config"
	"github.com/google/boot-handoff/internal/ext4"
	"github.com/google/boot-handoff/internal/fdt"
	"github.com/google/boot-handoff/internal/memory"
	"github.com/google/boot-handoff/internal/platform"
	"golang.org/x/sync/errgroup"
)

const (
	// ExitHandoff is the exit code used once the kernel has been handed the CPU.
	ExitHandoff = 0
	// ExitHalted is the exit code used when the emulated CPU halts.
	ExitHalted = 3
)

// EmulatorOpts encapsulates the parameters for running the emulator.
type EmulatorOpts struct {
	ConfigFile      string
	Disk            string
	PartitionOffset int64

	Kernel     string
	DeviceTree string
	BootArgs   string

	LinuxBootRequested bool
	BootFlagFile       string
	BootFlagAddr       uint64
	BootFlagValue      uint32

	// Out receives the emulated console output; os.Stdout if nil.
	Out io.Writer
	// Exit ends the emulation once the CPU has left firmware; os.Exit if nil.
	Exit func(code int)
}

// Main is the entry point for the handoff emulator. It returns nil when the
// firmware would continue booting, and doesn't return at all on handoff.
func Main(ctx context.Context, opts EmulatorOpts) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}

	read := os.ReadFile
	if opts.Disk != "" {
		f, err := os.Open(opts.Disk)
		if err != nil {
			return fmt.Errorf("failed to open disk: %w", err)
		}
		defer f.Close()
		p := &ext4.Partition{Dev: f, Offset: opts.PartitionOffset}
		read = p.ReadAll
		if opts.ConfigFile == "" {
			opts.ConfigFile = config.DefaultPath
		}
	}
	if opts.ConfigFile == "" {
		return errors.New("no config given")
	}

	raw, err := read(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", opts.ConfigFile, err)
	}
	cfg, err := config.Parse(raw)
	if err != nil {
		return err
	}
	if opts.Kernel != "" {
		cfg.Kernel = opts.Kernel
	}
	if opts.DeviceTree != "" {
		cfg.DeviceTree = opts.DeviceTree
	}
	if opts.BootArgs != "" {
		cfg.BootArgs = opts.BootArgs
	}

	kernel, dtb, err := loadImages(ctx, read, cfg)
	if err != nil {
		return err
	}
	if cfg.BootArgs != "" {
		if dtb, err = fdt.SetBootArgs(dtb, cfg.BootArgs); err != nil {
			return fmt.Errorf("dtb fixup error: %w", err)
		}
	}

	mem := &memory.Sparse{}
	if err := mem.Map(cfg.DeviceTreeAddr, dtb); err != nil {
		return fmt.Errorf("failed to load device tree: %w", err)
	}
	if err := mem.Map(cfg.KernelAddr, kernel); err != nil {
		return fmt.Errorf("failed to load kernel: %w", err)
	}
	glog.Infof("Loaded %d byte kernel blob at 0x%x and %d byte device tree at 0x%x", len(kernel), cfg.KernelAddr, len(dtb), cfg.DeviceTreeAddr)

	var req handoff.BootRequester = platform.Static(opts.LinuxBootRequested)
	if opts.BootFlagFile != "" {
		flag, err := os.ReadFile(opts.BootFlagFile)
		if err != nil {
			return fmt.Errorf("failed to read boot flag: %w", err)
		}
		if err := mem.Map(opts.BootFlagAddr, flag); err != nil {
			return fmt.Errorf("failed to map boot flag: %w", err)
		}
		req = platform.MemoryFlag{Memory: mem, Addr: opts.BootFlagAddr, Want: opts.BootFlagValue}
	}

	a, err := handoff.New(handoff.Opts{
		Memory:    mem,
		Layout:    cfg.HandoffLayout(),
		Protocol:  cfg.HandoffProtocol(),
		Requester: req,
		Executor:  &executor{out: opts.Out, exit: opts.Exit},
	})
	if err != nil {
		return err
	}
	// Firmware calls in from both the PEI and DXE paths; only the first counts.
	a.ContinueOrBoot(cfg.DeviceTreeAddr, cfg.KernelAddr)
	a.ContinueOrBoot(cfg.DeviceTreeAddr, cfg.KernelAddr)

	d, _ := a.Decision()
	fmt.Fprintf(opts.Out, "continuing firmware boot (intent %s)\n", d)
	return nil
}

// loadImages reads the kernel blob and device tree concurrently.
func loadImages(ctx context.Context, read func(string) ([]byte, error), cfg config.Config) (kernel, dtb []byte, err error) {
	g, ctx := errgroup.WithContext(ctx)
	load := func(path string, dst *[]byte) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := read(path)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", path, err)
			}
			*dst = b
			return nil
		}
	}
	g.Go(load(cfg.Kernel, &kernel))
	g.Go(load(cfg.DeviceTree, &dtb))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return kernel, dtb, nil
}

// executor reports the handoff on the console instead of jumping.
type executor struct {
	out  io.Writer
	exit func(int)
}

func (e *executor) Jump(entry uint64, args handoff.Args) {
	fmt.Fprintf(e.out, "handoff: entry=0x%x x0=0x%x x1=0x%x x2=0x%x x3=0x%x\n", entry, args[0], args[1], args[2], args[3])
	e.exit(ExitHandoff)
}

func (e *executor) Halt() {
	fmt.Fprintln(e.out, "halted")
	e.exit(ExitHalted)
	// os.Exit doesn't return; anything else standing in for it must not either.
	select {}
}
