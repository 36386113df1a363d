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

// Package config holds the handoff stage's configuration: where the images
// are, where they get loaded, and how the kernel sits inside its blob.
package config

import (
	"errors"
	"fmt"

	"github.com/google/boot-handoff/handoff"
	"golang.org/x/mod/sumdb/note"
	"gopkg.in/yaml.v2"
)

// DefaultPath is where devices look for the configuration on the boot partition.
const DefaultPath = "/boot/handoff.conf"

// SignatureSuffix is appended to a config path to find its signed copy.
const SignatureSuffix = ".sig"

// Config is the handoff configuration. Integers may be written in hex.
type Config struct {
	// Kernel is the path of the firmware+kernel blob on the boot partition.
	Kernel string `yaml:"kernel"`
	// DeviceTree is the path of the device tree blob on the boot partition.
	DeviceTree string `yaml:"dtb"`
	// BootArgs, if set, replaces /chosen/bootargs before the tree is loaded.
	BootArgs string `yaml:"bootargs,omitempty"`

	KernelAddr     uint64 `yaml:"kernel_addr"`
	DeviceTreeAddr uint64 `yaml:"dtb_addr"`

	// Protocol is the boot protocol name, "aarch64" or "arm".
	Protocol string `yaml:"protocol"`

	Layout Layout `yaml:"layout"`
}

// Layout mirrors handoff.Layout.
type Layout struct {
	HeaderSize  uint64 `yaml:"header_size"`
	PayloadSize uint64 `yaml:"payload_size"`
	MagicOffset uint64 `yaml:"magic_offset"`
	Magic       uint32 `yaml:"magic"`
}

// Default returns a config with the arm64 layout defaults filled in.
func Default() Config {
	return Config{
		Protocol: handoff.AArch64.String(),
		Layout: Layout{
			HeaderSize:  handoff.DefaultHeaderSize,
			MagicOffset: handoff.DefaultMagicOffset,
			Magic:       handoff.AArch64Magic,
		},
	}
}

// Parse parses and validates a YAML config. Missing fields keep their defaults.
func Parse(raw []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(raw, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// ParseSigned opens a config wrapped in a signed note and parses the note text.
func ParseSigned(raw []byte, verifiers note.Verifiers) (Config, error) {
	n, err := note.Open(raw, verifiers)
	if err != nil {
		return Config{}, fmt.Errorf("failed to verify config signature: %w", err)
	}
	return Parse([]byte(n.Text))
}

// Validate checks that c can drive a handoff.
func (c Config) Validate() error {
	var errs []error
	if c.Layout.PayloadSize == 0 {
		errs = append(errs, errors.New("layout.payload_size must be set"))
	}
	if c.KernelAddr == 0 {
		errs = append(errs, errors.New("kernel_addr must be set"))
	}
	if c.DeviceTreeAddr == 0 {
		errs = append(errs, errors.New("dtb_addr must be set"))
	}
	if _, err := handoff.ParseProtocol(c.Protocol); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.HandoffLayout().Describe(c.KernelAddr); c.KernelAddr != 0 && err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// HandoffLayout returns the kernel layout described by c.
func (c Config) HandoffLayout() handoff.Layout {
	return handoff.Layout{
		HeaderSize:  c.Layout.HeaderSize,
		PayloadSize: c.Layout.PayloadSize,
		MagicOffset: c.Layout.MagicOffset,
		Magic:       c.Layout.Magic,
	}
}

// HandoffProtocol returns the boot protocol named by c, AArch64 if unset.
func (c Config) HandoffProtocol() handoff.Protocol {
	p, err := handoff.ParseProtocol(c.Protocol)
	if err != nil {
		return handoff.AArch64
	}
	return p
}
