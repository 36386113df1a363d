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

package config_test

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/google/boot-handoff/handoff"
	"github.com/google/boot-handoff/internal/config"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/mod/sumdb/note"
)

const goodConfig = `
kernel: /boot/boot.img
dtb: /boot/sm8150-test.dtb
kernel_addr: 0x9d400000
dtb_addr: 0x83000000
protocol: aarch64
layout:
  payload_size: 0x300000
`

func TestParse(t *testing.T) {
	for _, test := range []struct {
		desc    string
		raw     string
		want    config.Config
		wantErr bool
	}{
		{
			desc: "defaults filled",
			raw:  goodConfig,
			want: config.Config{
				Kernel:         "/boot/boot.img",
				DeviceTree:     "/boot/sm8150-test.dtb",
				KernelAddr:     0x9d400000,
				DeviceTreeAddr: 0x83000000,
				Protocol:       "aarch64",
				Layout: config.Layout{
					HeaderSize:  0x200000,
					PayloadSize: 0x300000,
					MagicOffset: 0x38,
					Magic:       handoff.AArch64Magic,
				},
			},
		}, {
			desc: "everything set",
			raw: `
kernel: zImage
dtb: imx6ull-usbarmory.dtb
bootargs: console=ttymxc1,115200 root=/dev/mmcblk0p1
kernel_addr: 0x80800000
dtb_addr: 0x87000000
protocol: arm
layout:
  header_size: 0
  payload_size: 0x1000
  magic_offset: 0x24
  magic: 0x016f2818
`,
			want: config.Config{
				Kernel:         "zImage",
				DeviceTree:     "imx6ull-usbarmory.dtb",
				BootArgs:       "console=ttymxc1,115200 root=/dev/mmcblk0p1",
				KernelAddr:     0x80800000,
				DeviceTreeAddr: 0x87000000,
				Protocol:       "arm",
				Layout: config.Layout{
					HeaderSize:  0,
					PayloadSize: 0x1000,
					MagicOffset: 0x24,
					Magic:       0x016f2818,
				},
			},
		}, {
			desc:    "missing payload size",
			raw:     "kernel_addr: 0x9d400000\ndtb_addr: 0x83000000\n",
			wantErr: true,
		}, {
			desc:    "missing addresses",
			raw:     "layout:\n  payload_size: 0x1000\n",
			wantErr: true,
		}, {
			desc:    "bad protocol",
			raw:     strings.Replace(goodConfig, "aarch64", "mips", 1),
			wantErr: true,
		}, {
			desc:    "unknown field",
			raw:     goodConfig + "initrd: /boot/initrd\n",
			wantErr: true,
		}, {
			desc:    "overflowing layout",
			raw:     "kernel_addr: 0xffffffffffff0000\ndtb_addr: 0x1000\nlayout:\n  payload_size: 0x100000\n",
			wantErr: true,
		}, {
			desc:    "not yaml",
			raw:     "{{{",
			wantErr: true,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got, err := config.Parse([]byte(test.raw))
			if (err != nil) != test.wantErr {
				t.Fatalf("Parse() = %v, wantErr %t", err, test.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandoffLayoutAndProtocol(t *testing.T) {
	c, err := config.Parse([]byte(goodConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(handoff.DefaultLayout(0x300000), c.HandoffLayout()); diff != "" {
		t.Errorf("HandoffLayout() diff (-want +got):\n%s", diff)
	}
	if got := c.HandoffProtocol(); got != handoff.AArch64 {
		t.Errorf("HandoffProtocol() = %s, want %s", got, handoff.AArch64)
	}
}

func mustKeys(t *testing.T, name string) (note.Signer, note.Verifier) {
	t.Helper()
	skey, vkey, err := note.GenerateKey(rand.Reader, name)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := note.NewSigner(skey)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	v, err := note.NewVerifier(vkey)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return s, v
}

func TestParseSigned(t *testing.T) {
	s, v := mustKeys(t, "handoff-test")
	_, other := mustKeys(t, "someone-else")
	signed, err := note.Sign(&note.Note{Text: goodConfig[1:]}, s)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tampered := append([]byte{}, signed...)
	tampered[len("kernel: /boot/")] = 'X'

	for _, test := range []struct {
		desc    string
		raw     []byte
		v       note.Verifier
		wantErr bool
	}{
		{desc: "valid", raw: signed, v: v},
		{desc: "unknown key", raw: signed, v: other, wantErr: true},
		{desc: "tampered", raw: tampered, v: v, wantErr: true},
		{desc: "unsigned", raw: []byte(goodConfig[1:]), v: v, wantErr: true},
	} {
		t.Run(test.desc, func(t *testing.T) {
			c, err := config.ParseSigned(test.raw, note.VerifierList(test.v))
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseSigned() = %v, wantErr %t", err, test.wantErr)
			}
			if err == nil && c.KernelAddr != 0x9d400000 {
				t.Errorf("KernelAddr = 0x%x, want 0x9d400000", c.KernelAddr)
			}
		})
	}
}
