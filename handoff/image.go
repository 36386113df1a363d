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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/glog"
)

const (
	// DefaultHeaderSize is the size of the image metadata which precedes the
	// firmware payload in the loaded blob.
	DefaultHeaderSize = 0x200000
	// DefaultMagicOffset is the offset of the magic field in an arm64 Linux
	// Image header.
	DefaultMagicOffset = 0x38
	// AArch64Magic is "ARM\x64" read as a little-endian word.
	AArch64Magic = 0x644d5241
)

// Layout describes where a kernel image lives inside a loaded blob.
//
// The kernel entry point sits HeaderSize+PayloadSize bytes past the blob base,
// and the kernel's magic word sits MagicOffset bytes past the entry point.
type Layout struct {
	HeaderSize  uint64
	PayloadSize uint64
	MagicOffset uint64
	Magic       uint32
}

// DefaultLayout returns the arm64 layout for a blob carrying payloadSize bytes
// of firmware ahead of the kernel.
func DefaultLayout(payloadSize uint64) Layout {
	return Layout{
		HeaderSize:  DefaultHeaderSize,
		PayloadSize: payloadSize,
		MagicOffset: DefaultMagicOffset,
		Magic:       AArch64Magic,
	}
}

// Descriptor holds the addresses derived from a Layout and a load address.
type Descriptor struct {
	base  uint64
	entry uint64
	magic uint64
}

// Describe computes the kernel addresses for an image loaded at base.
func (l Layout) Describe(base uint64) (Descriptor, error) {
	if base == 0 {
		return Descriptor{}, errors.New("nil kernel load address")
	}
	off := l.HeaderSize + l.PayloadSize
	if off < l.HeaderSize || base > math.MaxUint64-off {
		return Descriptor{}, fmt.Errorf("kernel entry overflows: base 0x%x + 0x%x + 0x%x", base, l.HeaderSize, l.PayloadSize)
	}
	entry := base + off
	// The magic word itself must be addressable too.
	if l.MagicOffset > math.MaxUint64-4 || entry > math.MaxUint64-4-l.MagicOffset {
		return Descriptor{}, fmt.Errorf("kernel magic overflows: entry 0x%x + 0x%x", entry, l.MagicOffset)
	}
	return Descriptor{
		base:  base,
		entry: entry,
		magic: entry + l.MagicOffset,
	}, nil
}

// Base returns the load address the descriptor was computed from.
func (d Descriptor) Base() uint64 { return d.base }

// Entry returns the kernel entry point.
func (d Descriptor) Entry() uint64 { return d.entry }

// MagicAddr returns the address of the kernel's magic word.
func (d Descriptor) MagicAddr() uint64 { return d.magic }

// IsKernelPresent reports whether a recognised kernel image sits at the entry
// point computed from kernel and l.
//
// A missing kernel is not an error: garbage at the magic address, a read
// failure or an unusable layout all simply yield false. dtb is not consulted.
func IsKernelPresent(mem io.ReaderAt, l Layout, kernel, dtb uint64) bool {
	d, err := l.Describe(kernel)
	if err != nil {
		glog.Warningf("kernel layout: %v", err)
		return false
	}
	if d.magic > math.MaxInt64 {
		return false
	}
	var b [4]byte
	if _, err := mem.ReadAt(b[:], int64(d.magic)); err != nil {
		glog.V(1).Infof("reading kernel magic at 0x%x: %v", d.magic, err)
		return false
	}
	return binary.LittleEndian.Uint32(b[:]) == l.Magic
}
