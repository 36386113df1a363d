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

// Package memory provides views of physical memory as io.ReaderAt, where the
// read offset is the physical address.
package memory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnmapped is returned when reading an address range that isn't backed.
var ErrUnmapped = errors.New("memory not mapped")

type segment struct {
	addr uint64
	data []byte
}

func (s segment) end() uint64 { return s.addr + uint64(len(s.data)) }

// Sparse is a hosted stand-in for physical memory made of separate segments,
// e.g. a device tree and a kernel image loaded at their firmware addresses.
type Sparse struct {
	segs []segment
}

// Map places data at addr. Segments may not overlap.
func (s *Sparse) Map(addr uint64, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty segment at 0x%x", addr)
	}
	n := segment{addr: addr, data: data}
	if n.end() < addr {
		return fmt.Errorf("segment at 0x%x with size 0x%x wraps", addr, len(data))
	}
	for _, o := range s.segs {
		if n.addr < o.end() && o.addr < n.end() {
			return fmt.Errorf("segment [0x%x, 0x%x) overlaps [0x%x, 0x%x)", n.addr, n.end(), o.addr, o.end())
		}
	}
	s.segs = append(s.segs, n)
	sort.Slice(s.segs, func(i, j int) bool { return s.segs[i].addr < s.segs[j].addr })
	return nil
}

// ReadAt reads len(p) bytes from physical address off.
func (s *Sparse) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative address %d: %w", off, ErrUnmapped)
	}
	addr := uint64(off)
	i := sort.Search(len(s.segs), func(i int) bool { return s.segs[i].end() > addr })
	if i == len(s.segs) || s.segs[i].addr > addr {
		return 0, fmt.Errorf("read at 0x%x: %w", addr, ErrUnmapped)
	}
	seg := s.segs[i]
	n := copy(p, seg.data[addr-seg.addr:])
	if n < len(p) {
		return n, fmt.Errorf("read of %d bytes at 0x%x crosses 0x%x: %w", len(p), addr, seg.end(), ErrUnmapped)
	}
	return n, nil
}
