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

// Package fdt reads flattened device trees out of physical memory.
package fdt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/u-root/u-root/pkg/dt"
)

const (
	// Magic is the big-endian word at the start of every flattened device tree.
	Magic = 0xd00dfeed

	headerSize = 40
	// maxSize bounds the blob we'll read for a single tree.
	maxSize = 64 << 20
)

var (
	// ErrBadMagic is returned when the memory doesn't start with an FDT header.
	ErrBadMagic = errors.New("bad device tree magic")
)

// Tree is a parsed device tree.
type Tree struct {
	fdt *dt.FDT
}

// Open parses the device tree located at physical address addr.
func Open(mem io.ReaderAt, addr uint64) (*Tree, error) {
	if addr == 0 || addr > math.MaxInt64-maxSize {
		return nil, fmt.Errorf("invalid device tree address 0x%x", addr)
	}
	var hdr [8]byte
	if _, err := mem.ReadAt(hdr[:], int64(addr)); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if m := binary.BigEndian.Uint32(hdr[0:4]); m != Magic {
		return nil, fmt.Errorf("0x%08x at 0x%x: %w", m, addr, ErrBadMagic)
	}
	size := binary.BigEndian.Uint32(hdr[4:8])
	if size < headerSize || size > maxSize {
		return nil, fmt.Errorf("implausible device tree size %d", size)
	}

	f, err := dt.ReadFDT(io.NewSectionReader(mem, int64(addr), int64(size)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse device tree: %w", err)
	}
	return &Tree{fdt: f}, nil
}

// Parse parses a device tree held in b.
func Parse(b []byte) (*Tree, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("device tree too short: %d bytes", len(b))
	}
	if m := binary.BigEndian.Uint32(b[0:4]); m != Magic {
		return nil, fmt.Errorf("0x%08x: %w", m, ErrBadMagic)
	}
	f, err := dt.ReadFDT(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to parse device tree: %w", err)
	}
	return &Tree{fdt: f}, nil
}

// PathNode finds the node at the absolute path p, e.g. "/chosen".
//
// A path component without a unit address matches a node whose name has one,
// so "/memory" finds "memory@80000000".
func (t *Tree) PathNode(p string) (*dt.Node, bool) {
	if !strings.HasPrefix(p, "/") {
		return nil, false
	}
	n := t.fdt.RootNode
	if n == nil {
		return nil, false
	}
	for _, c := range strings.Split(strings.Trim(p, "/"), "/") {
		if c == "" {
			continue
		}
		n = child(n, c)
		if n == nil {
			return nil, false
		}
	}
	return n, true
}

func child(n *dt.Node, name string) *dt.Node {
	if c, ok := n.LookupChildByName(name); ok {
		return c
	}
	if strings.Contains(name, "@") {
		return nil
	}
	i, ok := n.FindFirstMatchingChildIndex(func(c *dt.Node) bool {
		base, _, ok := strings.Cut(c.Name, "@")
		return ok && base == name
	})
	if !ok {
		return nil
	}
	return n.Children[i]
}

// Property returns the raw value of n's property called name.
func (t *Tree) Property(n *dt.Node, name string) ([]byte, bool) {
	p, ok := n.LookProperty(name)
	if !ok {
		return nil, false
	}
	return p.Value, true
}
