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

// Package cmdline holds a kernel command line copied out of a device tree.
package cmdline

import (
	"bytes"
)

// Capacity is the size of a Buffer, including its NUL terminator.
const Capacity = 4096

// Buffer is a fixed size, NUL terminated command line.
type Buffer struct {
	b [Capacity]byte
	n int
}

// Fill zeroes the buffer and copies prop into it, stopping at the first NUL
// in prop. At most Capacity-1 bytes are kept; it returns true if some of prop
// did not fit.
func (c *Buffer) Fill(prop []byte) bool {
	c.b = [Capacity]byte{}
	if i := bytes.IndexByte(prop, 0); i >= 0 {
		prop = prop[:i]
	}
	c.n = copy(c.b[:Capacity-1], prop)
	return c.n < len(prop)
}

// Bytes returns the command line without its terminator.
func (c *Buffer) Bytes() []byte {
	return c.b[:c.n]
}

func (c *Buffer) String() string {
	return string(c.Bytes())
}

// Contains reports whether marker appears anywhere in the command line.
func (c *Buffer) Contains(marker string) bool {
	return bytes.Contains(c.Bytes(), []byte(marker))
}
