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

//go:build tamago
// +build tamago

package memory

import (
	"fmt"
	"unsafe"
)

// Physical reads memory directly. The caller guarantees that every address
// it reads is resident.
type Physical struct{}

// ReadAt copies len(p) bytes starting at physical address off.
func (Physical) ReadAt(p []byte, off int64) (int, error) {
	if off <= 0 {
		return 0, fmt.Errorf("read at 0x%x: %w", off, ErrUnmapped)
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(off))), len(p))
	return copy(p, src), nil
}

// WriteAt copies p to physical address off, used to stage images before the
// handoff decision is made.
func (Physical) WriteAt(p []byte, off int64) (int, error) {
	if off <= 0 {
		return 0, fmt.Errorf("write at 0x%x: %w", off, ErrUnmapped)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(off))), len(p))
	return copy(dst, p), nil
}
