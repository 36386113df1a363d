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

// Package platform provides the platform side of "was a kernel boot requested?".
package platform

import (
	"encoding/binary"
	"io"

	"github.com/golang/glog"
)

// Static always gives the same answer, e.g. one fixed at build time.
type Static bool

// LinuxBootRequested returns s.
func (s Static) LinuxBootRequested() bool { return bool(s) }

// MemoryFlag reads a 32-bit little-endian word left in memory by an earlier
// boot stage or by the OS before reboot, and requests a kernel boot when the
// word equals Want.
type MemoryFlag struct {
	Memory io.ReaderAt
	Addr   uint64
	Want   uint32
}

// LinuxBootRequested reads the flag word. An unreadable flag means no request.
func (f MemoryFlag) LinuxBootRequested() bool {
	var b [4]byte
	if _, err := f.Memory.ReadAt(b[:], int64(f.Addr)); err != nil {
		glog.Warningf("Failed to read boot flag at 0x%x: %v", f.Addr, err)
		return false
	}
	got := binary.LittleEndian.Uint32(b[:])
	glog.V(1).Infof("boot flag at 0x%x: 0x%08x (want 0x%08x)", f.Addr, got, f.Want)
	return got == f.Want
}
