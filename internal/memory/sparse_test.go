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

package memory_test

import (
	"errors"
	"testing"

	"github.com/google/boot-handoff/internal/memory"
	"github.com/google/go-cmp/cmp"
)

func TestSparseMap(t *testing.T) {
	for _, test := range []struct {
		desc    string
		addr    uint64
		data    []byte
		wantErr bool
	}{
		{desc: "disjoint below", addr: 0x800, data: make([]byte, 0x800)},
		{desc: "disjoint above", addr: 0x2000, data: []byte{1}},
		{desc: "overlaps start", addr: 0xff0, data: make([]byte, 0x20), wantErr: true},
		{desc: "overlaps end", addr: 0x1fff, data: []byte{1, 2}, wantErr: true},
		{desc: "inside", addr: 0x1100, data: []byte{1}, wantErr: true},
		{desc: "empty", addr: 0x4000, wantErr: true},
		{desc: "wraps", addr: ^uint64(0), data: []byte{1, 2}, wantErr: true},
	} {
		t.Run(test.desc, func(t *testing.T) {
			var m memory.Sparse
			if err := m.Map(0x1000, make([]byte, 0x1000)); err != nil {
				t.Fatalf("Map(0x1000): %v", err)
			}
			if err := m.Map(test.addr, test.data); (err != nil) != test.wantErr {
				t.Errorf("Map(0x%x) = %v, wantErr %t", test.addr, err, test.wantErr)
			}
		})
	}
}

func TestSparseReadAt(t *testing.T) {
	var m memory.Sparse
	if err := m.Map(0x2000, []byte("kernel")); err != nil {
		t.Fatalf("Map: %v", err)
	}
	if err := m.Map(0x1000, []byte("dtb")); err != nil {
		t.Fatalf("Map: %v", err)
	}

	for _, test := range []struct {
		desc    string
		off     int64
		size    int
		want    []byte
		wantErr error
	}{
		{desc: "first segment", off: 0x1000, size: 3, want: []byte("dtb")},
		{desc: "second segment middle", off: 0x2002, size: 3, want: []byte("rne")},
		{desc: "before everything", off: 0x10, size: 1, wantErr: memory.ErrUnmapped},
		{desc: "gap", off: 0x1003, size: 1, wantErr: memory.ErrUnmapped},
		{desc: "past the end", off: 0x2006, size: 1, wantErr: memory.ErrUnmapped},
		{desc: "crosses end", off: 0x2004, size: 4, want: []byte("el"), wantErr: memory.ErrUnmapped},
		{desc: "negative", off: -1, size: 1, wantErr: memory.ErrUnmapped},
	} {
		t.Run(test.desc, func(t *testing.T) {
			p := make([]byte, test.size)
			n, err := m.ReadAt(p, test.off)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("ReadAt(0x%x) = %v, want %v", test.off, err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, p[:n]); n > 0 && diff != "" {
				t.Errorf("ReadAt(0x%x) diff (-want +got):\n%s", test.off, diff)
			}
		})
	}
}
