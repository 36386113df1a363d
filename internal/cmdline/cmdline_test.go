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

package cmdline_test

import (
	"strings"
	"testing"

	"github.com/google/boot-handoff/internal/cmdline"
)

func TestFill(t *testing.T) {
	for _, test := range []struct {
		desc          string
		prop          []byte
		want          string
		wantTruncated bool
	}{
		{
			desc: "empty",
			prop: nil,
			want: "",
		}, {
			desc: "nul terminated",
			prop: []byte("console=ttyS0 skip_initramfs\x00"),
			want: "console=ttyS0 skip_initramfs",
		}, {
			desc: "stops at first nul",
			prop: []byte("console=ttyS0\x00skip_initramfs\x00"),
			want: "console=ttyS0",
		}, {
			desc: "exactly fits",
			prop: []byte(strings.Repeat("a", cmdline.Capacity-1)),
			want: strings.Repeat("a", cmdline.Capacity-1),
		}, {
			desc:          "too long",
			prop:          []byte(strings.Repeat("b", cmdline.Capacity+10)),
			want:          strings.Repeat("b", cmdline.Capacity-1),
			wantTruncated: true,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			var b cmdline.Buffer
			if got := b.Fill(test.prop); got != test.wantTruncated {
				t.Errorf("Fill() = %t, want %t", got, test.wantTruncated)
			}
			if got := b.String(); got != test.want {
				t.Errorf("String() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFillClearsPrevious(t *testing.T) {
	var b cmdline.Buffer
	b.Fill([]byte("androidboot.force_normal_boot=1 quiet"))
	b.Fill([]byte("quiet"))
	if b.Contains("force_normal_boot") {
		t.Errorf("buffer still holds %q after refill", "force_normal_boot")
	}
}

func TestContains(t *testing.T) {
	for _, test := range []struct {
		desc   string
		line   string
		marker string
		want   bool
	}{
		{desc: "start", line: "skip_initramfs rootwait", marker: "skip_initramfs", want: true},
		{desc: "end", line: "rootwait skip_initramfs", marker: "skip_initramfs", want: true},
		{desc: "inside word", line: "xskip_initramfsx", marker: "skip_initramfs", want: true},
		{desc: "absent", line: "console=ttyMSM0", marker: "skip_initramfs", want: false},
		{desc: "partial", line: "skip_initram", marker: "skip_initramfs", want: false},
	} {
		t.Run(test.desc, func(t *testing.T) {
			var b cmdline.Buffer
			b.Fill([]byte(test.line))
			if got := b.Contains(test.marker); got != test.want {
				t.Errorf("Contains(%q) = %t, want %t", test.marker, got, test.want)
			}
		})
	}
}

func TestTruncationCanSplitMarker(t *testing.T) {
	marker := "skip_initramfs"
	line := strings.Repeat(" ", cmdline.Capacity-5) + marker
	var b cmdline.Buffer
	if !b.Fill([]byte(line)) {
		t.Fatal("Fill() = false, want truncation")
	}
	if b.Contains(marker) {
		t.Errorf("Contains(%q) = true for a marker cut at the buffer boundary", marker)
	}
}
