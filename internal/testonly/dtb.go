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

// Package testonly holds fixtures for building boot images in tests.
package testonly

import (
	"bytes"

	"github.com/u-root/u-root/pkg/dt"
)

// FDT flattens the tree rooted at root into a version 17 blob.
func FDT(root *dt.Node) []byte {
	f := &dt.FDT{
		Header: dt.Header{
			Magic:           dt.Magic,
			Version:         17,
			LastCompVersion: 16,
		},
		RootNode: root,
	}
	var buf bytes.Buffer
	if _, err := f.Write(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func board(children ...*dt.Node) *dt.Node {
	memory := dt.NewNode("memory@80000000", dt.WithProperty(
		dt.PropertyString("device_type", "memory"),
		dt.PropertyRegion("reg", 0x80000000, 0x40000000),
	))
	return dt.NewNode("",
		dt.WithProperty(
			dt.PropertyString("compatible", "qcom,sm8150"),
			dt.PropertyString("model", "Test Board"),
			dt.PropertyU32("#address-cells", 2),
			dt.PropertyU32("#size-cells", 2),
		),
		dt.WithChildren(append([]*dt.Node{memory}, children...)...),
	)
}

// DeviceTree returns a small board device tree whose /chosen/bootargs is bootargs.
func DeviceTree(bootargs string) []byte {
	return FDT(board(dt.NewNode("chosen", dt.WithProperty(
		dt.PropertyString("bootargs", bootargs),
	))))
}

// DeviceTreeWithoutChosen returns a board device tree with no /chosen node.
func DeviceTreeWithoutChosen() []byte {
	return FDT(board())
}

// DeviceTreeWithoutBootArgs returns a board device tree whose /chosen node has
// no bootargs.
func DeviceTreeWithoutBootArgs() []byte {
	return FDT(board(dt.NewNode("chosen", dt.WithProperty(
		dt.PropertyString("stdout-path", "serial0:115200n8"),
	))))
}
