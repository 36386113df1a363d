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

package fdt

import (
	"bytes"
	"fmt"

	"github.com/u-root/u-root/pkg/dt"
)

// SetBootArgs returns a copy of dtb whose /chosen/bootargs is cmdline.
// The chosen node is created if the tree lacks one.
func SetBootArgs(dtb []byte, cmdline string) ([]byte, error) {
	f, err := dt.ReadFDT(bytes.NewReader(dtb))
	if err != nil {
		return nil, fmt.Errorf("failed to parse device tree: %w", err)
	}
	if f.RootNode == nil {
		return nil, fmt.Errorf("device tree has no root node")
	}

	chosen, ok := f.RootNode.LookupChildByName("chosen")
	if !ok {
		chosen = dt.NewNode("chosen")
		f.RootNode.Children = append(f.RootNode.Children, chosen)
	}
	chosen.Update(dt.PropertyString("bootargs", cmdline))

	buf := new(bytes.Buffer)
	if _, err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write device tree: %w", err)
	}
	return buf.Bytes(), nil
}
