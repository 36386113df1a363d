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


//go:build armory
// +build armory

package main

import (
	"io"

	"github.com/usbarmory/tamago/soc/nxp/usdhc"
)

// cardReader exposes a uSD/eMMC card as an io.ReaderAt.
type cardReader struct {
	card *usdhc.USDHC
}

func (c cardReader) ReadAt(p []byte, off int64) (int, error) {
	info := c.card.Info()
	end := int64(info.Blocks) * int64(info.BlockSize)
	if off >= end {
		return 0, io.EOF
	}
	size := int64(len(p))
	if off+size > end {
		size = end - off
	}
	buf, err := c.card.Read(off, size)
	if err != nil {
		return 0, err
	}
	n := copy(p, buf)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
