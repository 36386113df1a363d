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

package testonly

import "encoding/binary"

// KernelBlob returns a blob laid out as firmware expects to find it: a
// headerSize metadata area, payloadSize bytes of firmware, then an arm64
// Image header carrying magic at magicOffset.
func KernelBlob(headerSize, payloadSize, magicOffset uint64, magic uint32) []byte {
	entry := headerSize + payloadSize
	b := make([]byte, entry+magicOffset+0x40)
	// b #stext, the usual first instruction of an arm64 Image.
	binary.LittleEndian.PutUint32(b[entry:], 0x14000000|0x10)
	binary.LittleEndian.PutUint32(b[entry+magicOffset:], magic)
	return b
}
