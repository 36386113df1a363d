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

package handoff

import "sync/atomic"

// Latch lets exactly one caller through for the lifetime of the instance.
//
// There is no way to reset a Latch; a new boot attempt needs a new one.
type Latch struct {
	taken atomic.Bool
}

// TryAcquire returns true to the first caller and false to everyone after.
func (l *Latch) TryAcquire() bool {
	return l.taken.CompareAndSwap(false, true)
}

// Acquired reports whether TryAcquire has already succeeded.
func (l *Latch) Acquired() bool {
	return l.taken.Load()
}
