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

// Decision is the outcome of the boot intent resolution.
type Decision int

const (
	// ContinueFirmware lets the firmware carry on with its own boot flow.
	ContinueFirmware Decision = iota
	// BootKernel hands the CPU to the pre-loaded kernel.
	BootKernel
)

func (d Decision) String() string {
	switch d {
	case ContinueFirmware:
		return "ContinueFirmware"
	case BootKernel:
		return "BootKernel"
	default:
		return "Decision(unknown)"
	}
}

// BootRequester is the platform's answer to "was a direct kernel boot asked for?".
type BootRequester interface {
	LinuxBootRequested() bool
}

// BootRequestFunc adapts a plain function to a BootRequester.
type BootRequestFunc func() bool

// LinuxBootRequested calls f.
func (f BootRequestFunc) LinuxBootRequested() bool { return f() }

// ResolveIntent combines the command-line override with the platform request.
// The kernel is booted only when nothing overrides it and the platform asks for it.
func ResolveIntent(override, bootRequested bool) Decision {
	if override || !bootRequested {
		return ContinueFirmware
	}
	return BootKernel
}
