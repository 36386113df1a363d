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

// Package led sequences status codes for boards with a blue and a white LED.
package led

import "time"

// State is one step of a sequence: the LEDs to light and for how long.
type State struct {
	Blue, White bool
	Hold        time.Duration
}

// Pattern sets the timing of a code sequence.
type Pattern struct {
	// Mark is how long each half of the start-of-round marker lasts.
	Mark time.Duration
	// Pulse is the on and the off time of each counted blue pulse.
	Pulse time.Duration
	// Gap is the dark time after a round.
	Gap time.Duration
}

// Fault is the pattern used when a board halts.
var Fault = Pattern{
	Mark:  300 * time.Millisecond,
	Pulse: 200 * time.Millisecond,
	Gap:   600 * time.Millisecond,
}

// Code returns one round showing code: both LEDs lit, white alone, code blue
// pulses over a steady white, then both dark. Negative codes show as zero.
func (p Pattern) Code(code int) []State {
	s := []State{
		{Blue: true, White: true, Hold: p.Mark},
		{White: true, Hold: p.Mark},
	}
	for i := 0; i < code; i++ {
		s = append(s,
			State{Blue: true, White: true, Hold: p.Pulse},
			State{White: true, Hold: p.Pulse},
		)
	}
	return append(s, State{Hold: p.Gap})
}
