// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bbq

// RaceEnabled is true when the race detector is active.
// Stress tests shrink their iteration counts under the detector's
// memory and scheduling overhead.
const RaceEnabled = true
