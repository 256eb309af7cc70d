// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import "code.hybscloud.com/atomix"

// Cumulative counters live in atomics so Stats readers never contend
// on the instance lock; gauges are sampled under the lock.

type channelCounters struct {
	bytesSubmitted atomix.Uint64
	bytesConsumed  atomix.Uint64
	interrupts     atomix.Uint64
}

type assemblerCounters struct {
	hydrogenSubmitted atomix.Uint64
	molecules         atomix.Uint64
	interrupts        atomix.Uint64
}

// ChannelStats is a point-in-time snapshot of a Channel.
type ChannelStats struct {
	// BytesSubmitted is the cumulative count of bytes accepted.
	BytesSubmitted uint64
	// BytesConsumed is the cumulative count of bytes released.
	BytesConsumed uint64
	// Interrupts is the cumulative count of cancelled blocking waits.
	Interrupts uint64
	// Buffered is the current number of buffered bytes.
	Buffered int
	// BlockedSubmitters is the current submit wait-line depth.
	BlockedSubmitters int
	// BlockedConsumers is the current consume wait-line depth.
	BlockedConsumers int
}

// AssemblerStats is a point-in-time snapshot of an Assembler.
type AssemblerStats struct {
	// HydrogenSubmitted is the cumulative count of hydrogen bytes accepted.
	HydrogenSubmitted uint64
	// Molecules is the cumulative count of molecules formed.
	Molecules uint64
	// Interrupts is the cumulative count of cancelled blocking waits.
	Interrupts uint64
	// Hydrogen is the current number of buffered un-bonded hydrogen bytes.
	Hydrogen int
	// PendingRequests is the current number of registered oxygen requests.
	PendingRequests int
	// BlockedSubmitters is the current hydrogen wait-line depth.
	BlockedSubmitters int
}
