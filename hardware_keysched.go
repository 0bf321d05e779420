// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package aes

import "math/bits"

// This file computes the hardware backend's key schedules (spec §4.5) in
// portable Go rather than machine instructions. AESKEYGENASSIST and the
// PSHUFD/PSLLDQ/PALIGNR/PUNPCKLQDQ shuffle network around it are fully
// specified by Intel's documentation; key setup runs once per Reset, not
// per block, so there is no hot-path cost to paying for the shuffle
// network in Go instead of assembly with a compile-time-immediate
// dispatch table for the ten distinct Rcon values the three key sizes
// need. The round function (hardware_amd64.s) is the hot path and does
// use the real AESENC/AESENCLAST/AESDEC/AESDECLAST instructions.
//
// shiftLeftBytes/broadcastWord/alignRight8/unpackLow64 below compute
// the SSE2 instructions original_source/aes_x86.hpp invokes by intrinsic
// name (PSLLDQ, PSHUFD, PALIGNR, PUNPCKLQDQ); getWord/setWord/xor16 are
// the 32-bit lane accessors and the 128-bit XOR they are built from.
// keygenAssist below is AESKEYGENASSIST's documented semantics.

func getWord(l [16]byte, i int) uint32 {
	j := 4 * i
	return uint32(l[j]) | uint32(l[j+1])<<8 | uint32(l[j+2])<<16 | uint32(l[j+3])<<24
}

func setWord(l *[16]byte, i int, v uint32) {
	j := 4 * i
	l[j] = byte(v)
	l[j+1] = byte(v >> 8)
	l[j+2] = byte(v >> 16)
	l[j+3] = byte(v >> 24)
}

func xor16(a, b [16]byte) [16]byte {
	var r [16]byte
	for i := range r {
		r[i] = a[i] ^ b[i]
	}
	return r
}

// shiftLeftBytes is PSLLDQ: shift the 128-bit lane left by n bytes
// (toward more significant byte positions), zero-filling from the low
// end.
func shiftLeftBytes(l [16]byte, n int) [16]byte {
	var r [16]byte
	for i := 15; i >= n; i-- {
		r[i] = l[i-n]
	}
	return r
}

// broadcastWord is PSHUFD with an immediate that selects the same
// 32-bit lane for all four destination lanes.
func broadcastWord(l [16]byte, idx int) [16]byte {
	v := getWord(l, idx)
	var r [16]byte
	for i := 0; i < 4; i++ {
		setWord(&r, i, v)
	}
	return r
}

// alignRight8 is PALIGNR $8, lo, hi (Go operand order): concatenate
// hi:lo as a 256-bit value with hi in the upper 128 bits, then take
// bytes [8:24) of that concatenation.
func alignRight8(hi, lo [16]byte) [16]byte {
	var r [16]byte
	copy(r[0:8], lo[8:16])
	copy(r[8:16], hi[0:8])
	return r
}

// unpackLow64 is PUNPCKLQDQ: the low 64 bits of a, followed by the low
// 64 bits of b.
func unpackLow64(a, b [16]byte) [16]byte {
	var r [16]byte
	copy(r[0:8], a[0:8])
	copy(r[8:16], b[0:8])
	return r
}

func subWordLE(x uint32) uint32 {
	return uint32(sboxTable[byte(x)]) |
		uint32(sboxTable[byte(x>>8)])<<8 |
		uint32(sboxTable[byte(x>>16)])<<16 |
		uint32(sboxTable[byte(x>>24)])<<24
}

func rotWordLE(x uint32) uint32 {
	return bits.RotateLeft32(x, -8)
}

// keygenAssist computes AESKEYGENASSIST(x, rcon) per its documented
// semantics: SubWord/RotWord/Rcon applied to the high dword of each
// 64-bit half of x, independently.
func keygenAssist(x [16]byte, rcon byte) [16]byte {
	var out [16]byte
	s1 := subWordLE(getWord(x, 1))
	setWord(&out, 0, s1)
	setWord(&out, 1, rotWordLE(s1)^uint32(rcon))
	s3 := subWordLE(getWord(x, 3))
	setWord(&out, 2, s3)
	setWord(&out, 3, rotWordLE(s3)^uint32(rcon))
	return out
}

// expandKey128Lanes ports key_expansion_128/key_expansion_128_update
// (original_source/aes_x86.hpp) to produce the 11 forward round keys for
// a 128-bit key.
func expandKey128Lanes(key [16]byte) [11][16]byte {
	var w [11][16]byte
	packLaneBytes(&w[0], key[:])
	rcons := [10]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}
	for i, rc := range rcons {
		assist := keygenAssist(w[i], rc)
		x := w[i]
		x = xor16(x, shiftLeftBytes(x, 4))
		x = xor16(x, shiftLeftBytes(x, 8))
		x = xor16(x, broadcastWord(assist, 3))
		w[i+1] = x
	}
	return w
}

// expandKey192Lanes ports key_expansion_192/key_expansion_192_update.
// The schedule is built from a rolling two-lane state (s0, s1); spec
// §4.5 calls out that alternating iterations "fuse overlapping 128-bit
// lanes" into the output array, which is exactly the unpackLow64/
// alignRight8 "merge" steps below versus the plain "direct" steps.
func expandKey192Lanes(key [24]byte) [13][16]byte {
	var w [13][16]byte
	var s0, s1 [16]byte
	packLaneBytes(&s0, key[0:16])
	copy(s1[:8], key[16:24]) // high 64 bits of s1 start at zero
	w[0] = s0
	w[1] = s1 // low 64 bits are the raw key bytes; high 64 filled by the first merge below

	steps := [8]struct {
		rcon        byte
		outLo, outHi int
		merge       bool
	}{
		{0x01, 1, 2, true},
		{0x02, 3, 4, false},
		{0x04, 4, 5, true},
		{0x08, 6, 7, false},
		{0x10, 7, 8, true},
		{0x20, 9, 10, false},
		{0x40, 10, 11, true},
		{0x80, 12, -1, false},
	}
	for _, st := range steps {
		assist := keygenAssist(s1, st.rcon)
		s0 = xor16(s0, shiftLeftBytes(s0, 4))
		s0 = xor16(s0, shiftLeftBytes(s0, 8))
		s0 = xor16(s0, broadcastWord(assist, 1))
		s1 = xor16(s1, shiftLeftBytes(s1, 4))
		s1 = xor16(s1, broadcastWord(s0, 3))

		if st.merge {
			w[st.outLo] = unpackLow64(w[st.outLo], s0)
			if st.outHi >= 0 {
				w[st.outHi] = alignRight8(s1, s0)
			}
		} else {
			w[st.outLo] = s0
			if st.outHi >= 0 {
				w[st.outHi] = s1
			}
		}
	}
	return w
}

// expandKey256Lanes ports key_expansion_256/key_expansion_256_update.
func expandKey256Lanes(key [32]byte) [15][16]byte {
	var w [15][16]byte
	packLaneBytes(&w[0], key[0:16])
	packLaneBytes(&w[1], key[16:32])

	rcons := [7]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40}
	for k := 2; k <= 14; k++ {
		rc := rcons[(k-2)/2]
		assist := keygenAssist(w[k-1], rc)
		var sw [16]byte
		if (k-2)%2 == 0 {
			sw = broadcastWord(assist, 3)
		} else {
			sw = broadcastWord(assist, 2)
		}
		x := w[k-2]
		x = xor16(x, shiftLeftBytes(x, 4))
		x = xor16(x, shiftLeftBytes(x, 8))
		x = xor16(x, sw)
		w[k] = x
	}
	return w
}
