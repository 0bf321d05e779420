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

// hardwareCore holds both the forward and decryption round-key schedules
// for the hardware backend, per spec §3 "Round-key schedule (hardware
// backend)". w and dw are sized for the largest supported key (Nr=14,
// 15 round keys); each key size only ever uses w[:nr+1]/dw[:nr+1]. This
// is the same bounded-array-plus-length idiom the teacher uses for its
// own fixed-size ExpandedKey128 ([11]Key128), generalized across the
// three key sizes instead of being specialized to one.
type hardwareCore struct {
	nr int
	w  [15][16]byte
	dw [15][16]byte
}

// invertKeySchedule derives the decryption schedule dw[0:nr+1] from the
// forward schedule w[0:nr+1], per spec §4.5: the AESDEC/AESDECLAST
// instructions consume round keys already transformed by InvMixColumns,
// so that transform is applied to every inner round key once, eagerly,
// at key-setup time rather than lazily on first Decrypt (spec §9, "Two
// backends behind one contract").
//
// AESIMC(x) is defined (spec §4.4) as InvMixColumns(x) applied to the
// same 16-byte layout the round function XORs into state, so this reuses
// softwareInvMixColumns rather than requiring a dedicated hardware
// instruction to compute the schedule reversal.
func invertKeySchedule(w, dw [][16]byte, nr int) {
	dw[0] = w[nr]
	dw[nr] = w[0]
	for i := 1; i < nr; i++ {
		block := w[i]
		softwareInvMixColumns(&block)
		dw[nr-i] = block
	}
}

// packLaneBytes copies 16 key bytes directly into a 128-bit lane layout:
// spec §4.4's "direct unaligned byte copy, not ... big-endian word
// packing". It exists as a named step because the two backends'
// round-key byte orders are intentionally different (spec §9,
// "Endianness of the schedule") and must never be unified.
func packLaneBytes(dst *[16]byte, src []byte) {
	copy(dst[:], src)
}

// expandHardwareGeneric implements spec §4.5's "generic fallback": for
// any (nk, nr) outside the three specialized cases, compute the schedule
// by the software rule of §4.3 and emit it into the 128-bit lane layout
// used by the hardware round function, rather than the big-endian word
// packing the software backend itself uses.
//
// None of AES128/AES192/AES256 reach this path (their Nk is always
// 4, 6, or 8); it is kept, exactly as original_source/aes_x86.hpp keeps
// key_expansion_gen, as the documented fallback a fourth key geometry
// would need.
func expandHardwareGeneric(key []byte, nk, nr int, w [][16]byte) {
	total := 4 * (nr + 1)
	words := make([]uint32, total)
	expandSoftwareSchedule(key, nk, 4, nr, words)
	for i := 0; i <= nr; i++ {
		for j := 0; j < 4; j++ {
			word := words[4*i+j]
			w[i][4*j+0] = byte(word >> 24)
			w[i][4*j+1] = byte(word >> 16)
			w[i][4*j+2] = byte(word >> 8)
			w[i][4*j+3] = byte(word)
		}
	}
}
