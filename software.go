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

// softwareSubWord applies the S-box to each of the four bytes of a
// big-endian-packed word.
func softwareSubWord(x uint32) uint32 {
	return uint32(sboxTable[x>>24&0xff])<<24 |
		uint32(sboxTable[x>>16&0xff])<<16 |
		uint32(sboxTable[x>>8&0xff])<<8 |
		uint32(sboxTable[x&0xff])
}

// softwareRotWord performs the cyclic left rotation by one byte: the
// big-endian word (a,b,c,d) becomes (b,c,d,a).
func softwareRotWord(x uint32) uint32 {
	return bits.RotateLeft32(x, 8)
}

// expandSoftwareSchedule fills w[0:nb*(nr+1)] with the software-backend
// round-key schedule for key (len(key) == 4*nk), per spec §4.3. nb is
// always 4 for AES; it is threaded through explicitly rather than
// hard-coded so the generic fallback (expandHardwareGeneric) can reuse
// this exact routine.
func expandSoftwareSchedule(key []byte, nk, nb, nr int, w []uint32) {
	for i := 0; i < nk; i++ {
		w[i] = uint32(key[4*i])<<24 | uint32(key[4*i+1])<<16 | uint32(key[4*i+2])<<8 | uint32(key[4*i+3])
	}
	total := nb * (nr + 1)
	for i := nk; i < total; i++ {
		temp := w[i-1]
		switch {
		case i%nk == 0:
			temp = softwareSubWord(softwareRotWord(temp)) ^ uint32(rconTable[i/nk])<<24
		case nk > 6 && i%nk == 4:
			temp = softwareSubWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}
}

func softwareAddRoundKey(state *[16]byte, w []uint32) {
	for i, word := range w {
		state[4*i+0] ^= byte(word >> 24)
		state[4*i+1] ^= byte(word >> 16)
		state[4*i+2] ^= byte(word >> 8)
		state[4*i+3] ^= byte(word)
	}
}

func softwareSubBytes(state *[16]byte) {
	for i, b := range state {
		state[i] = sboxTable[b]
	}
}

func softwareInvSubBytes(state *[16]byte) {
	for i, b := range state {
		state[i] = invSboxTable[b]
	}
}

func softwareShiftRows(state *[16]byte) {
	s := *state
	*state = [16]byte{
		s[0], s[5], s[10], s[15],
		s[4], s[9], s[14], s[3],
		s[8], s[13], s[2], s[7],
		s[12], s[1], s[6], s[11],
	}
}

func softwareInvShiftRows(state *[16]byte) {
	s := *state
	*state = [16]byte{
		s[0], s[13], s[10], s[7],
		s[4], s[1], s[14], s[11],
		s[8], s[5], s[2], s[15],
		s[12], s[9], s[6], s[3],
	}
}

// xtime multiplies a GF(2⁸) element by 2, reducing modulo 0x11B.
func xtime(n byte) byte {
	hi := n & 0x80
	n <<= 1
	if hi != 0 {
		n ^= 0x1b
	}
	return n
}

// gfMul multiplies a and b as GF(2⁸) elements modulo the AES reduction
// polynomial 0x11B.
func gfMul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

func softwareMixColumns(state *[16]byte) {
	for c := 0; c < 4; c++ {
		i := 4 * c
		s0, s1, s2, s3 := state[i], state[i+1], state[i+2], state[i+3]
		state[i+0] = gfMul(2, s0) ^ gfMul(3, s1) ^ s2 ^ s3
		state[i+1] = s0 ^ gfMul(2, s1) ^ gfMul(3, s2) ^ s3
		state[i+2] = s0 ^ s1 ^ gfMul(2, s2) ^ gfMul(3, s3)
		state[i+3] = gfMul(3, s0) ^ s1 ^ s2 ^ gfMul(2, s3)
	}
}

func softwareInvMixColumns(state *[16]byte) {
	for c := 0; c < 4; c++ {
		i := 4 * c
		s0, s1, s2, s3 := state[i], state[i+1], state[i+2], state[i+3]
		state[i+0] = gfMul(0x0e, s0) ^ gfMul(0x0b, s1) ^ gfMul(0x0d, s2) ^ gfMul(0x09, s3)
		state[i+1] = gfMul(0x09, s0) ^ gfMul(0x0e, s1) ^ gfMul(0x0b, s2) ^ gfMul(0x0d, s3)
		state[i+2] = gfMul(0x0d, s0) ^ gfMul(0x09, s1) ^ gfMul(0x0e, s2) ^ gfMul(0x0b, s3)
		state[i+3] = gfMul(0x0b, s0) ^ gfMul(0x0d, s1) ^ gfMul(0x09, s2) ^ gfMul(0x0e, s3)
	}
}

// encryptBlockSoftware runs the forward cipher over nr rounds using round
// words w[0:4*(nr+1)]. in-place operation (dst == src) is supported: the
// entire input is loaded into state before anything is written to dst.
func encryptBlockSoftware(dst, src *[16]byte, w []uint32, nr int) {
	state := *src
	softwareAddRoundKey(&state, w[0:4])
	for round := 1; round < nr; round++ {
		softwareSubBytes(&state)
		softwareShiftRows(&state)
		softwareMixColumns(&state)
		softwareAddRoundKey(&state, w[4*round:4*round+4])
	}
	softwareSubBytes(&state)
	softwareShiftRows(&state)
	softwareAddRoundKey(&state, w[4*nr:4*nr+4])
	*dst = state
}

// decryptBlockSoftware runs the inverse cipher over nr rounds using round
// words w[0:4*(nr+1)].
func decryptBlockSoftware(dst, src *[16]byte, w []uint32, nr int) {
	state := *src
	softwareAddRoundKey(&state, w[4*nr:4*nr+4])
	for round := nr - 1; round > 0; round-- {
		softwareInvShiftRows(&state)
		softwareInvSubBytes(&state)
		softwareAddRoundKey(&state, w[4*round:4*round+4])
		softwareInvMixColumns(&state)
	}
	softwareInvShiftRows(&state)
	softwareInvSubBytes(&state)
	softwareAddRoundKey(&state, w[0:4])
	*dst = state
}
