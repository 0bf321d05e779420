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

//go:build !amd64

package aes

// hardwareAvailable is always false off amd64: this package has no
// AES-NI (or ARMv8 Crypto Extension) assembly for any other
// architecture, so Available() must steer callers to the software
// backend rather than claim acceleration it cannot deliver. The round
// function below exists only so hardwareCore stays exercisable by the
// schedule-construction tests on every architecture.
func hardwareAvailable() bool {
	return false
}

// genericRound and genericFinalRound implement spec §4.4's definitions
// of AESENC/AESENCLAST directly: one SubBytes/ShiftRows/MixColumns pass
// (or, for the final round, SubBytes/ShiftRows only) followed by XOR
// with the round key. They let the shared schedule-expansion code in
// hardware_keysched.go be checked without amd64 assembly.
func genericRound(state *[16]byte, rk [16]byte) {
	softwareSubBytes(state)
	softwareShiftRows(state)
	softwareMixColumns(state)
	for i := range state {
		state[i] ^= rk[i]
	}
}

func genericFinalRound(state *[16]byte, rk [16]byte) {
	softwareSubBytes(state)
	softwareShiftRows(state)
	for i := range state {
		state[i] ^= rk[i]
	}
}

func genericInvRound(state *[16]byte, rk [16]byte) {
	softwareInvShiftRows(state)
	softwareInvSubBytes(state)
	softwareInvMixColumns(state)
	for i := range state {
		state[i] ^= rk[i]
	}
}

func genericInvFinalRound(state *[16]byte, rk [16]byte) {
	softwareInvShiftRows(state)
	softwareInvSubBytes(state)
	for i := range state {
		state[i] ^= rk[i]
	}
}

func newHardwareCore128(key [16]byte) *hardwareCore {
	c := &hardwareCore{nr: 10}
	w := expandKey128Lanes(key)
	copy(c.w[:11], w[:])
	invertKeySchedule(c.w[:11], c.dw[:11], 10)
	return c
}

func newHardwareCore192(key [24]byte) *hardwareCore {
	c := &hardwareCore{nr: 12}
	w := expandKey192Lanes(key)
	copy(c.w[:13], w[:])
	invertKeySchedule(c.w[:13], c.dw[:13], 12)
	return c
}

func newHardwareCore256(key [32]byte) *hardwareCore {
	c := &hardwareCore{nr: 14}
	w := expandKey256Lanes(key)
	copy(c.w[:15], w[:])
	invertKeySchedule(c.w[:15], c.dw[:15], 14)
	return c
}

func (c *hardwareCore) encrypt(dst, src *[16]byte) {
	state := *src
	for i := range state {
		state[i] ^= c.w[0][i]
	}
	for round := 1; round < c.nr; round++ {
		genericRound(&state, c.w[round])
	}
	genericFinalRound(&state, c.w[c.nr])
	*dst = state
}

func (c *hardwareCore) decrypt(dst, src *[16]byte) {
	state := *src
	for i := range state {
		state[i] ^= c.dw[0][i]
	}
	for round := 1; round < c.nr; round++ {
		genericInvRound(&state, c.dw[round])
	}
	genericInvFinalRound(&state, c.dw[c.nr])
	*dst = state
}
