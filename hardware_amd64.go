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

//go:build amd64

package aes

import "golang.org/x/sys/cpu"

// hardwareAvailable reports whether the current CPU has the AES-NI
// instruction set this backend is built against. SSE2 is part of the
// amd64 baseline Go already requires, so spec §6's "AES and SSE2+ (or
// equivalent)" reduces to a single feature check here.
func hardwareAvailable() bool {
	return cpu.X86.HasAES
}

//go:noescape
func aesEncryptRounds(dst, src, w *byte, nr int)

//go:noescape
func aesDecryptRounds(dst, src, dw *byte, nr int)

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
	aesEncryptRounds(&dst[0], &src[0], &c.w[0][0], c.nr)
}

func (c *hardwareCore) decrypt(dst, src *[16]byte) {
	aesDecryptRounds(&dst[0], &src[0], &c.dw[0][0], c.nr)
}
