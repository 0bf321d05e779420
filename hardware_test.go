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

import (
	"bytes"
	"testing"
)

// invariant 8: dw[0]=w[Nr], dw[Nr]=w[0], dw[i]=InvMixColumns(w[Nr-i])
// for 1<=i<=Nr-1. Exercised directly against the schedule-construction
// path, independent of whether AESENC/AESDEC can actually run on this
// CPU (newHardwareCore* never touches the round function).
func TestInvertKeyScheduleRelation(t *testing.T) {
	check := func(t *testing.T, w, dw [][16]byte, nr int) {
		if dw[0] != w[nr] {
			t.Fatalf("dw[0] != w[nr]")
		}
		if dw[nr] != w[0] {
			t.Fatalf("dw[nr] != w[0]")
		}
		for i := 1; i < nr; i++ {
			want := w[nr-i]
			softwareInvMixColumns(&want)
			if dw[i] != want {
				t.Fatalf("dw[%d] != InvMixColumns(w[%d])", i, nr-i)
			}
		}
	}

	var key16 [16]byte
	for i := range key16 {
		key16[i] = byte(i)
	}
	c128 := newHardwareCore128(key16)
	check(t, c128.w[:11], c128.dw[:11], 10)

	var key24 [24]byte
	for i := range key24 {
		key24[i] = byte(i)
	}
	c192 := newHardwareCore192(key24)
	check(t, c192.w[:13], c192.dw[:13], 12)

	var key32 [32]byte
	for i := range key32 {
		key32[i] = byte(i)
	}
	c256 := newHardwareCore256(key32)
	check(t, c256.w[:15], c256.dw[:15], 14)
}

// invariant 7, hardware backend: the raw key occupies the first Nk*4
// bytes of the schedule, laid out as the direct byte copy spec §4.4
// requires (not the software backend's big-endian word packing).
func TestHardwareScheduleFirstSegment(t *testing.T) {
	var key16 [16]byte
	for i := range key16 {
		key16[i] = byte(i + 1)
	}
	c128 := newHardwareCore128(key16)
	if c128.w[0] != key16 {
		t.Fatalf("w[0] = %x, want raw key %x", c128.w[0], key16)
	}

	var key24 [24]byte
	for i := range key24 {
		key24[i] = byte(i + 1)
	}
	c192 := newHardwareCore192(key24)
	if c192.w[0] != [16]byte(key24[0:16]) {
		t.Fatalf("w[0] = %x, want %x", c192.w[0], key24[0:16])
	}
	if !bytes.Equal(c192.w[1][0:8], key24[16:24]) {
		t.Fatalf("low 64 bits of w[1] = %x, want %x", c192.w[1][0:8], key24[16:24])
	}

	var key32 [32]byte
	for i := range key32 {
		key32[i] = byte(i + 1)
	}
	c256 := newHardwareCore256(key32)
	if c256.w[0] != [16]byte(key32[0:16]) {
		t.Fatalf("w[0] = %x, want %x", c256.w[0], key32[0:16])
	}
	if c256.w[1] != [16]byte(key32[16:32]) {
		t.Fatalf("w[1] = %x, want %x", c256.w[1], key32[16:32])
	}
}

// the generic fallback (spec §4.5's last bullet) is reachable by no
// public constructor; exercise it directly and check that each lane
// holds the software schedule's four words for that round, written out
// byte by byte in state order (most significant byte of each word first).
func TestHardwareGenericFallbackAgreesWithSoftwareSchedule(t *testing.T) {
	var key [16]byte
	for i := range key {
		key[i] = byte(0x11 * (i + 1))
	}

	var words [44]uint32
	expandSoftwareSchedule(key[:], 4, 4, 10, words[:])

	lanes := make([][16]byte, 11)
	expandHardwareGeneric(key[:], 4, 10, lanes)

	for i := 0; i < 11; i++ {
		var want [16]byte
		for j := 0; j < 4; j++ {
			w := words[4*i+j]
			want[4*j+0] = byte(w >> 24)
			want[4*j+1] = byte(w >> 16)
			want[4*j+2] = byte(w >> 8)
			want[4*j+3] = byte(w)
		}
		if lanes[i] != want {
			t.Fatalf("generic fallback lane %d = %x, want %x", i, lanes[i], want)
		}
	}
}

func TestPackLaneBytes(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	var dst [16]byte
	packLaneBytes(&dst, src)
	if !bytes.Equal(dst[:], src) {
		t.Fatalf("packLaneBytes: dst = %x, want %x", dst, src)
	}
}
