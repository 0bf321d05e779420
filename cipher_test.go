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
	"math/rand"
	"testing"
)

// invariants 1 and 2: encrypt/decrypt round-trip in both directions,
// over every key size, both backends.
func TestRoundTrip(t *testing.T) {
	var key16 [16]byte
	var key24 [24]byte
	var key32 [32]byte
	for i := range key32 {
		if i < 16 {
			key16[i] = byte(i * 13)
		}
		if i < 24 {
			key24[i] = byte(i * 13)
		}
		key32[i] = byte(i * 13)
	}

	var src Block
	for i := range src {
		src[i] = byte(i * 17)
	}

	ciphers := []Cipher{
		NewSoftware128(key16),
		NewSoftware192(key24),
		NewSoftware256(key32),
	}
	if hw, ok := NewHardware128(key16); ok {
		ciphers = append(ciphers, hw)
	}
	if hw, ok := NewHardware192(key24); ok {
		ciphers = append(ciphers, hw)
	}
	if hw, ok := NewHardware256(key32); ok {
		ciphers = append(ciphers, hw)
	}

	for _, c := range ciphers {
		var ct, pt Block
		c.Encrypt(&ct, &src)
		c.Decrypt(&pt, &ct)
		if pt != src {
			t.Fatalf("decrypt(encrypt(B)) != B for %T", c)
		}

		var ct2, pt2 Block
		c.Decrypt(&pt2, &src)
		c.Encrypt(&ct2, &pt2)
		if ct2 != src {
			t.Fatalf("encrypt(decrypt(B)) != B for %T", c)
		}
	}
}

// invariant 3: software and hardware backends agree, when hardware is
// available on this CPU.
func TestBackendAgreement(t *testing.T) {
	if !Available() {
		t.Skip("no AES-NI on this CPU")
	}

	var key [16]byte
	for i := range key {
		key[i] = byte(i * 19)
	}
	var src Block
	for i := range src {
		src[i] = byte(i * 23)
	}

	sw := NewSoftware128(key)
	hw, ok := NewHardware128(key)
	if !ok {
		t.Fatal("Available() true but NewHardware128 failed")
	}

	var swCt, hwCt Block
	sw.Encrypt(&swCt, &src)
	hw.Encrypt(&hwCt, &src)
	if swCt != hwCt {
		t.Fatalf("software ciphertext %x != hardware ciphertext %x", swCt, hwCt)
	}

	var swPt, hwPt Block
	sw.Decrypt(&swPt, &swCt)
	hw.Decrypt(&hwPt, &hwCt)
	if swPt != hwPt || swPt != src {
		t.Fatalf("decrypt mismatch: sw=%x hw=%x want=%x", swPt, hwPt, src)
	}
}

// Vector A through the public API, using EncryptBlock/DecryptBlock's
// value-returning form.
func TestFIPSVectorsPublicAPI(t *testing.T) {
	key := [16]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
	pt := Block{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	want := Block{0x69, 0xc4, 0xe0, 0xd8, 0x6a, 0x7b, 0x04, 0x30, 0xd8, 0xcd, 0xb7, 0x80, 0x70, 0xb4, 0xc5, 0x5a}

	c := NewSoftware128(key)
	got := c.EncryptBlock(pt)
	if got != want {
		t.Fatalf("EncryptBlock = %x, want %x", got, want)
	}
	if back := c.DecryptBlock(got); back != pt {
		t.Fatalf("DecryptBlock(EncryptBlock(pt)) = %x, want %x", back, pt)
	}
}

// Vector F: cross-backend equivalence over a fixed, seeded sample of
// 1,024 (key, block) pairs. The seed is a literal constant so the
// sample is identical on every run.
func TestBackendAgreementRandomSample(t *testing.T) {
	if !Available() {
		t.Skip("no AES-NI on this CPU")
	}

	rng := rand.New(rand.NewSource(1))
	randBytes := func(n int) []byte {
		b := make([]byte, n)
		rng.Read(b)
		return b
	}

	for i := 0; i < 1024; i++ {
		var src Block
		copy(src[:], randBytes(16))

		switch i % 3 {
		case 0:
			var key [16]byte
			copy(key[:], randBytes(16))
			sw, hw := NewSoftware128(key), must128(t, key)
			checkAgree(t, sw, hw, src)
		case 1:
			var key [24]byte
			copy(key[:], randBytes(24))
			sw := NewSoftware192(key)
			hw, ok := NewHardware192(key)
			if !ok {
				t.Fatal("NewHardware192 failed though Available() is true")
			}
			checkAgree(t, sw, hw, src)
		case 2:
			var key [32]byte
			copy(key[:], randBytes(32))
			sw := NewSoftware256(key)
			hw, ok := NewHardware256(key)
			if !ok {
				t.Fatal("NewHardware256 failed though Available() is true")
			}
			checkAgree(t, sw, hw, src)
		}
	}
}

func must128(t *testing.T, key [16]byte) *AES128 {
	t.Helper()
	hw, ok := NewHardware128(key)
	if !ok {
		t.Fatal("NewHardware128 failed though Available() is true")
	}
	return hw
}

func checkAgree(t *testing.T, sw, hw Cipher, src Block) {
	t.Helper()
	var swCt, hwCt Block
	sw.Encrypt(&swCt, &src)
	hw.Encrypt(&hwCt, &src)
	if swCt != hwCt {
		t.Fatalf("encrypt mismatch: sw=%x hw=%x", swCt, hwCt)
	}

	var swPt, hwPt Block
	sw.Decrypt(&swPt, &swCt)
	hw.Decrypt(&hwPt, &hwCt)
	if swPt != hwPt || swPt != src {
		t.Fatalf("decrypt mismatch: sw=%x hw=%x want=%x", swPt, hwPt, src)
	}
}

// Reset re-keys a live instance without requiring reconstruction.
func TestReset(t *testing.T) {
	var key1, key2 [16]byte
	for i := range key1 {
		key1[i] = byte(i)
		key2[i] = byte(255 - i)
	}
	c := NewSoftware128(key1)

	var src Block
	for i := range src {
		src[i] = byte(i * 5)
	}

	var ct1 Block
	c.Encrypt(&ct1, &src)

	c.Reset(key2)
	var ct2 Block
	c.Encrypt(&ct2, &src)

	if ct1 == ct2 {
		t.Fatal("Reset did not change the schedule: same ciphertext under two different keys")
	}

	ref := NewSoftware128(key2)
	var refCt Block
	ref.Encrypt(&refCt, &src)
	if ct2 != refCt {
		t.Fatalf("after Reset, ciphertext %x does not match a fresh cipher %x", ct2, refCt)
	}
}
