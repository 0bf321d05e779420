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

// Block is a single AES block: 16 bytes, independent of key size.
type Block = [16]byte

// Cipher encrypts and decrypts single AES blocks. Implementations are
// safe for concurrent Encrypt/Decrypt calls from multiple goroutines
// once constructed; nothing about Reset on the same value is safe to
// race with either.
type Cipher interface {
	Encrypt(dst, src *Block)
	Decrypt(dst, src *Block)
}

// softwareSchedule128/192/256 hold the software backend's expanded
// round-key words: Nb*(Nr+1) big-endian-packed uint32s (spec §4.3).
type softwareSchedule128 [44]uint32
type softwareSchedule192 [52]uint32
type softwareSchedule256 [60]uint32

// AES128 implements Cipher for a 128-bit key, backed by either the
// software round function or the hardware one, chosen once at
// construction and never switched at runtime.
type AES128 struct {
	sw *softwareSchedule128
	hw *hardwareCore
}

// AES192 implements Cipher for a 192-bit key.
type AES192 struct {
	sw *softwareSchedule192
	hw *hardwareCore
}

// AES256 implements Cipher for a 256-bit key.
type AES256 struct {
	sw *softwareSchedule256
	hw *hardwareCore
}

// Available reports whether NewHardware128/192/256 can construct a
// hardware-backed cipher on the current CPU. It never changes within a
// process's lifetime.
func Available() bool {
	return hardwareAvailable()
}

// NewSoftware128 constructs an AES-128 cipher using the portable
// software backend.
func NewSoftware128(key [16]byte) *AES128 {
	c := &AES128{sw: new(softwareSchedule128)}
	c.Reset(key)
	return c
}

// NewHardware128 constructs an AES-128 cipher using the CPU's AES
// instruction set. The second return value is false, and c is nil, if
// the current CPU lacks that instruction set; callers must check it
// rather than call Encrypt/Decrypt on a nil *AES128.
func NewHardware128(key [16]byte) (c *AES128, ok bool) {
	if !hardwareAvailable() {
		return nil, false
	}
	return &AES128{hw: newHardwareCore128(key)}, true
}

// Reset replaces c's key, re-deriving whichever schedule its backend
// uses. It must not be called concurrently with Encrypt/Decrypt.
func (c *AES128) Reset(key [16]byte) {
	switch {
	case c.sw != nil:
		expandSoftwareSchedule(key[:], 4, 4, 10, c.sw[:])
	case c.hw != nil:
		c.hw = newHardwareCore128(key)
	}
}

// Encrypt writes the single-block encryption of src into dst. dst and
// src may point at the same Block.
func (c *AES128) Encrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.encrypt(dst, src)
		return
	}
	encryptBlockSoftware(dst, src, c.sw[:], 10)
}

// Decrypt writes the single-block decryption of src into dst. dst and
// src may point at the same Block.
func (c *AES128) Decrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.decrypt(dst, src)
		return
	}
	decryptBlockSoftware(dst, src, c.sw[:], 10)
}

// EncryptBlock returns the encryption of src without mutating it.
func (c *AES128) EncryptBlock(src Block) Block {
	var dst Block
	c.Encrypt(&dst, &src)
	return dst
}

// DecryptBlock returns the decryption of src without mutating it.
func (c *AES128) DecryptBlock(src Block) Block {
	var dst Block
	c.Decrypt(&dst, &src)
	return dst
}

// NewSoftware192 constructs an AES-192 cipher using the portable
// software backend.
func NewSoftware192(key [24]byte) *AES192 {
	c := &AES192{sw: new(softwareSchedule192)}
	c.Reset(key)
	return c
}

// NewHardware192 constructs an AES-192 cipher using the CPU's AES
// instruction set, or reports false if unavailable.
func NewHardware192(key [24]byte) (c *AES192, ok bool) {
	if !hardwareAvailable() {
		return nil, false
	}
	return &AES192{hw: newHardwareCore192(key)}, true
}

func (c *AES192) Reset(key [24]byte) {
	switch {
	case c.sw != nil:
		expandSoftwareSchedule(key[:], 6, 4, 12, c.sw[:])
	case c.hw != nil:
		c.hw = newHardwareCore192(key)
	}
}

func (c *AES192) Encrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.encrypt(dst, src)
		return
	}
	encryptBlockSoftware(dst, src, c.sw[:], 12)
}

func (c *AES192) Decrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.decrypt(dst, src)
		return
	}
	decryptBlockSoftware(dst, src, c.sw[:], 12)
}

func (c *AES192) EncryptBlock(src Block) Block {
	var dst Block
	c.Encrypt(&dst, &src)
	return dst
}

func (c *AES192) DecryptBlock(src Block) Block {
	var dst Block
	c.Decrypt(&dst, &src)
	return dst
}

// NewSoftware256 constructs an AES-256 cipher using the portable
// software backend.
func NewSoftware256(key [32]byte) *AES256 {
	c := &AES256{sw: new(softwareSchedule256)}
	c.Reset(key)
	return c
}

// NewHardware256 constructs an AES-256 cipher using the CPU's AES
// instruction set, or reports false if unavailable.
func NewHardware256(key [32]byte) (c *AES256, ok bool) {
	if !hardwareAvailable() {
		return nil, false
	}
	return &AES256{hw: newHardwareCore256(key)}, true
}

func (c *AES256) Reset(key [32]byte) {
	switch {
	case c.sw != nil:
		expandSoftwareSchedule(key[:], 8, 4, 14, c.sw[:])
	case c.hw != nil:
		c.hw = newHardwareCore256(key)
	}
}

func (c *AES256) Encrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.encrypt(dst, src)
		return
	}
	encryptBlockSoftware(dst, src, c.sw[:], 14)
}

func (c *AES256) Decrypt(dst, src *Block) {
	if c.hw != nil {
		c.hw.decrypt(dst, src)
		return
	}
	decryptBlockSoftware(dst, src, c.sw[:], 14)
}

func (c *AES256) EncryptBlock(src Block) Block {
	var dst Block
	c.Encrypt(&dst, &src)
	return dst
}

func (c *AES256) DecryptBlock(src Block) Block {
	var dst Block
	c.Decrypt(&dst, &src)
	return dst
}
