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

// Package aes provides a single-block AES (FIPS 197) primitive for the
// three standard key sizes, with two interchangeable backends: a portable
// software implementation and one driven by the CPU's AES instruction
// set. Callers pick the backend at construction; both produce identical
// ciphertext for identical (key, plaintext) pairs.
//
// This package implements only the single-block forward and inverse
// cipher. Chaining modes, padding, authenticated encryption, and key
// derivation are out of scope; build them on top of Cipher the way
// crypto/cipher builds block-chaining modes on top of cipher.Block.
package aes
