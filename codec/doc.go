/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

// Package codec reads and writes Go values as JSON and as RON (Rusty Object
// Notation) through one shared data model:
// * Writers and Readers that stream scalars, lists, structs, maps and options
// * An Encoder and Decoder that map Go values onto them by reflection
// * Hooks for types that encode themselves, and for foreign types that
//   cannot be tagged, via a registered surrogate
//
// Struct fields are controlled with `codec:"..."` tags:
//
//	type Square struct {
//		Width  float32 `codec:"width"`
//		Height float32 `codec:"height"`
//		Cache  int     `codec:"-"` // never written, zero after decoding
//	}
//
// More information on RON can be found at
// * https://github.com/ron-rs/ron
package codec
