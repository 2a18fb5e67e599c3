// Copyright 2025 go-bitregion Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parallel runs bulk region operations on several goroutines.
//
// A region is divided into sub-regions that start and end on element
// boundaries wherever possible, so no two goroutines ever write the same
// element and the helpers work on plain stores. ForEachChunk instead hands
// out fixed-size chunks of bits; chunks that split an element share it and
// need an atomic store.
//
//	pool := parallel.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	r := bv.Bits[uint64, bv.Lsb0](words)
//	if err := parallel.Fill(pool, r, true); err != nil {
//	    return err
//	}
//	ones := parallel.CountOnes(pool, r.AsRegion())
package parallel
