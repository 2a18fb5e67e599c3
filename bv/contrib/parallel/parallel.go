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

package parallel

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ajroetker/go-bitregion/bv"
)

// span is a bit range [from, to) of a region.
type span struct {
	from, to int
}

// split divides the n bits starting at start into at most parts spans whose
// inner boundaries fall on element boundaries.
func split[T bv.Element](start bv.Address[T], n, parts int) []span {
	if n <= 0 {
		return nil
	}
	w := bv.Width[T]()
	lead := int(start.Bit.Value())
	elems := (lead + n + w - 1) / w
	per := (elems + max(parts, 1) - 1) / max(parts, 1)

	out := make([]span, 0, (elems+per-1)/per)
	for e := 0; e < elems; e += per {
		out = append(out, span{
			from: max(0, e*w-lead),
			to:   min(n, (e+per)*w-lead),
		})
	}
	return out
}

// cut returns the mutable sub-regions of r for spans.
func cut[T bv.Element, O bv.BitOrder](r bv.MutRegion[T, O], spans []span) ([]bv.MutRegion[T, O], error) {
	out := make([]bv.MutRegion[T, O], len(spans))
	for i, s := range spans {
		c, err := r.Cut(s.from, s.to)
		if err != nil {
			return nil, errors.Wrapf(err, "parallel: cut [%d, %d)", s.from, s.to)
		}
		out[i] = c
	}
	return out, nil
}

// each cuts r along element boundaries, one piece per worker, and runs fn
// on every piece. No piece is started unless every cut succeeds.
func each[T bv.Element, O bv.BitOrder](p *Pool, r bv.MutRegion[T, O], fn func(c bv.MutRegion[T, O])) error {
	pieces, err := cut(r, split(r.Start(), r.Len(), p.NumWorkers()))
	if err != nil {
		return err
	}
	p.ParallelForEach(len(pieces), func(i int) { fn(pieces[i]) })
	return nil
}

// Fill sets every bit of r to bit.
func Fill[T bv.Element, O bv.BitOrder](p *Pool, r bv.MutRegion[T, O], bit bool) error {
	return each(p, r, func(c bv.MutRegion[T, O]) { c.Fill(bit) })
}

// Not inverts every bit of r.
func Not[T bv.Element, O bv.BitOrder](p *Pool, r bv.MutRegion[T, O]) error {
	return each(p, r, func(c bv.MutRegion[T, O]) { c.Not() })
}

// CountOnes counts the set bits of r.
func CountOnes[T bv.Element, O bv.BitOrder](p *Pool, r bv.Region[T, O]) int {
	spans := split(r.Start(), r.Len(), p.NumWorkers())
	counts := make([]int, len(spans))
	p.ParallelForEach(len(spans), func(i int) {
		sub, err := r.Sub(spans[i].from, spans[i].to)
		if err != nil {
			// Spans always lie inside r.
			panic(err)
		}
		counts[i] = sub.CountOnes()
	})
	return lo.Sum(counts)
}

// CopyFrom copies min(dst.Len(), src.Len()) bits from src into dst and
// returns that count. src must not share elements with dst.
func CopyFrom[T bv.Element, O bv.BitOrder](p *Pool, dst bv.MutRegion[T, O], src bv.Region[T, O]) (int, error) {
	n := min(dst.Len(), src.Len())
	dst, err := dst.Sub(0, n)
	if err != nil {
		return 0, err
	}
	spans := split(dst.Start(), n, p.NumWorkers())
	pieces, err := cut(dst, spans)
	if err != nil {
		return 0, err
	}
	p.ParallelForEach(len(pieces), func(i int) {
		part, err := src.Sub(spans[i].from, spans[i].to)
		if err != nil {
			panic(err)
		}
		pieces[i].CopyFrom(part)
	})
	return n, nil
}

// ForEachChunk divides r into consecutive chunks of chunkBits bits and calls
// fn on each from the pool. Chunk boundaries inside an element make it
// shared, so unless chunkBits and r are element aligned the store must be
// atomic; otherwise the error is returned before fn runs.
func ForEachChunk[T bv.Element, O bv.BitOrder](p *Pool, r bv.MutRegion[T, O], chunkBits int, fn func(i int, c bv.MutRegion[T, O])) error {
	chunks, err := r.Chunks(chunkBits)
	if err != nil {
		log.WithError(err).WithField("chunkBits", chunkBits).Debug("Could not chunk region")
		return errors.Wrap(err, "parallel: chunk region")
	}
	p.ParallelForEach(len(chunks), func(i int) { fn(i, chunks[i]) })
	return nil
}
