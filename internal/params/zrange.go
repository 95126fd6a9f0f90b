// Package params holds builders that append optional argument groups to a
// command.Arguments list.
package params

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/cosmez/redisargs-go/internal/args"
	"github.com/cosmez/redisargs-go/internal/command"
	"github.com/cosmez/redisargs-go/internal/protocol"
)

var _ command.Params = (*ZRangeParams)(nil)

// ZRangeParams renders the range part of ZRANGE / ZRANGESTORE:
//
//	min max [BYSCORE | BYLEX] [REV] [LIMIT offset count]
//
// A builder is mutable until AddParams is called; the arguments it appends
// are immutable, so later changes do not affect an already built list.
type ZRangeParams struct {
	by       protocol.Keyword // empty for index ranges
	min, max args.Rawable

	rev    bool
	limit  bool
	offset int
	count  int
}

// NewZRange builds an index range. It delegates to NewZRange64 so both
// produce the same bytes for the same numbers.
func NewZRange(min, max int) *ZRangeParams {
	return NewZRange64(int64(min), int64(max))
}

// NewZRange64 builds an index range from 64-bit bounds. Bounds are sent in
// exact base 10, never through a float.
func NewZRange64(min, max int64) *ZRangeParams {
	return &ZRangeParams{min: args.FromInt64(min), max: args.FromInt64(max)}
}

// NewZRangeByScore builds a score range. The BYSCORE keyword is always
// appended after the bounds.
func NewZRangeByScore(min, max float64) *ZRangeParams {
	return &ZRangeParams{
		by:  protocol.BYSCORE,
		min: args.FromFloat64(min),
		max: args.FromFloat64(max),
	}
}

// NewZRangeByLex builds a lexicographical range; bounds use the Redis
// syntax ("[a", "(b", "-", "+") and are sent unchanged.
func NewZRangeByLex(min, max string) *ZRangeParams {
	return &ZRangeParams{
		by:  protocol.BYLEX,
		min: args.FromString(min),
		max: args.FromString(max),
	}
}

// Rev reverses the ordering.
func (p *ZRangeParams) Rev() *ZRangeParams {
	p.rev = true
	return p
}

// Limit restricts the result to count elements starting at offset.
func (p *ZRangeParams) Limit(offset, count int) *ZRangeParams {
	p.limit = true
	p.offset = offset
	p.count = count
	return p
}

// AddParams appends the range arguments to a. A ZRangeParams that did not
// come from one of the constructors has no bounds and panics.
func (p *ZRangeParams) AddParams(a *command.Arguments) {
	if p.min == nil || p.max == nil {
		panic("params: ZRangeParams has no bounds, use NewZRange, NewZRangeByScore or NewZRangeByLex")
	}
	a.Add(p.min).Add(p.max)
	if p.by != "" {
		a.Add(p.by)
	}
	if p.rev {
		a.Add(protocol.REV)
	}
	if p.limit {
		a.Add(protocol.LIMIT).Add(args.FromInt(p.offset)).Add(args.FromInt(p.count))
	}
}

// Equal reports whether other is a *ZRangeParams (or ZRangeParams) with the
// same mode, bounds, flags and limit. Nil and foreign types are never equal.
func (p *ZRangeParams) Equal(other any) bool {
	var o *ZRangeParams
	switch v := other.(type) {
	case *ZRangeParams:
		o = v
	case ZRangeParams:
		o = &v
	default:
		return false
	}
	if p == nil || o == nil {
		return false
	}
	if p == o {
		return true
	}
	return p.by == o.by &&
		args.Equal(p.min, o.min) &&
		args.Equal(p.max, o.max) &&
		p.rev == o.rev &&
		p.limit == o.limit &&
		p.offset == o.offset &&
		p.count == o.count
}

// Hash returns a hash over the same fields Equal compares, so equal values
// hash the same.
func (p *ZRangeParams) Hash() uint64 {
	d := xxhash.New()
	var scratch [8]byte

	writeField := func(b []byte) {
		binary.LittleEndian.PutUint64(scratch[:], uint64(len(b)))
		d.Write(scratch[:])
		d.Write(b)
	}
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(scratch[:], uint64(n))
		d.Write(scratch[:])
	}
	writeBool := func(b bool) {
		if b {
			d.Write([]byte{1})
		} else {
			d.Write([]byte{0})
		}
	}

	writeField([]byte(p.by))
	writeField(rawOf(p.min))
	writeField(rawOf(p.max))
	writeBool(p.rev)
	writeBool(p.limit)
	writeInt(p.offset)
	writeInt(p.count)
	return d.Sum64()
}

// rawOf treats a missing bound as empty.
func rawOf(r args.Rawable) []byte {
	if r == nil {
		return nil
	}
	return r.Raw()
}
