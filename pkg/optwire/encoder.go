package optwire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"reflect"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/vecoption"
	"github.com/rawbytedev/vecoption/internal/common"
)

// Encoder writes frames for VecOption[T]. Buffers are reused between calls,
// so an Encoder is not safe for concurrent use.
type Encoder[T any] struct {
	Opts    Options
	kind    reflect.Kind
	zenc    *zstd.Encoder
	bitmap  []byte
	body    []byte
	payload []byte
	out     []byte
}

// NewEncoder returns an Encoder for T. It fails with ErrUnsupported if T is
// neither a fixed-size primitive nor a string.
func NewEncoder[T any](opts Options) (*Encoder[T], error) {
	k, err := kindOf[T]()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", err, reflect.TypeFor[T]())
	}
	e := &Encoder[T]{Opts: opts, kind: k}
	if opts.Compression {
		level := opts.Level
		if level == 0 {
			level = zstd.SpeedBetterCompression
		}
		e.zenc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompression, err)
		}
	}
	return e, nil
}

// Encode serializes v. The returned slice is owned by the Encoder and is
// overwritten by the next call.
func (e *Encoder[T]) Encode(v *vecoption.VecOption[T]) ([]byte, error) {
	n := v.Len()
	e.bitmap = grow(e.bitmap, (n+7)>>3)
	e.body = e.body[:0]
	for i, o := range v.All() {
		x, ok := o.Get()
		if !ok {
			continue
		}
		e.bitmap[i>>3] |= 1 << (i & 7)
		e.body = e.appendValue(e.body, x)
	}

	e.payload = common.WriteVarUint(e.payload[:0], uint64(n))
	e.payload = append(e.payload, e.bitmap...)
	e.payload = append(e.payload, e.body...)

	var flags byte
	payload := e.payload
	if e.zenc != nil {
		flags |= FlagCompressed
		payload = e.zenc.EncodeAll(e.payload, nil)
	}
	if e.Opts.Checksum {
		flags |= FlagChecksum
	}

	out := append(e.out[:0], Magic0, Magic1, Version, byte(e.kind), flags, 0, 0, 0, 0)
	out = append(out, payload...)
	total := len(out)
	if flags&FlagChecksum != 0 {
		total += 4
	}
	binary.LittleEndian.PutUint32(out[5:], uint32(total))
	if flags&FlagChecksum != 0 {
		out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(out[2:]))
	}
	e.out = out
	tracer().Debugf("optwire: %d slots, %d present, payload %d bytes, frame %d bytes",
		n, v.Count(), len(e.payload), len(out))
	return out, nil
}

// Close releases the compressor, if any.
func (e *Encoder[T]) Close() error {
	if e.zenc != nil {
		return e.zenc.Close()
	}
	return nil
}

func (e *Encoder[T]) appendValue(dst []byte, x T) []byte {
	rv := reflect.ValueOf(x)
	if e.kind == reflect.String {
		s := rv.String()
		dst = common.WriteVarUint(dst, uint64(len(s)))
		return append(dst, s...)
	}
	return common.AppendFixed(dst, rv, e.kind)
}

// grow returns b resized to n zero bytes, reusing its array when possible.
func grow(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	b = b[:n]
	clear(b)
	return b
}
