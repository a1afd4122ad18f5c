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

// Decoder reads frames written by an Encoder of the same element type.
type Decoder[T any] struct {
	// MaxSlots bounds the number of slots a frame may claim. Zero selects
	// DefaultMaxSlots.
	MaxSlots int

	kind    reflect.Kind
	zdec    *zstd.Decoder
	scratch []byte
}

// NewDecoder returns a Decoder for T.
func NewDecoder[T any]() (*Decoder[T], error) {
	k, err := kindOf[T]()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", err, reflect.TypeFor[T]())
	}
	return &Decoder[T]{kind: k}, nil
}

// Decode parses a frame into a new VecOption.
func (d *Decoder[T]) Decode(data []byte) (*vecoption.VecOption[T], error) {
	payload, err := d.open(data)
	if err != nil {
		return nil, err
	}
	n, m := common.ReadVarUint(payload)
	if m == 0 {
		return nil, ErrTruncated
	}
	limit := d.MaxSlots
	if limit <= 0 {
		limit = DefaultMaxSlots
	}
	if n > uint64(limit) {
		return nil, fmt.Errorf("%w: %d slots, limit %d", ErrTooLarge, n, limit)
	}
	rest := payload[m:]
	if n > uint64(len(rest))*8 {
		return nil, fmt.Errorf("%w: %d slots, %d bytes left", ErrTruncated, n, len(rest))
	}
	nb := int((n + 7) >> 3)
	bitmap, body := rest[:nb], rest[nb:]

	// capacity beyond the first chunk grows with the slots actually decoded
	v := vecoption.WithCapacity[T](min(int(n), preallocSlots))
	for i := 0; i < int(n); {
		if bitmap[i>>3]&(1<<(i&7)) == 0 {
			j := i + 1
			for j < int(n) && bitmap[j>>3]&(1<<(j&7)) == 0 {
				j++
			}
			v.ExtendNone(j - i)
			i = j
			continue
		}
		var x T
		body, err = d.readValue(body, reflect.ValueOf(&x).Elem())
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d", err, i)
		}
		v.PushValue(x)
		i++
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrLengthMismatch, len(body))
	}
	return v, nil
}

// open validates the frame header and returns the uncompressed payload.
func (d *Decoder[T]) open(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncated
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return nil, ErrBadMagic
	}
	if data[2] != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, data[2])
	}
	if reflect.Kind(data[3]) != d.kind {
		return nil, fmt.Errorf("%w: frame holds %v, decoder wants %v", ErrKindMismatch, reflect.Kind(data[3]), d.kind)
	}
	flags := data[4]
	if length := binary.LittleEndian.Uint32(data[5:]); int(length) != len(data) {
		return nil, fmt.Errorf("%w: header says %d, got %d", ErrLengthMismatch, length, len(data))
	}
	end := len(data)
	if flags&FlagChecksum != 0 {
		if end < HeaderSize+4 {
			return nil, ErrTruncated
		}
		end -= 4
		if crc32.ChecksumIEEE(data[2:end]) != binary.LittleEndian.Uint32(data[end:]) {
			return nil, ErrChecksum
		}
	}
	payload := data[HeaderSize:end]
	if flags&FlagCompressed == 0 {
		return payload, nil
	}
	if d.zdec == nil {
		zdec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(maxInflated))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompression, err)
		}
		d.zdec = zdec
	}
	out, err := d.zdec.DecodeAll(payload, d.scratch[:0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	d.scratch = out
	tracer().Debugf("optwire: inflated %d -> %d bytes", len(payload), len(out))
	return out, nil
}

func (d *Decoder[T]) readValue(b []byte, dst reflect.Value) ([]byte, error) {
	if d.kind == reflect.String {
		l, k := common.ReadVarUint(b)
		if k == 0 || l > uint64(len(b)-k) {
			return nil, ErrTruncated
		}
		dst.SetString(string(b[k : k+int(l)]))
		return b[k+int(l):], nil
	}
	sz := common.FixedSize(d.kind)
	if len(b) < sz {
		return nil, ErrTruncated
	}
	common.SetFixed(dst, b[:sz], d.kind)
	return b[sz:], nil
}

// Close releases the decompressor, if any.
func (d *Decoder[T]) Close() {
	if d.zdec != nil {
		d.zdec.Close()
	}
}
