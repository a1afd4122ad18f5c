// Package optwire encodes a VecOption of fixed-size or string elements into
// a compact, self-checking binary frame and decodes it back.
//
// Frame layout, all integers little endian:
//
//	magic "VO" | version | kind | flags | length u32 | payload | [crc32 u32]
//
// length counts the whole frame. The payload, zstd-compressed when
// FlagCompressed is set, is
//
//	varint N | presence bitmap, ceil(N/8) bytes, LSB0 | body
//
// and the body holds the present values in index order. Absent slots
// contribute one bit and nothing else. With FlagChecksum the frame ends with
// a CRC32 (IEEE) of every byte after the magic.
package optwire

import (
	"errors"
	"reflect"

	"github.com/klauspost/compress/zstd"
	"github.com/npillmayer/schuko/tracing"
	"github.com/rawbytedev/vecoption/internal/common"
)

var (
	// ErrUnsupported reports an element type that has no wire form.
	ErrUnsupported = errors.New("optwire: unsupported element type")

	// ErrBadMagic reports a frame that does not start with "VO".
	ErrBadMagic = errors.New("optwire: bad magic")

	// ErrBadVersion reports a frame written by an unknown format version.
	ErrBadVersion = errors.New("optwire: unsupported version")

	// ErrKindMismatch reports a frame whose element kind differs from the
	// decoder's.
	ErrKindMismatch = errors.New("optwire: element kind mismatch")

	// ErrLengthMismatch reports a length field or body size that disagrees
	// with the bytes present.
	ErrLengthMismatch = errors.New("optwire: length mismatch")

	// ErrChecksum reports a CRC32 that does not match the frame.
	ErrChecksum = errors.New("optwire: checksum mismatch")

	// ErrTruncated reports a frame that ends before its declared content.
	ErrTruncated = errors.New("optwire: truncated frame")

	// ErrCompression reports a zstd failure on either side.
	ErrCompression = errors.New("optwire: compression")

	// ErrTooLarge reports a frame claiming more slots than the decoder
	// accepts.
	ErrTooLarge = errors.New("optwire: frame too large")
)

const (
	Magic0  byte = 'V'
	Magic1  byte = 'O'
	Version byte = 1

	FlagCompressed byte = 1 << 0
	FlagChecksum   byte = 1 << 1

	HeaderSize = 9

	// DefaultMaxSlots is the slot limit of a Decoder with MaxSlots unset.
	DefaultMaxSlots = 1 << 24

	maxInflated   = 256 << 20
	preallocSlots = 1 << 16
)

// Options controls encoding. The zero value writes an uncompressed frame
// without checksum.
type Options struct {
	Compression bool
	Level       zstd.EncoderLevel // 0 selects zstd.SpeedBetterCompression
	Checksum    bool
}

func tracer() tracing.Trace {
	return tracing.Select("vecoption.wire")
}

// kindOf returns the wire kind of T, or ErrUnsupported.
func kindOf[T any]() (reflect.Kind, error) {
	k := reflect.TypeFor[T]().Kind()
	if common.IsFixedKind(k) || k == reflect.String {
		return k, nil
	}
	return reflect.Invalid, ErrUnsupported
}
