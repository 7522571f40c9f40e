package file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const entryVersion byte = 1

var (
	// ErrCorrupt marks an on-disk entry that cannot be decoded. Corrupt
	// entries are removed on read and treated as misses.
	ErrCorrupt = errors.New("file driver: corrupt entry")

	magic4 = [...]byte{'S', 'C', 'F', '1'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// entry layout: magic(4) | ver(1) | expiresAt unix-sec (i64 be, 0 = none) | vlen(u32 be) | payload(vlen)
func encodeEntry(expiresAt time.Time, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 8 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(entryVersion)

	var u8 [8]byte
	var u4 [4]byte

	var exp int64
	if !expiresAt.IsZero() {
		exp = expiresAt.Unix()
	}
	binary.BigEndian.PutUint64(u8[:], uint64(exp))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func decodeEntry(b []byte) (expiresAt time.Time, payload []byte, err error) {
	const hdr = 4 + 1 + 8 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != entryVersion {
		return time.Time{}, nil, ErrCorrupt
	}

	off := 5

	exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length; trailing bytes are corruption
		return time.Time{}, nil, ErrCorrupt
	}

	if exp != 0 {
		expiresAt = time.Unix(exp, 0)
	}
	return expiresAt, b[off : off+vlen], nil
}
