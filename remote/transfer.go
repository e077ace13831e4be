package remote

import "fmt"

// ByteArrayType is the JVM signature of the byte array type in the target.
const ByteArrayType = "[B"

// writeChunkSize caps how many mirror values a single remote array write
// may carry. A full buffer of length L goes out as ceil(L/4096) sequential
// writes at ascending offsets.
const writeChunkSize = 4096

// MaterializeByteArray creates a byte array in the target process holding
// data. The array is retained before any bytes are written, so the target's
// collector cannot reclaim it while the caller still needs it.
//
// Every byte is converted to its mirror form first; the remote write only
// accepts values in the target's wire representation. Writes go out in
// order and the first failure aborts the transfer — bytes already written
// stay in the remote array, which is simply abandoned along with the
// enclosing load attempt.
func MaterializeByteArray(t Target, data []byte) (ArrayRef, error) {
	elem, err := t.ResolveType(ByteArrayType)
	if err != nil {
		return nil, fmt.Errorf("remote: resolve %s: %w", ByteArrayType, err)
	}

	arr, err := t.NewArray(elem, len(data))
	if err != nil {
		return nil, fmt.Errorf("remote: allocate byte[%d]: %w", len(data), err)
	}
	if err := t.Retain(arr); err != nil {
		return nil, fmt.Errorf("remote: retain array: %w", err)
	}

	mirrors := make([]Value, len(data))
	for i, b := range data {
		mirrors[i] = t.MirrorByte(b)
	}

	for off := 0; off < len(mirrors); off += writeChunkSize {
		n := len(mirrors) - off
		if n > writeChunkSize {
			n = writeChunkSize
		}
		if err := arr.SetValues(off, mirrors, off, n); err != nil {
			return nil, fmt.Errorf("remote: write %d values at offset %d: %w", n, off, err)
		}
	}
	return arr, nil
}
