// Package vectors implements the byte-level vector codec shared by the
// Spark wire decoder and the Redis cache backend: embedding vectors are
// flat buffers of little-endian IEEE-754 float32 values.
package vectors

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ToBytes encodes a vector as a little-endian float32 buffer.
func ToBytes(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// FromBytes decodes a little-endian float32 buffer into a vector.
func FromBytes(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector buffer length %d is not a multiple of 4", len(data))
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return vector, nil
}
