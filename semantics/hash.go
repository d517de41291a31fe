package semantics

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Hash digests element bytes in order. Containers holding equal sequences of
// the same element type hash equally whatever their kind or allocator.
// Padding bytes are hashed as stored, so types with padding hash reliably
// only when their padding is always zero.
type Hash[T any] struct {
	d *xxhash.Digest
	n uint64
}

// NewHash returns an empty digest.
func NewHash[T any]() *Hash[T] {
	return &Hash[T]{d: xxhash.New()}
}

// Add hashes one element.
func (h *Hash[T]) Add(v *T) {
	if size := unsafe.Sizeof(*v); size > 0 {
		h.d.Write(unsafe.Slice((*byte)(unsafe.Pointer(v)), size))
	}
	h.n++
}

// AddSlice hashes every element of s.
func (h *Hash[T]) AddSlice(s []T) {
	var zero T
	if size := unsafe.Sizeof(zero); size > 0 && len(s) > 0 {
		h.d.Write(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*size))
	}
	h.n += uint64(len(s))
}

// Sum64 returns the digest including the element count.
func (h *Hash[T]) Sum64() uint64 {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], h.n)
	d := *h.d
	d.Write(n[:])
	return d.Sum64()
}
