// Package semantics derives the element descriptors the native containers
// need to handle values they cannot type-check.
//
// A Descriptor carries the packed type tag and range adapters for drop,
// relocation and cloning. Every adapter takes the two boundary pointers of a
// contiguous range and walks it in ascending order:
//
//	d := semantics.Of[Point]()
//	d.Copy.Copy(first, last, dest)
//
// Descriptors exist for every Go type. Containers additionally require the
// element to be free of Go pointers, checked by MustStore, because foreign
// memory is not scanned by the garbage collector.
package semantics
