package cxxstring

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/errors"
)

// FromCodePageIn encodes s into the single-byte code page cp and returns it
// as a narrow string using a. Characters cp cannot represent are an error.
func FromCodePageIn[A alloc.Allocator](s string, cp *charmap.Charmap, a A) (NarrowStringIn[A], error) {
	b, err := cp.NewEncoder().Bytes([]byte(s))
	if err != nil {
		var zero NarrowStringIn[A]
		return zero, errors.Encoding(errors.PhaseString, cp.String(), err)
	}
	return FromUnitsIn[uint8, Narrow](b, a), nil
}

// DecodeCodePage decodes the narrow string s from the code page cp.
func DecodeCodePage[A alloc.Allocator](s *NarrowStringIn[A], cp *charmap.Charmap) (string, error) {
	b, err := cp.NewDecoder().Bytes(s.Units())
	if err != nil {
		return "", errors.Encoding(errors.PhaseString, cp.String(), err)
	}
	return string(b), nil
}
