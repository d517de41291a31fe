package cxxstring

import (
	"unicode/utf16"

	"github.com/wippyai/cxxstl/internal/cstl"
)

// CodeUnit is the element of a string.
type CodeUnit interface {
	uint8 | uint16 | uint32
}

// Encoding binds a code unit type to a native string table. It is
// implemented by the encoding types of this package only.
type Encoding[U CodeUnit] interface {
	table() *cstl.StringABI
	encode(s string) []U
	decode(units []U) string
	name() string
}

// Narrow is std::string: bytes in the active code page.
type Narrow struct{}

func (Narrow) table() *cstl.StringABI     { return &cstl.String }
func (Narrow) encode(s string) []uint8     { return []byte(s) }
func (Narrow) decode(units []uint8) string { return string(units) }
func (Narrow) name() string                { return "NarrowString" }

// Wide is std::wstring: UTF-16 code units.
type Wide struct{}

func (Wide) table() *cstl.StringABI      { return &cstl.WString }
func (Wide) encode(s string) []uint16     { return utf16.Encode([]rune(s)) }
func (Wide) decode(units []uint16) string { return string(utf16.Decode(units)) }
func (Wide) name() string                 { return "WideString" }

// UTF8 is std::u8string.
type UTF8 struct{}

func (UTF8) table() *cstl.StringABI     { return &cstl.U8String }
func (UTF8) encode(s string) []uint8     { return []byte(s) }
func (UTF8) decode(units []uint8) string { return string(units) }
func (UTF8) name() string                { return "UTF8String" }

// UTF16 is std::u16string.
type UTF16 struct{}

func (UTF16) table() *cstl.StringABI      { return &cstl.U16String }
func (UTF16) encode(s string) []uint16     { return utf16.Encode([]rune(s)) }
func (UTF16) decode(units []uint16) string { return string(utf16.Decode(units)) }
func (UTF16) name() string                 { return "UTF16String" }

// UTF32 is std::u32string.
type UTF32 struct{}

func (UTF32) table() *cstl.StringABI { return &cstl.U32String }

func (UTF32) encode(s string) []uint32 {
	out := make([]uint32, 0, len(s))
	for _, r := range s {
		out = append(out, uint32(r))
	}
	return out
}

func (UTF32) decode(units []uint32) string {
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}

func (UTF32) name() string { return "UTF32String" }
