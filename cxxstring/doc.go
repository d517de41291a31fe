// Package cxxstring provides std::basic_string compatible strings.
//
// One generic type, BasicString[U, E, A], covers every code unit width; the
// encoding E selects the native function table and how Go strings are
// converted in and out. The aliases cover the five MSVC string types:
//
//	NarrowString  std::string     (uint8, active code page)
//	WideString    std::wstring    (uint16, UTF-16)
//	UTF8String    std::u8string   (uint8)
//	UTF16String   std::u16string  (uint16)
//	UTF32String   std::u32string  (uint32)
//
// Strings up to 16/unit-1 code units live in the header itself; longer ones
// move to a heap block from the string's allocator. Code units are never
// validated: AppendUnit stores whatever it is given and String decodes
// invalid sequences to U+FFFD.
//
// Narrow strings also convert to and from a single-byte code page with
// FromCodePageIn and DecodeCodePage.
package cxxstring
