// Package cstl declares the native records of the MSVC containers and the
// function tables the facades call into.
//
// Every record has the exact field order, size and alignment the native side
// reads. Foreign memory is reached only through the Alloc proxy record handed
// to each call; the tables never keep it.
//
// The tables are package variables holding funcs. They are populated with a
// Go rendition of the MSVC container algorithms (growth factor 1.5, exact
// reserve, small string buffer of 16 bytes). The facades call nothing but the
// tables, so a build linked against a real native library swaps them out.
package cstl
