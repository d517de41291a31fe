// Package vector provides std::vector compatible dynamic arrays.
//
// Vec[T] uses the System allocator, VecIn[T, A] any allocator, and VecLayout
// selects the physical field order of the header. Package msvc2012 supplies
// the value-first order of the 2012 toolset.
//
//	v := vector.New[int32]()
//	defer v.Drop()
//	v.Push(1)
//	v.Insert(0, 0)
//	fmt.Println(v.AsSlice()) // [0 1]
//
// Growth, insertion and erasure run through the native function table. The
// header can be passed to native code as *RawVec via Raw.
//
// Moving values in (Push, Insert, FromGoSliceIn) transfers ownership to the
// vector; reading values out (Pop, Remove, IntoIter) transfers it back.
// Values read through AsSlice remain owned by the vector.
package vector
