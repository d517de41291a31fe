// Package list provides std::list compatible doubly linked lists.
//
// Every node is allocated by the list's allocator and links to its
// neighbours through a heap sentinel, so the header can be handed to native
// code as *RawList. A list returned by New owns its sentinel; the zero value
// builds one on first use.
//
//	l := list.New[int64]()
//	defer l.Drop()
//	l.PushBack(2)
//	l.PushFront(1)
//	fmt.Println(l.ToGoSlice()) // [1 2]
package list
