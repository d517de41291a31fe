package layout

import (
	"reflect"
	"sync"
)

// Field is one field of a record layout.
type Field struct {
	Name   string
	Type   string
	Offset uintptr
	Size   uintptr
}

// Info describes the size, alignment and field offsets of a record.
type Info struct {
	Name   string
	Size   uintptr
	Align  uintptr
	Fields []Field
}

// Calculator reports the memory layout of Go types as the native side sees
// them. Results are cached per type.
type Calculator struct {
	cache map[reflect.Type]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[reflect.Type]Info),
	}
}

// Describe returns the layout of T.
func Describe[T any](c *Calculator) Info {
	return c.Calculate(reflect.TypeFor[T]())
}

func (c *Calculator) Calculate(t reflect.Type) Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[t]; ok {
		return cached
	}
	info := Info{
		Name:  t.String(),
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	}
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			info.Fields = append(info.Fields, Field{
				Name:   f.Name,
				Type:   f.Type.String(),
				Offset: f.Offset,
				Size:   f.Type.Size(),
			})
		}
	}
	c.cache[t] = info
	return info
}

// Padding returns the bytes of info not covered by any field.
func (i Info) Padding() uintptr {
	var used uintptr
	for _, f := range i.Fields {
		used += f.Size
	}
	return i.Size - used
}
