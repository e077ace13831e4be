package remote

import (
	"errors"
	"fmt"
	"io"
)

// fakeTarget is an in-process stand-in for a debugged process. It counts
// every remote call so tests can assert that nothing touched the target.
type fakeTarget struct {
	caps     Capabilities
	calls    int
	nextID   uint64
	arrays   map[uint64]*fakeArray
	retained []uint64
	loaders  []uint64
	defined  []definedClass
	writes   []fakeWrite

	failWrite  int // index of the write that fails; -1 = never
	failAlloc  bool
	failDefine bool
}

type definedClass struct {
	name   string
	loader uint64
	array  uint64
}

type fakeWrite struct {
	array  uint64
	offset int
	count  int
}

func newFakeTarget(caps Capabilities) *fakeTarget {
	return &fakeTarget{
		caps:      caps,
		arrays:    make(map[uint64]*fakeArray),
		failWrite: -1,
	}
}

func (t *fakeTarget) Capabilities() Capabilities { return t.caps }

func (t *fakeTarget) ResolveType(name string) (TypeRef, error) {
	t.calls++
	return fakeType{name: name}, nil
}

func (t *fakeTarget) NewArray(elem TypeRef, length int) (ArrayRef, error) {
	t.calls++
	if t.failAlloc {
		return nil, errors.New("allocation refused")
	}
	t.nextID++
	arr := &fakeArray{target: t, id: t.nextID, data: make([]byte, length)}
	t.arrays[arr.id] = arr
	return arr, nil
}

func (t *fakeTarget) MirrorByte(b byte) Value { return fakeByte(b) }

func (t *fakeTarget) Retain(obj ObjectRef) error {
	t.calls++
	t.retained = append(t.retained, obj.ID())
	return nil
}

func (t *fakeTarget) NewClassLoader() (ClassLoaderRef, error) {
	t.calls++
	t.nextID++
	t.loaders = append(t.loaders, t.nextID)
	return fakeLoader{id: t.nextID}, nil
}

func (t *fakeTarget) DefineClass(loader ClassLoaderRef, name string, data ArrayRef) error {
	t.calls++
	if t.failDefine {
		return errors.New("class verification failed")
	}
	t.defined = append(t.defined, definedClass{name: name, loader: loader.ID(), array: data.ID()})
	return nil
}

func (t *fakeTarget) Connection() io.Closer { return nopCloser{} }

func (t *fakeTarget) retainedContains(id uint64) bool {
	for _, r := range t.retained {
		if r == id {
			return true
		}
	}
	return false
}

type fakeByte byte

type fakeType struct{ name string }

func (t fakeType) Name() string { return t.name }

type fakeArray struct {
	target *fakeTarget
	id     uint64
	data   []byte
}

func (a *fakeArray) ID() uint64 { return a.id }

func (a *fakeArray) SetValues(offset int, values []Value, valueOffset, count int) error {
	a.target.calls++
	if a.target.failWrite >= 0 && len(a.target.writes) == a.target.failWrite {
		return errors.New("write refused")
	}
	for i := 0; i < count; i++ {
		b, ok := values[valueOffset+i].(fakeByte)
		if !ok {
			return fmt.Errorf("value at %d is not a byte mirror", valueOffset+i)
		}
		a.data[offset+i] = byte(b)
	}
	a.target.writes = append(a.target.writes, fakeWrite{array: a.id, offset: offset, count: count})
	return nil
}

type fakeLoader struct{ id uint64 }

func (l fakeLoader) ID() uint64 { return l.id }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
