package golcms

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counted(n *int) func(unsafe.Pointer) {
	return func(unsafe.Pointer) { *n++ }
}

func TestHandle_ReleaseOnce(t *testing.T) {
	var released int
	h := newHandle(nil, unsafe.Pointer(new(int)), counted(&released))
	h.close()
	h.close()
	assert.Equal(t, 1, released)
	assert.True(t, h.closed())

	_, err := h.lock()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHandle_NilIsClosed(t *testing.T) {
	var h *handle
	assert.True(t, h.closed())
	_, err := h.lock()
	assert.ErrorIs(t, err, ErrClosed)
	h.close()
}

func TestHandle_BorrowedViewNeverReleases(t *testing.T) {
	var released int
	parent := newHandle(nil, unsafe.Pointer(new(int)), counted(&released))
	view := parent.borrow(unsafe.Pointer(new(int)))

	view.close()
	assert.Equal(t, 0, released)
	assert.False(t, parent.closed())
	assert.Empty(t, parent.children)

	parent.close()
	assert.Equal(t, 1, released)
}

func TestHandle_CloseClosesChildrenFirst(t *testing.T) {
	var order []string
	parent := newHandle(nil, unsafe.Pointer(new(int)), func(unsafe.Pointer) { order = append(order, "parent") })
	child := newHandle(nil, unsafe.Pointer(new(int)), func(unsafe.Pointer) { order = append(order, "child") })
	parent.attach(child)
	view := child.borrow(unsafe.Pointer(new(int)))

	parent.close()
	assert.Equal(t, []string{"child", "parent"}, order)
	assert.True(t, child.closed())
	assert.True(t, view.closed())
}

func TestHandle_LockAllDeduplicates(t *testing.T) {
	a := newHandle(nil, unsafe.Pointer(new(int)), nil)
	b := newHandle(nil, unsafe.Pointer(new(int)), nil)

	ptrs, unlock, err := lockAll(a, b, a)
	require.NoError(t, err)
	assert.Equal(t, []unsafe.Pointer{a.ptr, b.ptr, a.ptr}, ptrs)
	unlock()

	// Every read lock was dropped exactly once.
	a.mu.Lock()
	a.mu.Unlock()
	b.mu.Lock()
	b.mu.Unlock()
}

func TestHandle_LockAllFailsOnClosed(t *testing.T) {
	a := newHandle(nil, unsafe.Pointer(new(int)), nil)
	b := newHandle(nil, unsafe.Pointer(new(int)), nil)
	b.close()

	_, _, err := lockAll(a, b)
	assert.ErrorIs(t, err, ErrClosed)
	a.mu.Lock()
	a.mu.Unlock()
}

func TestHandle_Transfer(t *testing.T) {
	var released int
	owner := newHandle(nil, unsafe.Pointer(new(int)), nil)
	h := newHandle(nil, unsafe.Pointer(new(int)), counted(&released))

	require.NoError(t, h.transfer(owner, func(x, o unsafe.Pointer) error { return nil }))
	assert.Same(t, owner, h.parent)

	err := h.transfer(owner, func(x, o unsafe.Pointer) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidArgument)

	owner.close()
	assert.True(t, h.closed())
	assert.Equal(t, 0, released)
}

func TestHandle_TransferFailureKeepsOwnership(t *testing.T) {
	var released int
	owner := newHandle(nil, unsafe.Pointer(new(int)), nil)
	h := newHandle(nil, unsafe.Pointer(new(int)), counted(&released))

	err := h.transfer(owner, func(x, o unsafe.Pointer) error { return ErrFailed })
	assert.ErrorIs(t, err, ErrFailed)
	owner.close()
	assert.False(t, h.closed())
	h.close()
	assert.Equal(t, 1, released)
}

func TestHandle_Invalidate(t *testing.T) {
	owner := newHandle(nil, unsafe.Pointer(new(int)), nil)
	p1, p2 := unsafe.Pointer(new(int)), unsafe.Pointer(new(int))
	v1 := owner.borrow(p1)
	nested := v1.borrow(unsafe.Pointer(new(int)))
	v2 := owner.borrow(p2)

	owner.invalidate(p1)
	assert.True(t, v1.closed())
	assert.True(t, nested.closed())
	assert.False(t, v2.closed())
	assert.False(t, owner.closed())
}

func TestHandle_ConcurrentClose(t *testing.T) {
	var mu sync.Mutex
	released := 0
	h := newHandle(nil, unsafe.Pointer(new(int)), func(unsafe.Pointer) {
		mu.Lock()
		released++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.close()
		}()
		go func() {
			defer wg.Done()
			_ = do(h, func(unsafe.Pointer) error { return nil })
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, released)
}
