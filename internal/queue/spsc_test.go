package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSPSC_SizeValidation(t *testing.T) {
	testCases := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "power of two", size: 8, wantErr: false},
		{name: "minimum size", size: 2, wantErr: false},
		{name: "large power of two", size: 65536, wantErr: false},
		{name: "zero", size: 0, wantErr: true},
		{name: "one", size: 1, wantErr: true},
		{name: "not power of two", size: 100, wantErr: true},
		{name: "negative", size: -4, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewSPSC[int](tc.size)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, q)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.size-1, q.Capacity())
			}
		})
	}
}

// Push until full, pop until empty, check order. One slot is reserved so an
// 8-slot queue takes exactly 7 pushes.
func TestSPSC_FillAndDrain(t *testing.T) {
	q, err := NewSPSC[int](8)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		assert.True(t, q.Push(i), "push %d should succeed", i)
	}
	assert.False(t, q.Push(7), "8th push must fail on a full queue")
	assert.Equal(t, 7, q.Size())
	assert.InDelta(t, 1.0, q.FillRatio(), 1e-9)

	for i := 0; i < 7; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := q.Pop()
	assert.False(t, ok, "pop on empty queue must fail")
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Size())
}

func TestSPSC_WrapAround(t *testing.T) {
	q, err := NewSPSC[int](4)
	require.NoError(t, err)

	// Cycle enough times to wrap the indices several times over.
	next := 0
	for round := 0; round < 100; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, q.Push(next+i))
		}
		for i := 0; i < 3; i++ {
			v, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, next+i, v)
		}
		next += 3
	}
	assert.True(t, q.Empty())
}

func TestSPSC_PointerSlotReleased(t *testing.T) {
	q, err := NewSPSC[*int](4)
	require.NoError(t, err)

	v := 42
	require.True(t, q.Push(&v))

	got, ok := q.Pop()
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, 42, *got)

	// The slot behind the popped element must not pin the pointer.
	assert.Nil(t, q.buf[0])
}

// One producer, one consumer, 100k elements. The consumer must observe the
// exact produced sequence: no gaps, no duplicates, no reordering.
func TestSPSC_ConcurrentFIFO(t *testing.T) {
	const total = 100_000

	q, err := NewSPSC[int](1024)
	require.NoError(t, err)

	received := make([]int, 0, total)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			for !q.Push(i) {
				// spin until a slot frees up
			}
		}
	}()

	go func() {
		defer wg.Done()
		for len(received) < total {
			if v, ok := q.Pop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()

	require.Len(t, received, total)
	for i, v := range received {
		require.Equal(t, i, v, "sequence mismatch at index %d", i)
	}
	assert.True(t, q.Empty())
}

func TestSPSC_ObserversFromOtherGoroutine(t *testing.T) {
	q, err := NewSPSC[int](16)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.True(t, q.Push(i))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Equal(t, 5, q.Size())
		assert.False(t, q.Empty())
		assert.InDelta(t, 5.0/15.0, q.FillRatio(), 1e-9)
	}()
	<-done
}

func BenchmarkSPSC_PushPop(b *testing.B) {
	q, _ := NewSPSC[uint64](65536)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !q.Push(uint64(i)) {
			q.Pop()
			q.Push(uint64(i))
		}
		q.Pop()
	}
}
