package inbox_test

import (
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/uberbrodt/hypo-go/hypo/internal/inbox"
)

func TestInbox_IterYieldsInOrder(t *testing.T) {
	ibox := inbox.New[int]()
	for i := 0; i < 5; i++ {
		assert.Assert(t, ibox.Enqueue(i))
	}

	got := make([]int, 0)
	for item := range ibox.Iter() {
		got = append(got, item)
		if len(got) == 5 {
			break
		}
	}

	assert.DeepEqual(t, got, []int{0, 1, 2, 3, 4})
	assert.Equal(t, ibox.Size(), 0)
}

func TestInbox_IterEndsOnDrain(t *testing.T) {
	ibox := inbox.New[int]()
	var wg sync.WaitGroup
	wg.Add(1)

	var got []int
	go func() {
		defer wg.Done()
		for item := range ibox.Iter() {
			got = append(got, item)
			if item == 2 {
				assert.Check(t, len(ibox.Drain()) == 0)
			}
		}
	}()

	ibox.Enqueue(1)
	ibox.Enqueue(2)
	wg.Wait()

	assert.DeepEqual(t, got, []int{1, 2})
	assert.Assert(t, !ibox.Enqueue(3))
}

func TestInbox_DrainReturnsQueuedAndCloses(t *testing.T) {
	ibox := inbox.New[string]()
	ibox.Enqueue("a")
	ibox.Enqueue("b")

	assert.DeepEqual(t, ibox.Drain(), []string{"a", "b"})
	assert.Assert(t, !ibox.Enqueue("c"))
	assert.Equal(t, len(ibox.Drain()), 0)

	_, err := ibox.BlockingPop()
	assert.ErrorIs(t, err, inbox.ErrClosed)
}
