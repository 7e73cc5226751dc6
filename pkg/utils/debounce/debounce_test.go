package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/utils/debounce"
)

func TestDebouncer(t *testing.T) {
	t.Run("only the last submission runs", func(t *testing.T) {
		d := debounce.New(30 * time.Millisecond)
		var last atomic.Int32
		var runs atomic.Int32

		for i := 1; i <= 5; i++ {
			d.Submit(func() {
				last.Store(int32(i))
				runs.Add(1)
			})
			time.Sleep(5 * time.Millisecond)
		}

		time.Sleep(100 * time.Millisecond)
		gt.Equal(t, int32(1), runs.Load())
		gt.Equal(t, int32(5), last.Load())
	})

	t.Run("flush runs immediately", func(t *testing.T) {
		d := debounce.New(time.Hour)
		var runs atomic.Int32
		d.Submit(func() { runs.Add(1) })

		d.Flush()
		gt.Equal(t, int32(1), runs.Load())

		d.Flush()
		gt.Equal(t, int32(1), runs.Load())
	})

	t.Run("cancel drops pending", func(t *testing.T) {
		d := debounce.New(20 * time.Millisecond)
		var runs atomic.Int32
		d.Submit(func() { runs.Add(1) })
		d.Cancel()

		time.Sleep(60 * time.Millisecond)
		gt.Equal(t, int32(0), runs.Load())
	})

	t.Run("stop rejects submissions", func(t *testing.T) {
		d := debounce.New(0)
		d.Stop()
		var runs atomic.Int32
		d.Submit(func() { runs.Add(1) })
		gt.Equal(t, int32(0), runs.Load())
	})

	t.Run("zero quiet period runs synchronously", func(t *testing.T) {
		d := debounce.New(0)
		var runs atomic.Int32
		d.Submit(func() { runs.Add(1) })
		gt.Equal(t, int32(1), runs.Load())
	})
}
