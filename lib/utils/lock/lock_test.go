package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`sequential calls both succeed`, func(t *testing.T) {
		calls := 0
		for idx := 0; idx < 2; idx++ {
			success, err := WithDelay(context.TODO(), "key-seq", time.Second, func() error {
				calls++
				return nil
			})
			require.Nil(t, err)
			require.True(t, success)
		}
		require.Equal(t, 2, calls)
	})

	t.Run(`no concurrent execution under same key`, func(t *testing.T) {
		var inside int32
		var maxInside int32
		wg := sync.WaitGroup{}
		for idx := 0; idx < 5; idx++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = WithDelay(context.TODO(), "key-conc", 2*time.Second, func() error {
					current := atomic.AddInt32(&inside, 1)
					if current > atomic.LoadInt32(&maxInside) {
						atomic.StoreInt32(&maxInside, current)
					}
					time.Sleep(20 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
	})

	t.Run(`timeout while key is held`, func(t *testing.T) {
		hold := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.TODO(), "key-held", time.Second, func() error {
				<-hold
				return nil
			})
		}()
		time.Sleep(50 * time.Millisecond)
		success, err := WithDelay(context.TODO(), "key-held", 100*time.Millisecond, func() error {
			return nil
		})
		require.Nil(t, err)
		require.False(t, success)
		close(hold)
	})

	t.Run(`cancelled context gives up`, func(t *testing.T) {
		hold := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.TODO(), "key-cancel", time.Second, func() error {
				<-hold
				return nil
			})
		}()
		time.Sleep(50 * time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		success, err := WithDelay(ctx, "key-cancel", 10*time.Second, func() error {
			return nil
		})
		require.Nil(t, err)
		require.False(t, success)
		close(hold)
	})
}
