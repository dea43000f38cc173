package windowpos

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		succeedAt int32
		attempts  int
		wantCalls int32
	}{
		{name: "first try", succeedAt: 1, attempts: 5, wantCalls: 1},
		{name: "third try", succeedAt: 3, attempts: 5, wantCalls: 3},
		{name: "never", succeedAt: 100, attempts: 4, wantCalls: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			done := retry(func() bool { return calls.Add(1) >= tt.succeedAt }, tt.attempts, time.Millisecond)
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("retry did not finish")
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}
