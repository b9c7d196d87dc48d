package progress

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(c *Channel) []string {
	var lines []string
	for line := range c.Lines() {
		lines = append(lines, line)
	}
	return lines
}

func TestChannelPreservesOrder(t *testing.T) {
	c := NewChannel()

	const n = 5000
	go func() {
		for i := 0; i < n; i++ {
			c.Report(fmt.Sprintf("line %d", i))
		}
		c.Close()
	}()

	lines := collect(c)

	require.Len(t, lines, n)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("line %d", i), line)
	}

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Done was not closed after the last line")
	}
}

func TestChannelReportDoesNotBlock(t *testing.T) {
	c := NewChannel()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			c.Report("queued")
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Report blocked without a consumer")
	}

	c.Close()
	assert.Len(t, collect(c), 1000)
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	c := NewChannel()
	c.Report("only")
	c.Close()
	c.Close()
	c.Report("dropped")

	assert.Equal(t, []string{"only"}, collect(c))
	<-c.Done()
}

func TestChannelDoneWaitsForDelivery(t *testing.T) {
	c := NewChannel()
	c.Report("pending")
	c.Close()

	select {
	case <-c.Done():
		t.Fatal("Done closed before the queued line was read")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, "pending", <-c.Lines())
	<-c.Done()
}

func TestRecorderAndFunc(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Report("x")
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Lines(), 10)

	var got []string
	var r Reporter = Func(func(msg string) { got = append(got, msg) })
	r.Report("a")
	r.Report("b")
	assert.Equal(t, []string{"a", "b"}, got)

	Nop.Report("ignored")
}
