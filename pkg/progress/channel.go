package progress

import "sync"

// Channel delivers reported lines to another goroutine without dropping or
// reordering them. Report never blocks: lines queue up in memory until the
// consumer reads them from Lines.
//
// Close marks the end of the stream. Lines is closed after the last queued
// line has been received, and Done is closed right after that.
type Channel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []string
	closed bool

	out  chan string
	done chan struct{}
}

// NewChannel creates a Channel and starts its delivery goroutine. The
// consumer must drain Lines until it is closed.
func NewChannel() *Channel {
	c := &Channel{
		out:  make(chan string),
		done: make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)

	go c.pump()

	return c
}

// Report queues msg for delivery. Lines reported after Close are dropped.
func (c *Channel) Report(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.queue = append(c.queue, msg)
	c.cond.Signal()
}

// Close signals that no more lines will be reported. It is safe to call
// more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cond.Signal()
}

// Lines returns the delivery channel
func (c *Channel) Lines() <-chan string {
	return c.out
}

// Done is closed once every line has been delivered after Close
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

func (c *Channel) pump() {
	defer close(c.done)
	defer close(c.out)

	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.cond.Wait()
		}
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		msg := c.queue[0]
		c.queue[0] = ""
		c.queue = c.queue[1:]
		c.mu.Unlock()

		c.out <- msg
	}
}
