package pinauth

// Notifier is told when a sign-in completes. It carries no token; the
// receiver reads it from the flow.
type Notifier interface {
	SignedIn()
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func()

// SignedIn calls fn.
func (fn NotifierFunc) SignedIn() { fn() }

// ChannelNotifier delivers sign-ins on a channel. A sign-in arriving while
// an earlier one is still unread is coalesced into it.
type ChannelNotifier struct {
	ch chan struct{}
}

// NewChannelNotifier returns a ChannelNotifier with room for one unread
// sign-in.
func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan struct{}, 1)}
}

// SignedIn queues a sign-in without blocking.
func (n *ChannelNotifier) SignedIn() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// C returns the channel sign-ins are delivered on.
func (n *ChannelNotifier) C() <-chan struct{} {
	return n.ch
}
