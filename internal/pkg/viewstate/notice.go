package viewstate

import "time"

// NoticeTimeout is how long a success message stays on screen.
const NoticeTimeout = 4 * time.Second

// Notice is a success message that clears itself after a timeout. Like
// Scope it is guarded by the owning controller's mutex. The expire callback
// runs on its own goroutine without that mutex held.
type Notice struct {
	message string
	seq     uint64
	timer   *time.Timer
}

func (n *Notice) Message() string { return n.message }

// Show replaces the message. After d, expire receives the token of this
// message, which the owner passes back to Expire. With d <= 0 the message
// stays until cleared.
func (n *Notice) Show(message string, d time.Duration, expire func(Token)) {
	n.Clear()
	n.message = message
	if d > 0 && expire != nil {
		tok := Token(n.seq)
		n.timer = time.AfterFunc(d, func() { expire(tok) })
	}
}

// Expire clears the message only if tok still identifies it. It reports
// whether anything was cleared.
func (n *Notice) Expire(tok Token) bool {
	if Token(n.seq) != tok || n.message == "" {
		return false
	}
	n.Clear()
	return true
}

// Clear removes the message and disarms its timer.
func (n *Notice) Clear() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.message = ""
}
