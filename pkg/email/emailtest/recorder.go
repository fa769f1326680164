// Package emailtest provides an in-memory email.Mailer for tests.
package emailtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ashleighd/voice-coaching-backend/pkg/email"
)

// Recorder keeps every message it is asked to send. When Err is set, Send
// records the message and then fails with Err.
type Recorder struct {
	mu       sync.Mutex
	messages []email.Message
	Err      error
}

func (r *Recorder) Send(_ context.Context, msg email.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
	if r.Err != nil {
		return "", r.Err
	}
	return fmt.Sprintf("msg_%d", len(r.messages)), nil
}

func (r *Recorder) Messages() []email.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]email.Message, len(r.messages))
	copy(out, r.messages)
	return out
}
