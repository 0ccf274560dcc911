package workflows

import (
	"context"
	"sync"
)

// PasswordPrompter asks the user for a password.
//
// ok is false when the user declined or supplied nothing; callers treat that
// as a cancellation, not an error.
type PasswordPrompter interface {
	Ask(ctx context.Context, label string) (password string, ok bool, err error)
}

// PromptFunc adapts a plain function to PasswordPrompter.
type PromptFunc func(ctx context.Context, label string) (string, bool, error)

func (f PromptFunc) Ask(ctx context.Context, label string) (string, bool, error) {
	return f(ctx, label)
}

// StaticPassword answers every prompt with the same password. An empty
// password declines.
func StaticPassword(password string) PasswordPrompter {
	return PromptFunc(func(ctx context.Context, label string) (string, bool, error) {
		return password, password != "", nil
	})
}

// PendingPassword is a single-resolution handle for a password that a host
// supplies later, such as a dialog that is shown after the request is made.
// Only the first Resolve or Decline has an effect.
type PendingPassword struct {
	Label string

	once     sync.Once
	done     chan struct{}
	password string
	ok       bool
}

func newPendingPassword(label string) *PendingPassword {
	return &PendingPassword{Label: label, done: make(chan struct{})}
}

// Resolve supplies the password. An empty password counts as declining.
func (p *PendingPassword) Resolve(password string) {
	p.once.Do(func() {
		p.password = password
		p.ok = password != ""
		close(p.done)
	})
}

// Decline resolves the request without a password.
func (p *PendingPassword) Decline() {
	p.once.Do(func() {
		close(p.done)
	})
}

// Wait blocks until the request is resolved or ctx is done.
func (p *PendingPassword) Wait(ctx context.Context) (string, bool, error) {
	select {
	case <-p.done:
		return p.password, p.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// AsyncPrompter hands each request to Present and waits for the host to
// resolve it. Present must not block; it typically stores the handle and
// shows a dialog.
type AsyncPrompter struct {
	Present func(p *PendingPassword)
}

func (a AsyncPrompter) Ask(ctx context.Context, label string) (string, bool, error) {
	pending := newPendingPassword(label)
	if a.Present == nil {
		pending.Decline()
	} else {
		a.Present(pending)
	}
	return pending.Wait(ctx)
}
