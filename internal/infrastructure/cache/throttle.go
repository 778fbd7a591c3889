package cache

import (
	"context"
	"time"
)

// LoginThrottle allows one login request per email per window
type LoginThrottle struct {
	store  Store
	window time.Duration
}

// NewLoginThrottle creates a throttle over store
func NewLoginThrottle(store Store, window time.Duration) *LoginThrottle {
	return &LoginThrottle{store: store, window: window}
}

// Allow claims the window for email. It returns false while a previous claim is live.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	return t.store.SetNX(ctx, "login:"+email, []byte("1"), t.window)
}

// Release drops the claim for email so a new request is allowed at once
func (t *LoginThrottle) Release(ctx context.Context, email string) error {
	return t.store.Delete(ctx, "login:"+email)
}

// Window returns the throttle window length
func (t *LoginThrottle) Window() time.Duration {
	return t.window
}
