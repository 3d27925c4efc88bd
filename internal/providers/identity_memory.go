package providers

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryIdentity mirrors the demo identity mock: any credentials sign in,
// accounts are synthesized from the clock, and the single session lives in
// memory with a fixed expiry.
type MemoryIdentity struct {
	mu            sync.Mutex
	delay         time.Duration
	sessionExpiry time.Duration
	now           func() time.Time

	account *Account
	expires time.Time
}

func NewMemoryIdentity(delay, sessionExpiry time.Duration) *MemoryIdentity {
	return &MemoryIdentity{
		delay:         delay,
		sessionExpiry: sessionExpiry,
		now:           time.Now,
	}
}

func (p *MemoryIdentity) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *MemoryIdentity) SignUp(ctx context.Context, email, password string) (*Account, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	now := p.now()
	account := &Account{
		ID:        fmt.Sprintf("user_%d", now.UnixMilli()),
		Email:     email,
		CreatedAt: now,
	}

	p.mu.Lock()
	p.account = account
	p.expires = now.Add(p.sessionExpiry)
	p.mu.Unlock()

	return account, nil
}

func (p *MemoryIdentity) SignIn(ctx context.Context, email, password string) (*Account, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	now := p.now()
	account := &Account{
		ID:        fmt.Sprintf("user_%d", now.UnixMilli()),
		Email:     email,
		CreatedAt: now.AddDate(0, 0, -30),
	}

	p.mu.Lock()
	p.account = account
	p.expires = now.Add(p.sessionExpiry)
	p.mu.Unlock()

	return account, nil
}

func (p *MemoryIdentity) SignOut(ctx context.Context) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	p.account = nil
	p.expires = time.Time{}
	p.mu.Unlock()
	return nil
}

func (p *MemoryIdentity) GetUser(ctx context.Context) (*Account, error) {
	session, err := p.GetSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &session.Account, nil
}

func (p *MemoryIdentity) GetSession(_ context.Context) (*AuthSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.account == nil {
		return nil, nil
	}
	if p.now().After(p.expires) {
		p.account = nil
		return nil, nil
	}
	return &AuthSession{Account: *p.account, ExpiresAt: p.expires}, nil
}
