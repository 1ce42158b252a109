package auth

// Package auth contains simple hand-written test doubles for gateway ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/domain/model"
	"github.com/newsboard/newsboard/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthGateway = (*FakeAuthGateway)(nil)
	_ ports.NewsGateway = (*FakeNewsGateway)(nil)
)

// FakeAuthGateway answers auth calls with fixed replies and records what it received.
type FakeAuthGateway struct {
	LoginFunc  func(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error)
	SignupFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error)

	// Deterministic defaults used when the funcs are nil.
	LoginReply  domainauth.Reply
	SignupReply domainauth.Reply

	mu      sync.Mutex
	logins  []domainauth.Credentials
	signups []domainauth.Credentials
}

// NewFakeAuthGateway creates a FakeAuthGateway that accepts every login and signup.
func NewFakeAuthGateway() *FakeAuthGateway {
	return &FakeAuthGateway{
		LoginReply:  domainauth.Reply{StatusCode: 200, Message: "Login success"},
		SignupReply: domainauth.Reply{StatusCode: 201, Message: "Signup success"},
	}
}

func (f *FakeAuthGateway) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error) {
	f.mu.Lock()
	f.logins = append(f.logins, creds)
	f.mu.Unlock()
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	return f.LoginReply, nil
}

func (f *FakeAuthGateway) Signup(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error) {
	f.mu.Lock()
	f.signups = append(f.signups, creds)
	f.mu.Unlock()
	if f.SignupFunc != nil {
		return f.SignupFunc(ctx, creds)
	}
	return f.SignupReply, nil
}

// Logins returns a copy of the credentials passed to Login.
func (f *FakeAuthGateway) Logins() []domainauth.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainauth.Credentials(nil), f.logins...)
}

// Signups returns a copy of the credentials passed to Signup.
func (f *FakeAuthGateway) Signups() []domainauth.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainauth.Credentials(nil), f.signups...)
}

// FakeNewsGateway serves a fixed list and records created items.
type FakeNewsGateway struct {
	ListFunc   func(ctx context.Context) (model.NewsList, error)
	CreateFunc func(ctx context.Context, req model.CreateNewsRequest) error

	Items []model.NewsItem

	mu      sync.Mutex
	created []model.CreateNewsRequest
}

func (f *FakeNewsGateway) List(ctx context.Context) (model.NewsList, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	items := f.Items
	if items == nil {
		items = []model.NewsItem{}
	}
	return model.NewsList{Shape: model.NewsListShapeArray, Items: items}, nil
}

func (f *FakeNewsGateway) Create(ctx context.Context, req model.CreateNewsRequest) error {
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, req)
	}
	return nil
}

// Created returns a copy of the requests passed to Create.
func (f *FakeNewsGateway) Created() []model.CreateNewsRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CreateNewsRequest(nil), f.created...)
}
