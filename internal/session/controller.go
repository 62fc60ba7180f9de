// Package session owns the authentication state machine. It is the only
// component allowed to write the credential store and the gateway credential,
// which keeps the two in lockstep: a persisted token always has a matching
// in-memory identity and vice versa.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/api"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/credstore"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/gateway"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

// Listener is notified after every identity change. A nil identity means
// logged out.
type Listener func(*model.Identity)

// Controller is a two-state machine: logged out, or logged in with an
// Identity. Transitions happen only through Login, Register, Logout and the
// startup restore in NewController.
type Controller struct {
	store  *credstore.Store
	gw     *gateway.Gateway
	client *api.Client

	mu        sync.RWMutex
	identity  *model.Identity
	listeners []Listener
}

// NewController restores any persisted session: if the store holds a live
// credential the controller starts logged in and configures the gateway with
// its token.
func NewController(store *credstore.Store, gw *gateway.Gateway, client *api.Client) *Controller {
	c := &Controller{store: store, gw: gw, client: client}

	if identity := store.Load(); identity != nil {
		c.identity = identity
		gw.SetCredential(identity.Token)
		log.Printf("[Session] restored session for %s", identity.Username)
	}

	return c
}

// Current returns the active identity, or nil when logged out.
func (c *Controller) Current() *model.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return nil
	}
	identity := *c.identity
	return &identity
}

func (c *Controller) IsAuthenticated() bool {
	return c.Current() != nil
}

// OnChange registers a listener for identity changes. Listeners run
// synchronously on the goroutine performing the transition, in registration
// order.
func (c *Controller) OnChange(fn Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Login exchanges the credentials for a token and transitions to logged in.
// The store and the gateway are updated together or not at all: a failed
// persist leaves the controller logged out with the gateway untouched.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, err := c.client.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	identity := model.Identity{Username: username, Token: token}
	if err := c.store.Save(identity); err != nil {
		log.Printf("[Session] failed to persist credential for %s: %v", username, err)
		return err
	}
	c.gw.SetCredential(token)

	c.mu.Lock()
	c.identity = &identity
	c.mu.Unlock()

	log.Printf("[Session] logged in as %s", username)
	c.notify(&identity)
	return nil
}

// Logout clears the persisted credential and the gateway token and
// transitions to logged out. Calling it while already logged out is a no-op.
func (c *Controller) Logout() {
	c.mu.Lock()
	if c.identity == nil {
		c.mu.Unlock()
		return
	}
	username := c.identity.Username
	c.identity = nil
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		log.Printf("[Session] failed to clear credential file: %v", err)
	}
	c.gw.SetCredential("")

	log.Printf("[Session] logged out %s", username)
	c.notify(nil)
}

// Register validates the credentials client-side, creates the account and
// then behaves exactly like Login.
func (c *Controller) Register(ctx context.Context, username, password, confirm string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return &apperr.ValidationError{Field: "password confirmation", Message: "does not match password"}
	}

	token, err := c.client.Register(ctx, username, password)
	if err != nil {
		return err
	}

	identity := model.Identity{Username: username, Token: token}
	if err := c.store.Save(identity); err != nil {
		log.Printf("[Session] failed to persist credential for %s: %v", username, err)
		return err
	}
	c.gw.SetCredential(token)

	c.mu.Lock()
	c.identity = &identity
	c.mu.Unlock()

	log.Printf("[Session] registered and logged in as %s", username)
	c.notify(&identity)
	return nil
}

func (c *Controller) notify(identity *model.Identity) {
	c.mu.RLock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(identity)
	}
}
