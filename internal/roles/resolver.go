// Package roles derives the elevated-privilege flag for the current
// identity. The flag is recomputed on every identity change; a resolution is
// tagged with the generation it was requested for, so a response that arrives
// after the identity changed again is discarded rather than leaking one
// user's flag to the next.
package roles

import (
	"context"
	"log"
	"sync"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

// AdminChecker is the one backend lookup the resolver needs; *api.Client
// satisfies it.
type AdminChecker interface {
	IsAdmin(ctx context.Context, username string) (bool, error)
}

type Resolver struct {
	client AdminChecker

	mu       sync.Mutex
	gen      int
	admin    bool
	resolved bool
	done     chan struct{}
}

func NewResolver(client AdminChecker) *Resolver {
	r := &Resolver{client: client, resolved: true, done: make(chan struct{})}
	close(r.done)
	return r
}

// IdentityChanged starts a fresh resolution for the given identity,
// invalidating any in-flight one. Pass it to session.Controller.OnChange and
// call it once with the restored identity at startup.
func (r *Resolver) IdentityChanged(identity *model.Identity) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if !r.resolved {
		// Release anyone awaiting the superseded identity's flag; they will
		// read the conservative default.
		close(r.done)
	}
	r.admin = false
	r.resolved = identity == nil
	r.done = make(chan struct{})
	done := r.done
	if identity == nil {
		close(done)
		r.mu.Unlock()
		return
	}
	username := identity.Username
	r.mu.Unlock()

	go func() {
		admin, err := r.client.IsAdmin(context.Background(), username)
		if err != nil {
			// Conservative default: an unanswered lookup is not elevated.
			log.Printf("[Roles] admin lookup for %s failed: %v", username, err)
			admin = false
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.gen {
			log.Printf("[Roles] discarding stale admin result for %s", username)
			return
		}
		r.admin = admin
		r.resolved = true
		close(done)
	}()
}

// IsAdmin returns the flag for the current identity; false while a
// resolution is still in flight.
func (r *Resolver) IsAdmin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved && r.admin
}

// Await blocks until the in-flight resolution for the current identity
// completes, then returns the flag.
func (r *Resolver) Await(ctx context.Context) (bool, error) {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-done:
		return r.IsAdmin(), nil
	}
}
