package screens

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/khabaroff/missing-persons-portal/src/session"
)

// Client groups the screens of one browser
type Client struct {
	ID         string
	Session    *session.Context
	Login      *Login
	AdminLogin *AdminLogin
	SignUp     *SignUp
	Submission *Submission
	Home       *Home
	Dashboard  *Dashboard
}

// Registry keeps the screen state of recently active browsers. Idle entries
// expire and are rebuilt empty on the next request, like a page reload.
type Registry struct {
	mu      sync.Mutex
	deps    Deps
	storage session.Storage
	clients *expirable.LRU[string, *Client]
}

// NewRegistry creates a registry holding at most size browsers for idleTTL each
func NewRegistry(deps Deps, storage session.Storage, size int, idleTTL time.Duration) *Registry {
	if size <= 0 {
		size = 1000
	}
	return &Registry{
		deps:    deps,
		storage: storage,
		clients: expirable.NewLRU[string, *Client](size, nil, idleTTL),
	}
}

// Get returns the screens of clientID, creating them on first use
func (r *Registry) Get(clientID string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients.Get(clientID); ok {
		// Re-adding refreshes the idle deadline
		r.clients.Add(clientID, c)
		return c
	}

	sc := session.For(r.storage, clientID)
	c := &Client{
		ID:         clientID,
		Session:    sc,
		Login:      newLogin(r.deps, sc),
		AdminLogin: newAdminLogin(r.deps, sc),
		SignUp:     newSignUp(r.deps, sc),
		Submission: newSubmission(r.deps, sc),
		Home:       newHome(r.deps, sc),
		Dashboard:  newDashboard(r.deps, sc),
	}
	r.clients.Add(clientID, c)
	return c
}

// Len returns the number of browsers with live screen state
func (r *Registry) Len() int {
	return r.clients.Len()
}
