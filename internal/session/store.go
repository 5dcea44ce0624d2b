package session

// Package session implements the client-side session state machine: the Store
// holds the single source of truth for "who is logged in", and the Controller
// sequences gateway calls, store mutations, and durable token persistence.

import (
	"errors"
	"sort"
	"sync"

	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
)

// ErrOperationInFlight is returned when a session-mutating operation is
// requested while another one is still outstanding.
var ErrOperationInFlight = errors.New("another session operation is in flight")

// Observer receives a copy of the snapshot after every accepted mutation.
type Observer func(domainauth.Snapshot)

// Store holds the current session snapshot and provides atomic mutation
// operations. It is safe for concurrent use. Observers are invoked
// synchronously, outside the lock, in subscription order.
//
// Mutating operations are arbitrated with sequence numbers: BeginAuth issues
// an operation sequence, and completions carrying a sequence at or below the
// last Reset barrier are discarded. This makes Reset (logout) the last-applied
// mutation regardless of how an in-flight operation resolves.
type Store struct {
	mu      sync.Mutex
	snap    domainauth.Snapshot
	seq     uint64 // last issued operation sequence
	barrier uint64 // completions with seq <= barrier are stale
	loading bool

	observers map[int]Observer
	nextObs   int
}

// NewStore creates an empty, anonymous session store.
func NewStore() *Store {
	return &Store{observers: make(map[int]Observer)}
}

// Snapshot returns a copy of the current session state. Side-effect free.
func (s *Store) Snapshot() domainauth.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySnapshot()
}

// Subscribe registers an observer and returns a cancel function.
// The observer is called with the new snapshot after every mutation.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// BeginAuth marks a session-mutating operation as started and returns its
// operation sequence. It fails with ErrOperationInFlight when another mutating
// operation is already outstanding; callers must not interleave two.
func (s *Store) BeginAuth() (uint64, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return 0, ErrOperationInFlight
	}
	s.seq++
	op := s.seq
	s.loading = true
	s.snap.Loading = true
	s.snap.Error = ""
	s.broadcastLocked()
	return op, nil
}

// CompleteAuthSuccess finishes operation op with an authenticated session.
// Stale completions (op issued before the latest Reset) are discarded.
func (s *Store) CompleteAuthSuccess(op uint64, identity domainauth.Identity, token string) {
	s.mu.Lock()
	if op <= s.barrier {
		s.mu.Unlock()
		return
	}
	id := identity
	s.snap.Identity = &id
	s.snap.Token = token
	s.snap.Authenticated = true
	s.snap.Loading = false
	s.snap.Error = ""
	s.loading = false
	s.broadcastLocked()
}

// CompleteAuthFailure finishes operation op with an anonymous, errored session.
// An empty message records the failure without surfacing text to the UI
// (used by the quiet startup restore).
func (s *Store) CompleteAuthFailure(op uint64, message string) {
	s.mu.Lock()
	if op <= s.barrier {
		s.mu.Unlock()
		return
	}
	s.snap.Identity = nil
	s.snap.Token = ""
	s.snap.Authenticated = false
	s.snap.Loading = false
	s.snap.Error = message
	s.loading = false
	s.broadcastLocked()
}

// UpdateAvatar patches the identity's avatar fields in place. It is a silent
// no-op when no identity is present: an avatar update cannot outlive its
// owning identity (e.g. the user logged out while an upload was in flight).
func (s *Store) UpdateAvatar(avatar, avatarURL string) {
	s.mu.Lock()
	if s.snap.Identity == nil {
		s.mu.Unlock()
		return
	}
	id := *s.snap.Identity
	id.Avatar = avatar
	id.AvatarURL = avatarURL
	s.snap.Identity = &id
	s.broadcastLocked()
}

// SetSuccessMessage records transient confirmation text (password reset flows).
func (s *Store) SetSuccessMessage(message string) {
	s.mu.Lock()
	s.snap.SuccessMessage = message
	s.broadcastLocked()
}

// SetError records a transient error message without touching identity/token.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	s.snap.Error = message
	s.broadcastLocked()
}

// ClearError resets the transient error text.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.snap.Error = ""
	s.broadcastLocked()
}

// ClearMessage resets the transient success text.
func (s *Store) ClearMessage() {
	s.mu.Lock()
	s.snap.SuccessMessage = ""
	s.broadcastLocked()
}

// MarkBooted latches the boot flag. The flag never reverts; the authorization
// gate relies on this to stop answering Pending after the first resolution.
func (s *Store) MarkBooted() {
	s.mu.Lock()
	s.snap.Booted = true
	s.broadcastLocked()
}

// Reset returns the store to the fully anonymous snapshot and raises the
// completion barrier so that any outstanding operation's completion is
// discarded. Used by logout and by irrecoverable identity-fetch failure.
// The Booted latch survives.
func (s *Store) Reset() {
	s.mu.Lock()
	s.seq++
	s.barrier = s.seq
	booted := s.snap.Booted
	s.snap = domainauth.Snapshot{Booted: booted}
	s.loading = false
	s.broadcastLocked()
}

// Superseded reports whether operation op has been invalidated by a Reset.
// Completions for superseded operations are discarded; callers use this to
// avoid re-persisting credentials after a logout won the race.
func (s *Store) Superseded(op uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return op <= s.barrier
}

// copySnapshot must be called with the lock held.
func (s *Store) copySnapshot() domainauth.Snapshot {
	snap := s.snap
	snap.Seq = s.seq
	if s.snap.Identity != nil {
		id := *s.snap.Identity
		snap.Identity = &id
	}
	return snap
}

// broadcastLocked snapshots the observers and state, releases the lock, and
// notifies. Callers must hold the lock; it is released on return.
func (s *Store) broadcastLocked() {
	snap := s.copySnapshot()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	obs := make([]Observer, 0, len(ids))
	for _, id := range ids {
		obs = append(obs, s.observers[id])
	}
	s.mu.Unlock()
	for _, fn := range obs {
		fn(snap)
	}
}
