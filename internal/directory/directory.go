// Package directory keeps user records, the follow graph, presence and
// per-user replay cursors.
//
// Each record has its own mutex. Operations touching two records lock them
// in UserID order. The directory never calls a Receiver.
package directory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dtroode/twooter-server/internal/model"
)

var _ model.UserDirectory = (*Directory)(nil)

type record struct {
	mu          sync.Mutex
	id          model.UserID
	credentials model.Credentials
	followers   map[model.UserID]struct{}
	following   map[model.UserID]struct{}
	receiver    model.Receiver
	cursor      model.Position
}

// Directory is an in-memory UserDirectory safe for concurrent use.
type Directory struct {
	mu    sync.RWMutex
	users map[model.UserID]*record
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{users: make(map[model.UserID]*record)}
}

// Register creates an offline user with empty follow sets.
func (d *Directory) Register(id model.UserID, credentials model.Credentials) model.RegistrationStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; ok {
		return model.RegistrationDuplicate
	}

	d.users[id] = &record{
		id:          id,
		credentials: credentials,
		followers:   make(map[model.UserID]struct{}),
		following:   make(map[model.UserID]struct{}),
		cursor:      model.InitialPosition,
	}

	return model.RegistrationSuccess
}

// Lookup returns a snapshot of the user.
func (d *Directory) Lookup(id model.UserID) (model.User, bool) {
	r, ok := d.get(id)
	if !ok {
		return model.User{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	status := model.Offline
	if r.receiver != nil {
		status = model.Online
	}

	return model.User{
		ID: r.id,
		Credentials: model.Credentials{
			Hash: slices.Clone(r.credentials.Hash),
			Salt: slices.Clone(r.credentials.Salt),
		},
		Followers:        sortedIDs(r.followers),
		Following:        sortedIDs(r.following),
		Status:           status,
		LastSeenPosition: r.cursor,
	}, true
}

// SetOnline stores receiver for the user and returns the receiver it
// replaced, if any.
func (d *Directory) SetOnline(id model.UserID, receiver model.Receiver) (model.Receiver, error) {
	if receiver == nil {
		return nil, fmt.Errorf("set online %q: nil receiver: %w", id, model.ErrInvalidArgument)
	}

	r, ok := d.get(id)
	if !ok {
		return nil, fmt.Errorf("set online %q: %w", id, model.ErrUnknownUser)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.receiver
	r.receiver = receiver

	return previous, nil
}

// SetOffline clears the user's receiver. The cursor is left untouched.
func (d *Directory) SetOffline(id model.UserID) error {
	r, ok := d.get(id)
	if !ok {
		return fmt.Errorf("set offline %q: %w", id, model.ErrUnknownUser)
	}

	r.mu.Lock()
	r.receiver = nil
	r.mu.Unlock()

	return nil
}

// Detach sets the user offline only if receiver is still the current one.
func (d *Directory) Detach(id model.UserID, receiver model.Receiver) bool {
	r, ok := d.get(id)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.receiver == nil || r.receiver != receiver {
		return false
	}
	r.receiver = nil

	return true
}

// Follow adds the edge followerID -> followeeID.
func (d *Directory) Follow(followerID, followeeID model.UserID) model.FollowStatus {
	if followerID == followeeID {
		return model.FollowSelf
	}

	follower, followee, ok := d.pair(followerID, followeeID)
	if !ok {
		return model.FollowInvalidUser
	}

	unlock := lockPair(follower, followee)
	defer unlock()

	if _, exists := follower.following[followeeID]; exists {
		return model.FollowAlreadyFollowing
	}

	follower.following[followeeID] = struct{}{}
	followee.followers[followerID] = struct{}{}

	return model.FollowSuccess
}

// Unfollow removes the edge followerID -> followeeID.
func (d *Directory) Unfollow(followerID, followeeID model.UserID) model.FollowStatus {
	if followerID == followeeID {
		return model.FollowSelf
	}

	follower, followee, ok := d.pair(followerID, followeeID)
	if !ok {
		return model.FollowInvalidUser
	}

	unlock := lockPair(follower, followee)
	defer unlock()

	if _, exists := follower.following[followeeID]; !exists {
		return model.FollowNotFollowing
	}

	delete(follower.following, followeeID)
	delete(followee.followers, followerID)

	return model.FollowSuccess
}

// OnlineFollowers returns the followers of id that currently have a
// receiver, sorted by UserID.
func (d *Directory) OnlineFollowers(id model.UserID) []model.Presence {
	r, ok := d.get(id)
	if !ok {
		return nil
	}

	r.mu.Lock()
	followers := sortedIDs(r.followers)
	r.mu.Unlock()

	var online []model.Presence
	for _, followerID := range followers {
		receiver, ok := d.Receiver(followerID)
		if !ok {
			continue
		}
		online = append(online, model.Presence{UserID: followerID, Receiver: receiver})
	}

	return online
}

// Following returns the ids id follows, sorted.
func (d *Directory) Following(id model.UserID) []model.UserID {
	r, ok := d.get(id)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedIDs(r.following)
}

// Receiver returns the user's current receiver.
func (d *Directory) Receiver(id model.UserID) (model.Receiver, bool) {
	r, ok := d.get(id)
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.receiver, r.receiver != nil
}

// Cursor returns the user's last seen position.
func (d *Directory) Cursor(id model.UserID) model.Position {
	r, ok := d.get(id)
	if !ok {
		return model.InitialPosition
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cursor
}

// AdvanceCursor moves the cursor to position if it is after the current one.
func (d *Directory) AdvanceCursor(id model.UserID, position model.Position) bool {
	r, ok := d.get(id)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !position.IsAfter(r.cursor) {
		return false
	}
	r.cursor = position

	return true
}

func (d *Directory) get(id model.UserID) (*record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.users[id]
	return r, ok
}

func (d *Directory) pair(a, b model.UserID) (*record, *record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ra, okA := d.users[a]
	rb, okB := d.users[b]

	return ra, rb, okA && okB
}

// lockPair locks two distinct records in UserID order.
func lockPair(a, b *record) func() {
	first, second := a, b
	if second.id < first.id {
		first, second = second, first
	}

	first.mu.Lock()
	second.mu.Lock()

	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func sortedIDs(set map[model.UserID]struct{}) []model.UserID {
	ids := make([]model.UserID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
