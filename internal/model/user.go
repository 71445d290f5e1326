package model

// UserDirectory owns user records, the follow graph, presence and cursors.
type UserDirectory interface {
	Register(id UserID, credentials Credentials) RegistrationStatus
	Lookup(id UserID) (User, bool)
	SetOnline(id UserID, receiver Receiver) (previous Receiver, err error)
	SetOffline(id UserID) error
	Detach(id UserID, receiver Receiver) bool
	Follow(followerID, followeeID UserID) FollowStatus
	Unfollow(followerID, followeeID UserID) FollowStatus
	OnlineFollowers(id UserID) []Presence
	Following(id UserID) []UserID
	Receiver(id UserID) (Receiver, bool)
	Cursor(id UserID) Position
	AdvanceCursor(id UserID, position Position) bool
}

// Credentials is the stored authentication material of a user.
type Credentials struct {
	Hash []byte
	Salt []byte
}

// User is a read-only snapshot of a user record.
type User struct {
	ID               UserID
	Credentials      Credentials
	Followers        []UserID
	Following        []UserID
	Status           PresenceStatus
	LastSeenPosition Position
}

// Presence pairs an online user with its current receiver.
type Presence struct {
	UserID   UserID
	Receiver Receiver
}
