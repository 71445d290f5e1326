package model

// RegistrationStatus is the outcome of a registration attempt.
type RegistrationStatus int

const (
	RegistrationSuccess RegistrationStatus = iota + 1
	RegistrationDuplicate
)

func (s RegistrationStatus) String() string {
	switch s {
	case RegistrationSuccess:
		return "SUCCESS"
	case RegistrationDuplicate:
		return "DUPLICATE"
	default:
		return "UNKNOWN"
	}
}

// FollowStatus is the outcome of a follow or unfollow request.
type FollowStatus int

const (
	FollowSuccess FollowStatus = iota + 1
	FollowAlreadyFollowing
	FollowInvalidUser
	FollowSelf
	FollowNotFollowing
)

func (s FollowStatus) String() string {
	switch s {
	case FollowSuccess:
		return "SUCCESS"
	case FollowAlreadyFollowing:
		return "ALREADY_FOLLOWING"
	case FollowInvalidUser:
		return "INVALID_USER"
	case FollowSelf:
		return "SELF_FOLLOW"
	case FollowNotFollowing:
		return "NOT_FOLLOWING"
	default:
		return "UNKNOWN"
	}
}

// DeleteStatus is the outcome of a delete request.
type DeleteStatus int

const (
	DeleteSuccess DeleteStatus = iota + 1
	DeleteNotYourTwoot
	DeleteUnknownTwoot
)

func (s DeleteStatus) String() string {
	switch s {
	case DeleteSuccess:
		return "SUCCESS"
	case DeleteNotYourTwoot:
		return "NOT_YOUR_TWOOT"
	case DeleteUnknownTwoot:
		return "UNKNOWN_TWOOT"
	default:
		return "UNKNOWN"
	}
}

// PresenceStatus tells whether a user has a connected receiver.
type PresenceStatus int

const (
	Offline PresenceStatus = iota
	Online
)

func (s PresenceStatus) String() string {
	if s == Online {
		return "ONLINE"
	}
	return "OFFLINE"
}
