package wire

// RegisterRequest carries the credentials of a new user.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Status string `json:"status"`
}

// LogonRequest opens the event stream of a user.
type LogonRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Event is one item of the Logon stream. Exactly one field is set; the first
// event of a stream is always Session.
type Event struct {
	Session *SessionEvent `json:"session,omitempty"`
	Twoot   *TwootEvent   `json:"twoot,omitempty"`
}

// SessionEvent hands out the bearer token for the unary RPCs.
type SessionEvent struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type TwootEvent struct {
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
	Position int64  `json:"position"`
}

// FollowRequest names the user to follow or unfollow.
type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct {
	Status string `json:"status"`
}

type SendTwootRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type SendTwootResponse struct {
	Position int64 `json:"position"`
}

type DeleteTwootRequest struct {
	ID string `json:"id"`
}

type DeleteTwootResponse struct {
	Status string `json:"status"`
}

type Empty struct{}
