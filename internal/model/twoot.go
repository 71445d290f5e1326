package model

import "strconv"

// UserID identifies a registered user.
type UserID string

// Position is the global order of posted twoots. It doubles as a replay cursor.
type Position int64

// InitialPosition precedes every assigned position.
const InitialPosition Position = 0

// Next returns the position immediately following p.
func (p Position) Next() Position {
	return p + 1
}

// IsAfter reports whether p comes strictly after other.
func (p Position) IsAfter(other Position) bool {
	return p > other
}

func (p Position) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// Twoot is a single posted message.
type Twoot struct {
	ID       string
	SenderID UserID
	Content  string
	Position Position
}

// TwootQuery selects live twoots from Senders positioned after After.
type TwootQuery struct {
	Senders []UserID
	After   Position
}

// TwootLog is the append-only, globally ordered message log.
type TwootLog interface {
	Append(id string, senderID UserID, content string) (Twoot, error)
	Get(id string) (Twoot, bool)
	Delete(twoot Twoot) bool
	Query(query TwootQuery) []Twoot
	Head() Position
}
