// Package twootlog holds the globally ordered, append-only twoot log.
//
// Positions are assigned under the write lock together with the insertion,
// so no reader can observe a position before its twoot is queryable.
// Deleted twoots leave a hole; positions and ids are never reused.
package twootlog

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/dtroode/twooter-server/internal/model"
)

var _ model.TwootLog = (*Log)(nil)

type entry struct {
	twoot model.Twoot
	live  bool
}

// Log is an in-memory TwootLog safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	head    model.Position
	entries []entry
	byID    map[string]int
	retired map[string]struct{}
}

// New creates an empty log positioned at model.InitialPosition.
func New() *Log {
	return &Log{
		head:    model.InitialPosition,
		byID:    make(map[string]int),
		retired: make(map[string]struct{}),
	}
}

// Append stores a twoot at the next position.
func (l *Log) Append(id string, senderID model.UserID, content string) (model.Twoot, error) {
	if id == "" || senderID == "" {
		return model.Twoot{}, fmt.Errorf("append twoot: %w", model.ErrInvalidArgument)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[id]; ok {
		return model.Twoot{}, fmt.Errorf("append twoot %q: %w", id, model.ErrDuplicateTwootID)
	}
	if _, ok := l.retired[id]; ok {
		return model.Twoot{}, fmt.Errorf("append twoot %q: %w", id, model.ErrDuplicateTwootID)
	}

	l.head = l.head.Next()
	twoot := model.Twoot{
		ID:       id,
		SenderID: senderID,
		Content:  content,
		Position: l.head,
	}

	l.entries = append(l.entries, entry{twoot: twoot, live: true})
	l.byID[id] = len(l.entries) - 1

	return twoot, nil
}

// Get returns the live twoot with the given id.
func (l *Log) Get(id string) (model.Twoot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[id]
	if !ok {
		return model.Twoot{}, false
	}
	return l.entries[idx].twoot, true
}

// Delete removes twoot from the live set. It reports false when the twoot is
// not live, including when a different twoot now holds the id.
func (l *Log) Delete(twoot model.Twoot) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.byID[twoot.ID]
	if !ok || l.entries[idx].twoot.Position != twoot.Position {
		return false
	}

	l.entries[idx].live = false
	delete(l.byID, twoot.ID)
	l.retired[twoot.ID] = struct{}{}

	return true
}

// Query returns, in position order, every live twoot sent by one of
// query.Senders and positioned after query.After. The result is a copy and
// may be re-requested at will.
func (l *Log) Query(query model.TwootQuery) []model.Twoot {
	if len(query.Senders) == 0 {
		return nil
	}

	senders := make(map[model.UserID]struct{}, len(query.Senders))
	for _, id := range query.Senders {
		senders[id] = struct{}{}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	// entries are sorted by position
	start := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].twoot.Position.IsAfter(query.After)
	})

	var result []model.Twoot
	for _, e := range l.entries[start:] {
		if !e.live {
			continue
		}
		if _, ok := senders[e.twoot.SenderID]; ok {
			result = append(result, e.twoot)
		}
	}

	return slices.Clip(result)
}

// Head returns the last assigned position.
func (l *Log) Head() model.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.head
}
