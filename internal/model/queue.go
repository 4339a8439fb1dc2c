package model

import (
	"errors"
	"sync"
	"time"
)

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	ID       string
	User     string
	JoinedAt time.Time
}

// MatchFoundEvent tells a queued player which room it was paired into.
type MatchFoundEvent struct {
	GameID string `json:"roomId"`
	Room   string `json:"room"`
	Role   Role   `json:"role"`
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(id, user string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.ID == id {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		ID:       id,
		User:     user,
		JoinedAt: time.Now(),
	})
	return nil
}

// RemovePlayer drops a player that gave up waiting.
func (q *Queue) RemovePlayer(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.ID == id {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetNextPair pops the two players who have waited longest. ok is false
// when fewer than two are waiting.
func (q *Queue) GetNextPair() (QueuedPlayer, QueuedPlayer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	player1 := q.players[0]
	player2 := q.players[1]
	q.players = q.players[2:]
	return player1, player2, true
}

func (q *Queue) Contains(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range q.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ContainsUser reports whether a queued player goes by user.
func (q *Queue) ContainsUser(user string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range q.players {
		if p.User == user {
			return true
		}
	}
	return false
}

// Requeue puts p back at the head of the queue, keeping its place in line.
func (q *Queue) Requeue(p QueuedPlayer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, queued := range q.players {
		if queued.ID == p.ID {
			return
		}
	}
	q.players = append([]QueuedPlayer{p}, q.players...)
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
