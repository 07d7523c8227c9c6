package differenzler

import (
	"context"
)

type (
	statusMove struct {
		from, to Status
	}

	// Snapshot site numbers served on /status
	Snapshot struct {
		Connections int            `json:"connections"`
		Sessions    map[string]int `json:"sessions"`
	}

	// Counter counts connections and sessions per status on a single goroutine.
	Counter struct {
		ctx context.Context

		connJoins  chan string
		connLeaves chan string
		moves      chan statusMove
		queries    chan chan Snapshot

		connections int
		sessions    map[Status]int
	}
)

func NewCounterService(pid context.Context) *Counter {
	counter := &Counter{
		ctx:        pid,
		connJoins:  make(chan string),
		connLeaves: make(chan string),
		moves:      make(chan statusMove),
		queries:    make(chan chan Snapshot),
		sessions:   make(map[Status]int),
	}
	go counter.chanLoop()
	return counter
}

func (br *Counter) chanLoop() {
	for {
		select {
		case <-br.ctx.Done():
			return
		case <-br.connJoins:
			br.connections++
		case <-br.connLeaves:
			if br.connections > 0 {
				br.connections--
			}
		case mv := <-br.moves:
			if mv.from != StatusNone && br.sessions[mv.from] > 0 {
				br.sessions[mv.from]--
			}
			if mv.to != StatusNone {
				br.sessions[mv.to]++
			}
		case reply := <-br.queries:
			snap := Snapshot{Connections: br.connections, Sessions: make(map[string]int, len(br.sessions))}
			for st, n := range br.sessions {
				if n > 0 {
					snap.Sessions[st.String()] = n
				}
			}
			reply <- snap
		}
	}
}

// ConnAdd a connection joined the namespace.
func (br *Counter) ConnAdd(connID string) {
	select {
	case br.connJoins <- connID:
	case <-br.ctx.Done():
	}
}

// ConnSub a connection left the namespace or dropped.
func (br *Counter) ConnSub(connID string) {
	select {
	case br.connLeaves <- connID:
	case <-br.ctx.Done():
	}
}

// SessionMove moves one session between status buckets; StatusNone on either side adds or removes it.
func (br *Counter) SessionMove(from, to Status) {
	select {
	case br.moves <- statusMove{from: from, to: to}:
	case <-br.ctx.Done():
	}
}

// GetSnapshot current numbers; zero value once the counter stopped.
func (br *Counter) GetSnapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	select {
	case br.queries <- reply:
		return <-reply
	case <-br.ctx.Done():
		return Snapshot{Sessions: map[string]int{}}
	}
}
