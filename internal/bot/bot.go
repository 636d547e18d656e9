package bot

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gamey/internal/domain/board"
	errs "gamey/internal/errors"
)

const RandomBotID = "random_bot"

// Strategy picks a move for the player whose turn it is. The engine does
// not trust the answer: the coordinate is applied like any human move.
type Strategy interface {
	ID() string
	ChooseMove(s board.State) (board.Coordinates, error)
}

// RandomBot plays a uniformly random empty cell.
type RandomBot struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomBot(rnd *rand.Rand) *RandomBot {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{rnd: rnd}
}

func (b *RandomBot) ID() string { return RandomBotID }

func (b *RandomBot) ChooseMove(s board.State) (board.Coordinates, error) {
	if s.Finished() {
		return board.Coordinates{}, errs.ErrGameAlreadyFinished
	}
	free := s.EmptyCells()
	if len(free) == 0 {
		return board.Coordinates{}, errs.ErrNoLegalMoves
	}
	b.mu.Lock()
	i := b.rnd.Intn(len(free))
	b.mu.Unlock()
	return free[i], nil
}

// Registry maps bot ids to strategies. It is safe for concurrent lookups.
type Registry struct {
	mu   sync.RWMutex
	bots map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{bots: make(map[string]Strategy)}
}

// DefaultRegistry holds the built-in bots.
func DefaultRegistry() *Registry {
	return NewRegistry().With(NewRandomBot(nil))
}

// With registers s under its id, replacing any previous bot with that id.
func (r *Registry) With(s Strategy) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bots[s.ID()] = s
	return r
}

func (r *Registry) Get(id string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.bots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrBotNotFound, id)
	}
	return s, nil
}

// IDs lists registered bots in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.bots))
	for id := range r.bots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Choose asks bot id for a move on s.
func (r *Registry) Choose(id string, s board.State) (board.Coordinates, error) {
	strategy, err := r.Get(id)
	if err != nil {
		return board.Coordinates{}, err
	}
	return strategy.ChooseMove(s)
}
