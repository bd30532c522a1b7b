package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nmoreno/brisca/internal/deck"
)

const (
	// MaxPlayers caps the seat count a room may be created with
	MaxPlayers = 10

	// DefaultMaxPlayers is used when a room is created without a seat count
	DefaultMaxPlayers = 4

	// TargetScore ends the game once any player's running total reaches it
	TargetScore = 41

	// botPlayLimit bounds how many bot plays a single ResolveBotTurns call
	// may attempt
	botPlayLimit = 50
)

// trickPlay pairs a seated player with the card they committed this trick
type trickPlay struct {
	player *Player
	card   deck.Card
}

// Room is the state machine for one game: membership, turn order, trick
// resolution, scoring and bot auto-play. Every exported method serializes on
// the room mutex, so multi-step sequences like trick resolution and the
// round-end redeal are atomic to observers. Distinct rooms are fully
// independent.
type Room struct {
	id         string
	maxPlayers int

	mu      sync.Mutex
	players []*Player // seat order = join order = turn order
	started bool
	trick   []trickPlay
	turn    int
	round   int
	botSeq  int

	rng    *rand.Rand
	logger *log.Logger
}

// NewRoom creates an empty room. maxPlayers is clamped to [2, MaxPlayers];
// zero or negative falls back to DefaultMaxPlayers. The rng drives shuffles
// and bot card choices for this room only.
func NewRoom(id string, maxPlayers int, rng *rand.Rand, logger *log.Logger) *Room {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	if maxPlayers < 2 {
		maxPlayers = 2
	}
	if maxPlayers > MaxPlayers {
		maxPlayers = MaxPlayers
	}

	return &Room{
		id:         id,
		maxPlayers: maxPlayers,
		rng:        rng,
		logger:     logger.WithPrefix("room").With("room", id),
	}
}

// ID returns the room id
func (r *Room) ID() string {
	return r.id
}

// MaxPlayers returns the seat cap
func (r *Room) MaxPlayers() int {
	return r.maxPlayers
}

// Len returns the number of seated players
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// IsFull reports whether every seat is taken
func (r *Room) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) >= r.maxPlayers
}

// Started reports whether a game is in progress
func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Round returns the current round counter. A round is one deal-to-empty
// cycle; both StartGame and the automatic redeal advance it.
func (r *Room) Round() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// Player returns the seated player with the given id
func (r *Room) Player(id string) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.playerLocked(id)
	return p, p != nil
}

// Players returns a snapshot of the seats in turn order
func (r *Room) Players() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Room) playerLocked(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPlayer seats a human at the end of the turn order. Joining is rejected
// once a game has started.
func (r *Room) AddPlayer(id, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil, ErrGameInProgress
	}
	if len(r.players) >= r.maxPlayers {
		return nil, ErrRoomFull
	}

	p := &Player{ID: id, Name: name}
	r.players = append(r.players, p)
	r.logger.Info("player joined", "player", name, "seats", len(r.players))
	return p, nil
}

// AddBot seats a bot with a synthetic id that stays unique for the lifetime
// of the room. Bots are never removed except with the room itself.
func (r *Room) AddBot(name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil, ErrGameInProgress
	}
	if len(r.players) >= r.maxPlayers {
		return nil, ErrRoomFull
	}

	p := &Player{ID: fmt.Sprintf("bot-%d", r.botSeq), Name: name, IsBot: true}
	r.botSeq++
	r.players = append(r.players, p)
	r.logger.Info("bot added", "bot", name, "id", p.ID, "seats", len(r.players))
	return p, nil
}

// RemovePlayerByID removes the first seat whose id matches and reports
// whether a removal occurred. Any card the leaver committed to the open
// trick is withdrawn and the turn index is re-indexed so the same
// next-to-act seat keeps the turn. A started game left with fewer than two
// players reverts to not-started.
func (r *Room) RemovePlayerByID(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := -1
	for i, p := range r.players {
		if p.ID == id {
			seat = i
			break
		}
	}
	if seat < 0 {
		return false
	}

	leaver := r.players[seat]
	r.players = append(r.players[:seat], r.players[seat+1:]...)
	for i, tp := range r.trick {
		if tp.player == leaver {
			r.trick = append(r.trick[:i], r.trick[i+1:]...)
			break
		}
	}

	if len(r.players) == 0 {
		r.started = false
		r.turn = 0
		return true
	}

	if seat < r.turn {
		r.turn--
	}
	if r.turn >= len(r.players) {
		r.turn = 0
	}

	if r.started && len(r.players) < 2 {
		r.started = false
		r.trick = r.trick[:0]
	}

	// the leaver may have been the only seat the trick was waiting on
	if r.started && len(r.trick) > 0 && len(r.trick) == len(r.players) {
		r.resolveTrickLocked()
		r.checkRoundEndLocked()
	}

	r.logger.Info("player removed", "player", leaver.Name, "seats", len(r.players))
	return true
}

// StartGame deals a fresh deck evenly across the seats and opens play at
// seat zero. Hands and won piles reset; the round counter advances.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrGameInProgress
	}
	if len(r.players) < 2 {
		return ErrNotEnoughPlayers
	}

	r.started = true
	r.round++
	for _, p := range r.players {
		p.won = nil
	}
	r.dealLocked()
	r.logger.Info("game started", "round", r.round, "players", len(r.players))
	return nil
}

// dealLocked hands out a fresh shuffled deck and resets the trick and turn.
// Won piles are left alone: scores accumulate across deals.
func (r *Room) dealLocked() {
	hands := deck.New(r.rng).Deal(len(r.players))
	for i, p := range r.players {
		p.hand = hands[i]
	}
	r.trick = r.trick[:0]
	r.turn = 0
}

// PlayCard plays the given card for the identified player. On success the
// card moves from the hand into the open trick and the turn advances; a
// trick that becomes full is resolved before PlayCard returns. Every
// rejection leaves the room untouched.
func (r *Room) PlayCard(playerID string, card deck.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playCardLocked(playerID, card)
}

func (r *Room) playCardLocked(playerID string, card deck.Card) error {
	if !r.started {
		return ErrNotStarted
	}
	p := r.playerLocked(playerID)
	if p == nil {
		return ErrPlayerNotInRoom
	}
	if r.players[r.turn] != p {
		return ErrNotYourTurn
	}

	idx := -1
	for i, c := range p.hand {
		if c == card {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}

	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	r.trick = append(r.trick, trickPlay{player: p, card: card})
	r.turn = (r.turn + 1) % len(r.players)

	if len(r.trick) == len(r.players) {
		r.resolveTrickLocked()
	}
	return nil
}

// resolveTrickLocked awards a full trick: the strongest card wins, the
// winner collects every card played and leads the next trick.
func (r *Room) resolveTrickLocked() {
	best := 0
	for i := 1; i < len(r.trick); i++ {
		if r.trick[i].card.Beats(r.trick[best].card) {
			best = i
		}
	}

	winner := r.trick[best].player
	for _, tp := range r.trick {
		winner.won = append(winner.won, tp.card)
	}
	r.trick = r.trick[:0]

	for i, p := range r.players {
		if p == winner {
			r.turn = i
			break
		}
	}
	r.logger.Debug("trick resolved", "winner", winner.Name, "points", winner.Points())
}

// ResolveBotTurns lets bots at the head of the turn order play random cards
// from their own hands through the normal play path, then runs the round-end
// check. A single call attempts at most botPlayLimit plays; hitting the
// bound stops silently. The transport calls this after StartGame and after
// every successful human play.
func (r *Room) ResolveBotTurns() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started || len(r.players) == 0 {
		return
	}

	for plays := 0; plays < botPlayLimit; plays++ {
		bot := r.players[r.turn]
		if !bot.IsBot || len(bot.hand) == 0 {
			break
		}
		card := bot.hand[r.rng.IntN(len(bot.hand))]
		if err := r.playCardLocked(bot.ID, card); err != nil {
			break
		}
	}

	r.checkRoundEndLocked()
}

// checkRoundEndLocked runs once every hand is empty: a player at or above
// TargetScore ends the game, otherwise a fresh deck is dealt and the next
// round begins. Won piles carry over either way.
func (r *Room) checkRoundEndLocked() {
	if !r.started || len(r.players) == 0 {
		return
	}
	for _, p := range r.players {
		if len(p.hand) > 0 {
			return
		}
	}

	for _, p := range r.players {
		if p.Points() >= TargetScore {
			r.started = false
			r.logger.Info("game over", "player", p.Name, "points", p.Points(), "rounds", r.round)
			return
		}
	}

	r.round++
	r.dealLocked()
	r.logger.Info("round dealt", "round", r.round)
}

// PublicState snapshots the shared view of the room
func (r *Room) PublicState() PublicState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.publicStateLocked()
}

func (r *Room) publicStateLocked() PublicState {
	players := make([]PlayerPublic, len(r.players))
	scores := make(map[string]int, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerPublic{Name: p.Name, IsBot: p.IsBot, CardsInHand: len(p.hand)}
		scores[p.Name] = p.Points()
	}

	trick := make([]TrickPlay, len(r.trick))
	for i, tp := range r.trick {
		trick[i] = TrickPlay{Player: tp.player.Name, Card: tp.card}
	}

	return PublicState{
		RoomID:       r.id,
		Players:      players,
		Started:      r.started,
		CurrentTrick: trick,
		TurnIndex:    r.turn,
		Scores:       scores,
	}
}

// PrivateState snapshots one player's own view plus the shared view
func (r *Room) PrivateState(playerID string) (PrivateState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerLocked(playerID)
	if p == nil {
		return PrivateState{}, ErrPlayerNotInRoom
	}

	hand := make([]deck.Card, len(p.hand))
	copy(hand, p.hand)

	return PrivateState{
		You:    PlayerPrivate{Name: p.Name, Hand: hand, WonCardsCount: len(p.won)},
		Public: r.publicStateLocked(),
	}, nil
}

// Info is the lobby view of the room
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]PlayerPublic, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerPublic{Name: p.Name, IsBot: p.IsBot, CardsInHand: len(p.hand)}
	}

	return RoomInfo{
		RoomID:     r.id,
		MaxPlayers: r.maxPlayers,
		Players:    players,
		Started:    r.started,
	}
}

// HasHumans reports whether any seated player is connection-backed
func (r *Room) HasHumans() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if !p.IsBot {
			return true
		}
	}
	return false
}
