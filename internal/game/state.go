package game

import "github.com/nmoreno/brisca/internal/deck"

// PlayerPublic is what everyone in the room sees about a player
type PlayerPublic struct {
	Name        string `json:"name"`
	IsBot       bool   `json:"is_bot"`
	CardsInHand int    `json:"cards_in_hand"`
}

// PlayerPrivate is the view a player gets of their own seat
type PlayerPrivate struct {
	Name          string      `json:"name"`
	Hand          []deck.Card `json:"hand"`
	WonCardsCount int         `json:"won_cards_count"`
}

// TrickPlay is one committed play in the open trick
type TrickPlay struct {
	Player string    `json:"player"`
	Card   deck.Card `json:"card"`
}

// PublicState is the full shared view of a room, broadcast to every member
// after each state-changing operation. Scores are recomputed from won piles
// on every snapshot, never cached.
type PublicState struct {
	RoomID       string         `json:"room_id"`
	Players      []PlayerPublic `json:"players"`
	Started      bool           `json:"started"`
	CurrentTrick []TrickPlay    `json:"current_trick"`
	TurnIndex    int            `json:"turn_index"`
	Scores       map[string]int `json:"scores"`
}

// PrivateState is sent individually to each human member
type PrivateState struct {
	You    PlayerPrivate `json:"you"`
	Public PublicState   `json:"public"`
}

// RoomInfo is the lobby view of a room, used before and between games
type RoomInfo struct {
	RoomID     string         `json:"room_id"`
	MaxPlayers int            `json:"max_players"`
	Players    []PlayerPublic `json:"players"`
	Started    bool           `json:"started"`
}
