package game

import "errors"

// Room operation errors. All are local, recoverable conditions reported back
// to the requesting client only; every one of them leaves room state
// unchanged.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("game already started")
	ErrNotEnoughPlayers = errors.New("need at least two players")
	ErrNotStarted       = errors.New("game not started")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrPlayerNotInRoom  = errors.New("player not in room")
)
