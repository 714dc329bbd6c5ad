package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brandclash/brandclash-backend/internal/apperror"
	"github.com/brandclash/brandclash-backend/internal/chain"
)

var (
	ErrEmptyWord         = errors.New("word is empty")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerOne = "1"
	PlayerTwo = "2"

	SourceDatabase = "database"
	SourceExternal = "external"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

// WordEntry - one accepted word in the chain. History is append-only and
// ordered by play; the index is the turn number.
type WordEntry struct {
	Player string `json:"player"`
	Word   string `json:"word"`
	Source string `json:"source"`
}

type Game struct {
	ID       string         `json:"id"`
	Words    []WordEntry    `json:"words"`
	Scores   map[string]int `json:"scores"`
	LastWord string         `json:"last_word"`
	Winner   string         `json:"winner"`
	Status   string         `json:"status"`
	Turn     string         `json:"player_turn"`
	Revision int            `json:"revision"`
	Players  []*Player      `json:"players,omitempty"`
	Type     string         `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Scores: map[string]int{PlayerOne: 0, PlayerTwo: 0},
		Turn:   PlayerOne,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// AcceptWord - applies an already validated word: appends it to the history,
// credits the mover with the trimmed word's character length and passes the
// turn. Rejections never reach this method, so a failed precondition here
// leaves the game untouched.
func (that *Game) AcceptWord(playerMark, word, source string) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ErrEmptyWord
	}

	that.Words = append(that.Words, WordEntry{
		Player: playerMark,
		Word:   trimmed,
		Source: source,
	})
	that.LastWord = trimmed
	that.Scores[playerMark] += len([]rune(trimmed))
	that.Turn = Opponent(playerMark)
	that.Revision++

	return nil
}

// Forfeit - ends the game immediately; the opponent of the forfeiting
// player wins.
func (that *Game) Forfeit(playerMark string) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.Winner = Opponent(playerMark)
	that.Status = StatusFinished
	that.Turn = ""
	that.Revision++

	return nil
}

// Restart - abandons the current chain and starts over: empty history, zero
// scores, player one to move. Works mid-game; the revision bump invalidates
// any submission still in flight.
func (that *Game) Restart() {
	that.Words = nil
	that.Scores = map[string]int{PlayerOne: 0, PlayerTwo: 0}
	that.LastWord = ""
	that.Winner = ""
	that.Turn = PlayerOne
	that.Revision++

	if len(that.Players) == 2 {
		that.Status = StatusOngoing
	} else {
		that.Status = StatusWaiting
	}
}

// NextRequiredLetter - the letter the next word must start with, or empty
// when no word has been played yet.
func (that *Game) NextRequiredLetter() string {
	return chain.RequiredLetter(that.LastWord)
}

// UsedWord - reports whether word was already played in this game,
// case-insensitively.
func (that *Game) UsedWord(word string) bool {
	for _, entry := range that.Words {
		if strings.EqualFold(entry.Word, strings.TrimSpace(word)) {
			return true
		}
	}

	return false
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// Opponent - the other player's mark.
func Opponent(mark string) string {
	if mark == PlayerOne {
		return PlayerTwo
	}

	return PlayerOne
}
