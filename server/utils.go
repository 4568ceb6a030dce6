package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/cards"
	"github.com/minaorangina/cheese/dice"
	"github.com/minaorangina/cheese/game"
	"github.com/minaorangina/cheese/identity"
	"github.com/minaorangina/cheese/store"
)

const (
	userIDCookie = "userId"
	cookieMaxAge = 365 * 24 * 60 * 60
)

// userID returns the caller's id from their cookie, minting one on their
// first request
func userID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(userIDCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := identity.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     userIDCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnknownGameID):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotGameCreator):
		return http.StatusForbidden
	case errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrGameNotInProgress),
		errors.Is(err, cheese.ErrGameStarted),
		errors.Is(err, cheese.ErrRollFirst),
		errors.Is(err, cards.ErrDeckEmpty),
		errors.Is(err, cards.ErrCardAlreadyDrawn),
		errors.Is(err, cards.ErrTooLateToDraw):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidDiceIndex),
		errors.Is(err, dice.ErrInvalidInput),
		errors.Is(err, cheese.ErrNoScoringDice),
		errors.Is(err, game.ErrInvalidGameConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Println(err.Error())
		w.WriteHeader(status)
		return
	}
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	if err == io.EOF {
		log.Println(err.Error())
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing body"))
		return
	}
	if err != nil {
		log.Println(err.Error())
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Malformed body"))
		return
	}
}
