package server

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/game"
)

const (
	defaultMaxPlayers = 2
	defaultScoreGoal  = 100
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"max_players"`
	ScoreGoal  int    `json:"score_goal"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type StartGameReq struct {
	GameID string `json:"game_id"`
}

type ServerOpts struct {
	// RollDelay is how long the dice tumble between PreRoll and PostRoll
	RollDelay time.Duration
	StaticDir string
}

// GameServer is a game server
type GameServer struct {
	sessions  *cheese.Sessions
	rollDelay time.Duration
	staticDir string
	http.Server
}

// NewServer creates a new GameServer
func NewServer(sessions *cheese.Sessions, opts ServerOpts) *GameServer {
	s := &GameServer{
		sessions:  sessions,
		rollDelay: opts.RollDelay,
		staticDir: opts.StaticDir,
	}
	if s.staticDir == "" {
		s.staticDir = "./build"
	}

	router := http.NewServeMux()

	router.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
	}))

	fileServer := http.FileServer(http.Dir(s.staticDir))
	router.Handle("/static/", fileServer)
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/join", http.HandlerFunc(s.HandleJoinGame))
	router.Handle("/start", http.HandlerFunc(s.HandleStartGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleFindGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	s.Handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(log.Writer(), cors(router)),
	)

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame handles a request to create a new game.
// The creator joins straight away when they give a name.
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	if data.MaxPlayers == 0 {
		data.MaxPlayers = defaultMaxPlayers
	}
	if data.ScoreGoal == 0 {
		data.ScoreGoal = defaultScoreGoal
	}

	playerID := userID(w, r)
	gameID, s, err := g.sessions.Host(r.Context(), data.MaxPlayers, data.ScoreGoal, playerID, data.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  playerNames(s),
	})
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	if data.GameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing game ID"))
		return
	}
	if data.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing player name"))
		return
	}

	playerID := userID(w, r)
	s, err := g.sessions.Join(r.Context(), data.GameID, data.Name, playerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    s.CreatedBy == playerID,
		Players:  playerNames(s),
	})
}

func (g *GameServer) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data StartGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}
	if data.GameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing game ID"))
		return
	}

	s, err := g.sessions.Start(r.Context(), data.GameID, userID(w, r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/game/")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	s, err := g.sessions.Load(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// HandleWS upgrades to a websocket that streams the game and takes commands
// from the player identified by the request's cookie.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		log.Println("missing game ID")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	if _, err := g.sessions.Load(r.Context(), gameID); err != nil {
		writeError(w, err)
		return
	}

	playerID := userID(w, r)
	conn, err := upgrader.Upgrade(w, r, w.Header())
	if err != nil {
		log.Println(err)
		return
	}

	newClient(g, conn, gameID, playerID).run()
}

func playerNames(s game.GameState) []string {
	names := []string{}
	for _, p := range s.Players {
		names = append(names, p.Name)
	}
	return names
}
