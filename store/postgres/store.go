// Package postgres provides a Postgres-backed game store built on GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/minaorangina/cheese/game"
	"github.com/minaorangina/cheese/store"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRecord is one row per game holding its JSON document.
type GameRecord struct {
	ID        string         `gorm:"primaryKey;size:64"`
	State     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GameRecord) TableName() string {
	return "cheese_games"
}

type Store struct {
	db      *gorm.DB
	writeMu sync.Mutex
	subs    *store.Broadcaster
}

// Open connects to Postgres using dsn and migrates the games table.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	conn, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(conn)
}

// New wraps an open GORM connection.
func New(conn *gorm.DB) (*Store, error) {
	if conn == nil {
		return nil, errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(&GameRecord{}); err != nil {
		return nil, err
	}
	log.Println("database migration complete")
	return &Store{db: conn, subs: store.NewBroadcaster()}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Save(ctx context.Context, gameID string, state game.GameState) error {
	doc, err := store.EncodeState(state)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record := GameRecord{ID: gameID, State: datatypes.JSON(doc)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}

	s.subs.Publish(gameID, state)
	return nil
}

func (s *Store) Load(ctx context.Context, gameID string) (game.GameState, error) {
	var record GameRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.GameState{}, store.ErrFnUnknownGameID(gameID)
		}
		return game.GameState{}, fmt.Errorf("load game %s: %w", gameID, err)
	}
	return store.DecodeState(record.State)
}

func (s *Store) Exists(ctx context.Context, gameID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&GameRecord{}).Where("id = ?", gameID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("find game %s: %w", gameID, err)
	}
	return count > 0, nil
}

// Subscribe only sees saves made through this Store
func (s *Store) Subscribe(ctx context.Context, gameID string) (<-chan game.GameState, error) {
	return s.subs.Subscribe(ctx, gameID, func() (game.GameState, error) {
		return s.Load(ctx, gameID)
	})
}
