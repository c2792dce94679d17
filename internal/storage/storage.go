package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/tristan-derez/league-stats/internal/config"
	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

//go:embed sql/init_db.sql
var initDBSQL string

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const maxHistory = 50

// Storage keeps a history of looked-up summoners and rendered match views.
type Storage struct {
	db     *sql.DB
	logger *logrus.Logger
}

// MatchViewRecord is one stored render. View is the JSON document as stored.
type MatchViewRecord struct {
	MatchID      string          `json:"matchId"`
	Region       string          `json:"region"`
	Detailed     bool            `json:"detailed"`
	GameCreation int64           `json:"gameCreation"`
	View         json.RawMessage `json:"view"`
}

// StoredSummoner is a summoner row.
type StoredSummoner struct {
	riotapi.Summoner
	Region string `json:"region"`
}

// New creates and initializes a new Storage instance connected to the specified PostgreSQL database
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUsername, cfg.DBPassword, cfg.DBDatabase)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.initDB(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	return storage, nil
}

func (s *Storage) initDB(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, initDBSQL)
	if err != nil {
		return fmt.Errorf("error executing init_db.sql: %w", err)
	}

	s.logger.Info("Database initialized successfully")
	return nil
}

// SaveSummoner adds or updates a summoner.
func (s *Storage) SaveSummoner(ctx context.Context, region string, summoner riotapi.Summoner) error {
	var id int
	err := s.db.QueryRowContext(ctx, string(upsertSummonerSQL),
		summoner.SummonerPUUID, summoner.RiotSummonerID, summoner.Name, region,
		summoner.SummonerLevel, summoner.ProfileIconID, summoner.RevisionDate).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert/update summoner: %w", err)
	}
	return nil
}

// GetSummoner returns a stored summoner by puuid.
func (s *Storage) GetSummoner(ctx context.Context, puuid string) (*StoredSummoner, error) {
	var stored StoredSummoner
	err := s.db.QueryRowContext(ctx, string(selectSummonerByPUUIDSQL), puuid).Scan(
		&stored.SummonerPUUID, &stored.RiotSummonerID, &stored.Name, &stored.Region,
		&stored.SummonerLevel, &stored.ProfileIconID, &stored.RevisionDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching summoner: %w", err)
	}
	return &stored, nil
}

// SaveMatchView stores the rendered view of a player in a match.
func (s *Storage) SaveMatchView(ctx context.Context, region, puuid string, match *riotapi.Match, detailed bool, view any) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("error encoding match view: %w", err)
	}

	_, err = s.db.ExecContext(ctx, string(upsertMatchViewSQL),
		match.Metadata.MatchID, puuid, region, detailed, match.Info.GameCreation, string(payload))
	if err != nil {
		return fmt.Errorf("error inserting match view: %w", err)
	}
	return nil
}

// RecentMatchViews returns the latest stored views of a player.
func (s *Storage) RecentMatchViews(ctx context.Context, puuid string, limit int) ([]MatchViewRecord, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}

	rows, err := s.db.QueryContext(ctx, string(selectRecentMatchViewsSQL), puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []MatchViewRecord
	for rows.Next() {
		var r MatchViewRecord
		var view []byte
		if err := rows.Scan(&r.MatchID, &r.Region, &r.Detailed, &r.GameCreation, &view); err != nil {
			return nil, err
		}
		r.View = json.RawMessage(view)
		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Storage) Close() error {
	return s.db.Close()
}
