package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/storage"
	"github.com/tristan-derez/league-stats/internal/transformer"
	"github.com/tristan-derez/league-stats/internal/utils"
)

// ErrHistoryDisabled is returned by History when no storage is configured.
var ErrHistoryDisabled = errors.New("match history storage is not configured")

// ErrPlayerNotInMatch is returned when a puuid does not appear in a match.
var ErrPlayerNotInMatch = errors.New("player not found in match")

// ErrNoRecentMatch is returned by LastMatch when the player has no match in the queue.
var ErrNoRecentMatch = errors.New("no recent matches found")

// History persists lookups. *storage.Storage implements it.
type History interface {
	SaveSummoner(ctx context.Context, region string, summoner riotapi.Summoner) error
	GetSummoner(ctx context.Context, puuid string) (*storage.StoredSummoner, error)
	SaveMatchView(ctx context.Context, region, puuid string, match *riotapi.Match, detailed bool, view any) error
	RecentMatchViews(ctx context.Context, puuid string, limit int) ([]storage.MatchViewRecord, error)
}

// Profile is the summary shown for a Riot ID lookup.
type Profile struct {
	Account  riotapi.Account     `json:"account"`
	Summoner riotapi.Summoner    `json:"summoner"`
	Rank     riotapi.LeagueEntry `json:"rank"`
	WinRate  float64             `json:"winRate"`
}

// PlayerMatch is one player's render together with the match header.
type PlayerMatch struct {
	MatchID string                  `json:"matchId"`
	Infos   transformer.GameInfo    `json:"infos"`
	Player  *transformer.PlayerView `json:"player"`
}

// Service ties the Riot client, the static data and the optional history together.
type Service struct {
	riot     *riotapi.Client
	contexts *ContextProvider
	history  History
	logger   *logrus.Logger
}

type Deps struct {
	Riot     *riotapi.Client
	Contexts *ContextProvider
	History  History
	Logger   *logrus.Logger
}

func New(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		riot:     deps.Riot,
		contexts: deps.Contexts,
		history:  deps.History,
		logger:   logger,
	}
}

// SummonerByName looks a summoner up by its legacy name.
func (s *Service) SummonerByName(ctx context.Context, region, name string) (*riotapi.Summoner, error) {
	summoner, err := s.riot.Summoners(region).ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if summoner.Name == "" {
		summoner.Name = name
	}
	s.remember(ctx, region, *summoner)
	return summoner, nil
}

// Summoner looks a summoner up by puuid. summoner-v4 no longer returns a
// name, so the last name stored for the puuid is used when there is one.
func (s *Service) Summoner(ctx context.Context, region, puuid string) (*riotapi.Summoner, error) {
	summoner, err := s.riot.Summoners(region).ByPUUID(ctx, puuid)
	if err != nil {
		return nil, err
	}
	if summoner.Name == "" && s.history != nil {
		stored, err := s.history.GetSummoner(ctx, puuid)
		switch {
		case err == nil:
			summoner.Name = stored.Name
		case !errors.Is(err, storage.ErrNotFound):
			s.logger.WithError(err).Warn("Error reading stored summoner")
		}
	}
	return summoner, nil
}

// Account resolves gameName#tagLine to an account.
func (s *Service) Account(ctx context.Context, region, gameName, tagLine string) (*riotapi.Account, error) {
	return s.riot.Accounts(region).ByRiotID(ctx, gameName, tagLine)
}

// ProfileByRiotID resolves gameName#tagLine to a summoner and its solo queue rank.
func (s *Service) ProfileByRiotID(ctx context.Context, region, gameName, tagLine string) (*Profile, error) {
	account, err := s.Account(ctx, region, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	var (
		summoner *riotapi.Summoner
		rank     *riotapi.LeagueEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summoner, err = s.riot.Summoners(region).ByPUUID(gctx, account.PUUID)
		return err
	})
	g.Go(func() (err error) {
		rank, err = s.riot.Leagues(region).SoloQueue(gctx, account.PUUID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summoner.Name = account.GameName + "#" + account.TagLine
	s.remember(ctx, region, *summoner)

	return &Profile{
		Account:  *account,
		Summoner: *summoner,
		Rank:     *rank,
		WinRate:  utils.CalculateWinRate(rank.Wins, rank.Losses),
	}, nil
}

// MatchIDs lists recent match ids of a player.
func (s *Service) MatchIDs(ctx context.Context, region, puuid string, filter riotapi.MatchFilter) ([]string, error) {
	return s.riot.Matches(region).IDsByPUUID(ctx, puuid, filter)
}

// Match renders every player of a match.
func (s *Service) Match(ctx context.Context, region, matchID string, detailed bool) (*transformer.MatchView, error) {
	match, tctx, err := s.fetchMatch(ctx, region, matchID)
	if err != nil {
		return nil, err
	}
	return renderFresh(ctx, s, tctx, func(tctx *transformer.Context) (*transformer.MatchView, error) {
		return transformer.RenderMatch(match, tctx, detailed)
	})
}

// PlayerMatch renders one player of a match and records it in the history.
func (s *Service) PlayerMatch(ctx context.Context, region, matchID, puuid string, detailed bool) (*PlayerMatch, error) {
	match, tctx, err := s.fetchMatch(ctx, region, matchID)
	if err != nil {
		return nil, err
	}

	player, ok := match.FindParticipant(puuid)
	if !ok {
		return nil, ErrPlayerNotInMatch
	}

	var teamStats *transformer.TeamStats
	if detailed {
		totals := transformer.TeamTotals(match, player.TeamID)
		teamStats = &totals
	}
	view, err := renderFresh(ctx, s, tctx, func(tctx *transformer.Context) (*transformer.PlayerView, error) {
		return transformer.Render(match, player, tctx, detailed, teamStats)
	})
	if err != nil {
		return nil, err
	}

	result := &PlayerMatch{
		MatchID: match.Metadata.MatchID,
		Infos:   transformer.GameInfos(match),
		Player:  view,
	}

	if s.history != nil {
		if err := s.history.SaveMatchView(ctx, region, puuid, match, detailed, result); err != nil {
			s.logger.WithError(err).Warn("Error storing match view")
		}
	}
	return result, nil
}

// LastMatch renders the most recent match of a player in the given queue (0 for any).
func (s *Service) LastMatch(ctx context.Context, region, puuid string, queue int) (*PlayerMatch, error) {
	ids, err := s.MatchIDs(ctx, region, puuid, riotapi.MatchFilter{Queue: queue, Count: 1})
	if err != nil {
		return nil, fmt.Errorf("error getting match IDs: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoRecentMatch
	}
	return s.PlayerMatch(ctx, region, ids[0], puuid, false)
}

// History returns stored renders of a player.
func (s *Service) History(ctx context.Context, puuid string, limit int) ([]storage.MatchViewRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.RecentMatchViews(ctx, puuid, limit)
}

// fetchMatch loads the match and the static data concurrently.
func (s *Service) fetchMatch(ctx context.Context, region, matchID string) (*riotapi.Match, *transformer.Context, error) {
	var (
		match *riotapi.Match
		tctx  *transformer.Context
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		match, err = s.riot.Matches(region).ByID(gctx, matchID)
		return err
	})
	g.Go(func() (err error) {
		tctx, err = s.contexts.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return match, tctx, nil
}

// renderFresh runs render and, when the static data lacks an entry the match
// references, refreshes it once and renders again. New patches add items and
// champions that the loaded data does not know yet.
func renderFresh[T any](ctx context.Context, s *Service, tctx *transformer.Context, render func(*transformer.Context) (T, error)) (T, error) {
	view, err := render(tctx)
	if !errors.Is(err, transformer.ErrMissingStaticData) {
		return view, err
	}

	s.logger.WithError(err).Info("Static game data is outdated, refreshing")
	fresh, refreshErr := s.contexts.Refresh(ctx)
	if refreshErr != nil {
		s.logger.WithError(refreshErr).Warn("Error refreshing static game data")
		return view, err
	}
	if fresh == tctx {
		return view, err
	}
	return render(fresh)
}

func (s *Service) remember(ctx context.Context, region string, summoner riotapi.Summoner) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveSummoner(ctx, region, summoner); err != nil {
		s.logger.WithError(err).Warn("Error storing summoner")
	}
}

// GameVersion returns the patch of the loaded static data.
func (s *Service) GameVersion(ctx context.Context) (string, error) {
	tctx, err := s.contexts.Get(ctx)
	if err != nil {
		return "", err
	}
	return tctx.Version, nil
}
