package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/tristan-derez/league-stats/internal/config"
	"github.com/tristan-derez/league-stats/internal/service"
)

// Bot struct represents the Discord bot and holds references to its dependencies
type Bot struct {
	session *discordgo.Session
	svc     *service.Service
	region  string
	logger  *logrus.Logger

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	commandsOnce sync.Once
}

// New creates and initializes a new Bot instance
func New(cfg *config.Config, svc *service.Service, logger *logrus.Logger) (*Bot, error) {
	if err := cfg.RequireDiscord(); err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Bot{
		session: session,
		svc:     svc,
		region:  cfg.RiotAPIRegion,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Open connects to the gateway and registers the handlers.
func (b *Bot) Open() error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.WithField("guilds", len(r.Guilds)).Info("Bot is now ready")
		if err := b.registerCommandsOnce(); err != nil {
			b.logger.WithError(err).Error("Failed to register commands")
		}
	})
	b.session.AddHandler(b.handleInteraction)

	return b.session.Open()
}

// registerCommandsOnce registers Discord slash commands for the bot.
func (b *Bot) registerCommandsOnce() error {
	var err error
	b.commandsOnce.Do(func() {
		for _, cmd := range commands {
			if _, err = b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
				err = fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
				return
			}
		}
	})
	return err
}

// startCommand registers a running command. It returns false once the bot is
// shutting down; otherwise the caller must call b.wg.Done when finished.
func (b *Bot) startCommand() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closing {
		return false
	}
	b.wg.Add(1)
	return true
}

// drain stops accepting commands, cancels the running ones and waits for them.
func (b *Bot) drain() {
	b.mu.Lock()
	b.closing = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
}

// Shutdown waits for running commands and closes the Discord session.
func (b *Bot) Shutdown() error {
	b.logger.Info("Shutting down bot...")
	b.drain()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing Discord session: %w", err)
	}
	return nil
}
