package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
)

const commandTimeout = 30 * time.Second

var riotIDOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "name",
	Description: "The Riot ID of the player (Name#Tag)",
	Required:    true,
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "summoner",
		Description: "Show the level and solo queue rank of a player",
		Options:     []*discordgo.ApplicationCommandOption{riotIDOption},
	},
	{
		Name:        "lastmatch",
		Description: "Show the last ranked solo match of a player",
		Options:     []*discordgo.ApplicationCommandOption{riotIDOption},
	},
	{
		Name:        "ping",
		Description: "Check that the bot is alive",
	},
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "summoner":
		b.deferred(s, i, b.summonerEmbed)
	case "lastmatch":
		b.deferred(s, i, b.lastMatchEmbed)
	case "ping":
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: "pong!"},
		})
	}
}

type embedBuilder func(ctx context.Context, gameName, tagLine string) (*discordgo.MessageEmbed, error)

// deferred acknowledges the command right away and edits the response once the
// Riot lookups are done, since those can wait on the rate limiter.
func (b *Bot) deferred(s *discordgo.Session, i *discordgo.InteractionCreate, build embedBuilder) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respondWithError(s, i, "Please provide a Riot ID.")
		return
	}

	gameName, tagLine, err := parseRiotID(options[0].StringValue())
	if err != nil {
		respondWithError(s, i, "Invalid summoner name format. Please use Name#Tag.")
		return
	}

	if !b.startCommand() {
		respondWithError(s, i, "The bot is restarting, please try again in a moment.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.WithError(err).Error("Error acknowledging interaction")
		b.wg.Done()
		return
	}

	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
		defer cancel()

		embed, err := build(ctx, gameName, tagLine)
		edit := &discordgo.WebhookEdit{}
		if err != nil {
			b.logger.WithError(err).WithField("riot_id", gameName+"#"+tagLine).Warn("Command failed")
			content := userMessage(err)
			edit.Content = &content
		} else {
			edit.Embeds = &[]*discordgo.MessageEmbed{embed}
		}

		if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
			b.logger.WithError(err).Error("Error editing interaction response")
		}
	}()
}

func (b *Bot) summonerEmbed(ctx context.Context, gameName, tagLine string) (*discordgo.MessageEmbed, error) {
	profile, err := b.svc.ProfileByRiotID(ctx, b.region, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	return profileEmbed(profile), nil
}

func (b *Bot) lastMatchEmbed(ctx context.Context, gameName, tagLine string) (*discordgo.MessageEmbed, error) {
	account, err := b.svc.Account(ctx, b.region, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	match, err := b.svc.LastMatch(ctx, b.region, account.PUUID, riotapi.RankedSoloQueueID)
	if err != nil {
		return nil, err
	}

	version, err := b.svc.GameVersion(ctx)
	if err != nil {
		b.logger.WithError(err).Warn("Unknown game version")
	}

	return matchEmbed(account.GameName+"#"+account.TagLine, match, version, time.Now()), nil
}

// userMessage turns an error into something worth showing in a channel.
func userMessage(err error) string {
	switch {
	case riotapi.IsNotFound(err):
		return "Unable to find summoner."
	case riotapi.IsRateLimitError(err):
		return "The Riot API is busy, please try again in a minute."
	case errors.Is(err, service.ErrNoRecentMatch):
		return "No recent ranked solo match found."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

// generate an ephemeral error message that is only shown to the user that typed a command
func respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
