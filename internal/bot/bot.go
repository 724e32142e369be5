// Package bot is the Telegram surface. It owns message splitting, command
// routing, concurrent enrichment, and formatting; all scoring happens in the
// core packages.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kdkiss/ai-sports-betting-agent/internal/analysis"
	"github.com/kdkiss/ai-sports-betting-agent/internal/logging"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parlay"
	"github.com/kdkiss/ai-sports-betting-agent/internal/parser"
	"github.com/kdkiss/ai-sports-betting-agent/internal/portfolio"
	"github.com/kdkiss/ai-sports-betting-agent/internal/sportsdata"
)

const defaultUpdateTimeout = 60

const helpText = `*Betting Slip Analyzer*

Send me a bet slip as plain text and I will score every leg, rate the
parlay, and estimate its expected value.

Multiple parlays in one message are split on blank lines or
"Parlay 1:" / "Ticket 2:" headers and analyzed as a portfolio with
suggested stake allocations.

*Commands:*
/team <name> - look up a team
/player <name> - look up a player
/help - this message

Add a "Wager: $50" line to set your stake.`

// SportsAPI is the team/player lookup dependency. nil disables enrichment
// and the /team, /player commands.
type SportsAPI interface {
	SearchTeam(ctx context.Context, name string) (*sportsdata.Team, error)
	SearchPlayer(ctx context.Context, name string) (*sportsdata.Player, error)
}

// Commentator produces optional natural-language commentary. nil means
// heuristics-only replies.
type Commentator interface {
	Commentary(ctx context.Context, a analysis.ParlayAnalysis) (string, error)
}

// Options configures a Bot.
type Options struct {
	Token         string
	Parser        *parser.Parser
	Sports        SportsAPI
	Commentator   Commentator
	DefaultStake  float64
	UpdateTimeout int
}

// Bot runs the long-poll loop and dispatches messages.
type Bot struct {
	api           *tgbotapi.BotAPI
	parser        *parser.Parser
	sports        SportsAPI
	commentator   Commentator
	defaultStake  float64
	updateTimeout int
}

// New authenticates against the Telegram API and builds the bot.
func New(opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, errors.New("bot: telegram token is required")
	}
	if opts.Parser == nil {
		return nil, errors.New("bot: parser is required")
	}

	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	timeout := opts.UpdateTimeout
	if timeout <= 0 {
		timeout = defaultUpdateTimeout
	}
	stake := opts.DefaultStake
	if stake <= 0 {
		stake = parlay.DefaultStake
	}

	return &Bot{
		api:           api,
		parser:        opts.Parser,
		sports:        opts.Sports,
		commentator:   opts.Commentator,
		defaultStake:  stake,
		updateTimeout: timeout,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	logging.Infof("authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logging.Infof("bot stopped")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if len(msg.Photo) > 0 {
		b.reply(msg.Chat.ID, "I can't read screenshots yet. Please paste the slip as text, one bet per line.")
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		b.handleCommand(ctx, msg.Chat.ID, text)
		return
	}

	b.handleSlip(ctx, msg.Chat.ID, text)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, text string) {
	parts := strings.Fields(text)
	command := strings.ToLower(strings.SplitN(parts[0], "@", 2)[0])
	args := strings.TrimSpace(strings.TrimPrefix(text, parts[0]))

	switch command {
	case "/start", "/help":
		b.replyMarkdown(chatID, helpText)
	case "/team":
		b.handleTeamCommand(ctx, chatID, args)
	case "/player":
		b.handlePlayerCommand(ctx, chatID, args)
	default:
		b.reply(chatID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleTeamCommand(ctx context.Context, chatID int64, name string) {
	if b.sports == nil {
		b.reply(chatID, "Team lookups are not configured.")
		return
	}
	if name == "" {
		b.reply(chatID, "Please provide a team name. Usage: /team Arsenal")
		return
	}

	team, err := b.sports.SearchTeam(ctx, name)
	if err != nil {
		logging.Errorf("team lookup %q: %v", name, err)
		b.reply(chatID, "Team lookup failed, try again later.")
		return
	}
	if team == nil {
		b.reply(chatID, fmt.Sprintf("No teams found matching %q", name))
		return
	}
	b.replyMarkdown(chatID, FormatTeam(team))
}

func (b *Bot) handlePlayerCommand(ctx context.Context, chatID int64, name string) {
	if b.sports == nil {
		b.reply(chatID, "Player lookups are not configured.")
		return
	}
	if name == "" {
		b.reply(chatID, "Please provide a player name. Usage: /player Messi")
		return
	}

	player, err := b.sports.SearchPlayer(ctx, name)
	if err != nil {
		logging.Errorf("player lookup %q: %v", name, err)
		b.reply(chatID, "Player lookup failed, try again later.")
		return
	}
	if player == nil {
		b.reply(chatID, fmt.Sprintf("No players found matching %q", name))
		return
	}
	b.replyMarkdown(chatID, FormatPlayer(player))
}

// handleSlip parses one message into parlays, enriches them concurrently,
// and replies with either a single analysis or a portfolio breakdown.
func (b *Bot) handleSlip(ctx context.Context, chatID int64, text string) {
	b.api.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	groups := SplitParlays(text)

	var parlays []parlay.Parlay
	for _, group := range groups {
		pl, err := parlay.Parse(group, b.defaultStake, b.parser)
		if err != nil {
			if errors.Is(err, parlay.ErrNoValidBets) {
				logging.Debugf("group with no valid bets skipped")
				continue
			}
			logging.Errorf("parsing slip: %v", err)
			continue
		}
		parlays = append(parlays, pl)
	}

	if len(parlays) == 0 {
		b.reply(chatID, "I couldn't find any bets in that message. Send one bet per line, e.g. \"Lakers ML +150\".")
		return
	}

	notes := b.enrich(ctx, parlays)

	analyses := make([]analysis.ParlayAnalysis, 0, len(parlays))
	for _, pl := range parlays {
		a, err := analysis.AnalyzeParlay(pl)
		if err != nil {
			logging.Errorf("analyzing parlay: %v", err)
			continue
		}
		analyses = append(analyses, a)
	}
	if len(analyses) == 0 {
		b.reply(chatID, "Analysis failed for every parlay in that message.")
		return
	}

	var out string
	if len(analyses) == 1 {
		out = FormatAnalysis(analyses[0], b.commentaryFor(ctx, analyses[0]))
	} else {
		res, err := portfolio.Analyze(analyses)
		if err != nil {
			logging.Errorf("portfolio analysis: %v", err)
			b.reply(chatID, "Portfolio analysis failed.")
			return
		}
		out = FormatPortfolio(res)
	}

	if len(notes) > 0 {
		out += "\n\n" + strings.Join(notes, "\n")
	}
	b.replyMarkdown(chatID, out)
}

// enrich fans out team lookups for every distinct team across all parlays
// and joins before scoring continues. Lookup failures only produce notes,
// never block the analysis.
func (b *Bot) enrich(ctx context.Context, parlays []parlay.Parlay) []string {
	if b.sports == nil {
		return nil
	}

	type lookup struct {
		name   string
		player bool
		found  bool
		err    error
	}

	var lookups []lookup
	seen := make(map[string]bool)
	for _, pl := range parlays {
		for _, leg := range pl.Legs {
			name := leg.TeamOrPlayer
			if name == "" || name == parser.UnknownTeam || seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			lookups = append(lookups, lookup{name: name, player: leg.BetType == parser.BetPlayerProp})
		}
	}

	var wg sync.WaitGroup
	for i := range lookups {
		wg.Add(1)
		go func(l *lookup) {
			defer wg.Done()
			if l.player {
				player, err := b.sports.SearchPlayer(ctx, l.name)
				l.found, l.err = player != nil, err
				return
			}
			team, err := b.sports.SearchTeam(ctx, l.name)
			l.found, l.err = team != nil, err
		}(&lookups[i])
	}
	wg.Wait()

	var notes []string
	for _, r := range lookups {
		if r.err != nil {
			logging.Warnf("enrichment lookup %q: %v", r.name, r.err)
			continue
		}
		if !r.found {
			notes = append(notes, fmt.Sprintf("⚠ %q not found in the sports database, double-check the name", r.name))
		}
	}
	return notes
}

func (b *Bot) commentaryFor(ctx context.Context, a analysis.ParlayAnalysis) string {
	if b.commentator == nil {
		return ""
	}
	text, err := b.commentator.Commentary(ctx, a)
	if err != nil {
		logging.Warnf("commentary unavailable: %v", err)
		return ""
	}
	return text
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logging.Errorf("sending message: %v", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		logging.Errorf("sending message: %v", err)
	}
}
