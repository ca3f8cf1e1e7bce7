// Package pollmenu builds reaction menus that tally votes and render a
// results chart.
package pollmenu

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/bwmarrin/discordgo"
)

const barWidth = 10

// PollMenu is a reaction menu that counts reactions as votes. With
// SingleChoice set, a voter's second pick is rejected by removing the
// reaction.
type PollMenu struct {
	*menu.ReactionMenu

	SingleChoice bool
	StartTime    time.Time

	session discord.Session
	logger  *slog.Logger

	mu     sync.Mutex
	voters map[string]string // userID -> option key
}

// New creates a poll menu with its reaction handlers bound.
func New(session discord.Session, logger *slog.Logger, title string, singleChoice bool) *PollMenu {
	p := &PollMenu{
		ReactionMenu: menu.NewReactionMenu(title),
		SingleChoice: singleChoice,
		StartTime:    time.Now().UTC(),
		session:      session,
		logger:       logger,
		voters:       make(map[string]string),
	}
	p.BindHandlers(p.handleAdd, p.handleRemove)
	return p
}

func (p *PollMenu) handleAdd(ctx context.Context, m menu.Renderable, r *discordgo.MessageReactionAdd) error {
	base := m.Base()
	opt := base.OptionByEmoji(r.Emoji)
	if opt == nil {
		return nil
	}

	p.mu.Lock()
	previous, voted := p.voters[r.UserID]
	if p.SingleChoice && voted && previous != opt.Key() {
		p.mu.Unlock()
		// The extra pick was already counted. Stripping the reaction
		// makes Discord echo a remove event through the gateway, and
		// that echo is what takes the count back down. Decrementing
		// here too would double-count the removal and eat another
		// voter's vote on this option.
		emoji := menu.EmojiFromComponent(r.Emoji)
		if err := p.session.MessageReactionRemove(base.ChannelID, base.MessageID, emoji.APIName(), r.UserID); err != nil {
			p.logger.WarnContext(ctx, "Failed to remove extra poll reaction",
				attr.String("menu_id", base.MessageID),
				attr.String("user_id", r.UserID),
				attr.Error(err),
			)
		}
		return nil
	}
	p.voters[r.UserID] = opt.Key()
	p.mu.Unlock()
	return nil
}

func (p *PollMenu) handleRemove(ctx context.Context, m menu.Renderable, r *discordgo.MessageReactionRemove) error {
	opt := m.Base().OptionByEmoji(r.Emoji)
	if opt == nil {
		return nil
	}

	p.mu.Lock()
	if p.voters[r.UserID] == opt.Key() {
		delete(p.voters, r.UserID)
	}
	p.mu.Unlock()
	return nil
}

// TotalVotes returns the number of votes across every option.
func (p *PollMenu) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.ReactionCount
	}
	return total
}

// ResultsEmbed renders the poll standings as a bar chart inside a code
// block. The leading option (or every option in a tie) gets a trophy.
func (p *PollMenu) ResultsEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Results: %s", p.Title),
		Color: p.CurrentColor(),
	}

	if p.TotalVotes() == 0 {
		embed.Description = "No votes received!"
		return embed
	}

	ranked := make([]*menu.Option, len(p.Options))
	copy(ranked, p.Options)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ReactionCount > ranked[j].ReactionCount
	})
	winning := ranked[0].ReactionCount

	longest := 0
	for _, opt := range ranked {
		if len(opt.Label()) > longest {
			longest = len(opt.Label())
		}
	}

	var chart strings.Builder
	chart.WriteString("```\n")
	for _, opt := range ranked {
		bar := ""
		if winning > 0 {
			bar = strings.Repeat("█", opt.ReactionCount*barWidth/winning)
		}
		line := fmt.Sprintf("%-*s | %s +%d Vote(s)", longest, opt.Label(), bar, opt.ReactionCount)
		if opt.ReactionCount == winning {
			line += " 🏆"
		}
		chart.WriteString(line + "\n")
	}
	chart.WriteString("```")

	embed.Description = chart.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d vote(s) since %s", p.TotalVotes(), p.StartTime.Format(time.RFC1123)),
	}
	return embed
}

// ToDict returns the persisted form of the poll, extending the reaction
// menu dictionary with the poll settings.
func (p *PollMenu) ToDict() map[string]any {
	data := p.ReactionMenu.ToDict()
	data["single_choice"] = p.SingleChoice
	data["start_time"] = p.StartTime.Format(time.RFC3339)
	return data
}

// FromDict loads a poll menu from its persisted form and rebinds the vote
// handlers. Per-voter bookkeeping does not survive a restart; counts do.
func FromDict(session discord.Session, logger *slog.Logger, data map[string]any) (*PollMenu, error) {
	loaded, err := menu.ReactionMenuFromDict(data)
	if err != nil {
		return nil, err
	}

	p := &PollMenu{
		ReactionMenu: loaded,
		StartTime:    time.Now().UTC(),
		session:      session,
		logger:       logger,
		voters:       make(map[string]string),
	}
	if sc, ok := data["single_choice"].(bool); ok {
		p.SingleChoice = sc
	}
	if raw, ok := data["start_time"].(string); ok {
		if start, err := time.Parse(time.RFC3339, raw); err == nil {
			p.StartTime = start
		}
	}
	p.BindHandlers(p.handleAdd, p.handleRemove)
	return p, nil
}
