package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/team"
)

const (
	publicHelp = `Available commands:
/help - Show this message`

	adminHelp = `Available commands:
/pending [module] - List pending registrations
/approve <id> - Approve a registration
/reject <id> - Reject a registration
/find <email> - Look up a registration by email
/team <id> - Show a registration's team members
/stats [module] - Registration counts by status
/help - Show this message

Examples:
/pending business_innovation
/approve 42
/find ayesha@uni.edu.pk
/team 42`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routePublicCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start": b.handleHelp,
		"help":  b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"pending": b.handlePending,
		"approve": b.handleApprove,
		"reject":  b.handleReject,
		"find":    b.handleFind,
		"team":    b.handleTeam,
		"stats":   b.handleStats,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, publicHelp)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routePublicCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	if b.admins[msg.From.ID] {
		b.sendMessage(msg.Chat.ID, adminHelp)
		return nil
	}
	b.sendMessage(msg.Chat.ID, publicHelp)
	return nil
}

func (b *Bot) handlePending(msg *tgbotapi.Message) error {
	module := strings.TrimSpace(msg.CommandArguments())

	regs, err := b.store.ListRegistrations(module, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to list pending registrations: %w", err)
	}
	if len(regs) == 0 {
		b.sendMessage(msg.Chat.ID, "No pending registrations")
		return nil
	}

	var sb strings.Builder
	for _, reg := range regs {
		members := team.Members(reg.TeamMembers)
		fmt.Fprintf(&sb, "#%d %s <%s> %s", reg.ID, reg.Name, reg.Email, reg.Module)
		if reg.TeamName != "" {
			fmt.Fprintf(&sb, " team=%q(%d)", reg.TeamName, len(members))
		}
		sb.WriteString("\n")
	}
	b.sendMessage(msg.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleApprove(msg *tgbotapi.Message) error {
	return b.decide(msg, models.StatusApproved)
}

func (b *Bot) handleReject(msg *tgbotapi.Message) error {
	return b.decide(msg, models.StatusRejected)
}

func (b *Bot) decide(msg *tgbotapi.Message, status string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
	if err != nil {
		return fmt.Errorf("usage: /%s <id>", msg.Command())
	}

	reg, err := b.store.GetRegistration(id)
	if err != nil {
		return err
	}
	if reg == nil {
		return fmt.Errorf("registration #%d not found", id)
	}

	if err := b.store.UpdateRegistrationStatus(id, status); err != nil {
		return err
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf("#%d %s is now %s", id, reg.Name, status))
	return nil
}

func (b *Bot) handleFind(msg *tgbotapi.Message) error {
	email := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if email == "" {
		return fmt.Errorf("usage: /find <email>")
	}

	reg, err := b.store.GetRegistrationByEmail(email)
	if err != nil {
		return err
	}
	if reg == nil {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("No registration for %s", email))
		return nil
	}

	members := team.Members(reg.TeamMembers)
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s <%s>\n", reg.ID, reg.Name, reg.Email)
	fmt.Fprintf(&sb, "module: %s\nstatus: %s\n", reg.Module, reg.Status)
	if reg.TeamName != "" {
		fmt.Fprintf(&sb, "team: %q (%d members)\n", reg.TeamName, len(members))
	}
	if reg.CurrentPhase != "" {
		fmt.Fprintf(&sb, "phase: %s (%s)\n", reg.CurrentPhase, reg.SubmissionStatus)
	}
	b.sendMessage(msg.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleTeam(msg *tgbotapi.Message) error {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
	if err != nil {
		return fmt.Errorf("usage: /team <id>")
	}

	reg, err := b.store.GetRegistration(id)
	if err != nil {
		return err
	}
	if reg == nil {
		return fmt.Errorf("registration #%d not found", id)
	}

	members := team.Members(reg.TeamMembers)
	if len(members) == 0 {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("#%d has no team members on record", id))
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Team %q (#%d):\n", reg.TeamName, reg.ID)
	for i, m := range members {
		fmt.Fprintf(&sb, "%d. %s <%s> %s %s\n", i+1, m.Name, m.Email, m.RollNo, m.CNICFormatted)
	}
	b.sendMessage(msg.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	module := strings.TrimSpace(msg.CommandArguments())

	counts, err := b.store.StatusCounts(module)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	scope := module
	if scope == "" {
		scope = "all modules"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Registrations (%s):\n", scope)
	total := int64(0)
	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		fmt.Fprintf(&sb, "%s: %d\n", status, counts[status])
		total += counts[status]
	}
	fmt.Fprintf(&sb, "total: %d", total)
	b.sendMessage(msg.Chat.ID, sb.String())
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error.Printf("Failed to send message: %v", err)
	}
}
