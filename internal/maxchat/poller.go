package maxchat

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"github.com/sandeepkv93/studystreak/internal/bot"
)

type Handler interface {
	Handle(ctx context.Context, req bot.Request) (string, bool)
}

// Poller reads updates from the MAX Bot API and answers slash commands.
// Updates are handled one at a time in arrival order.
// Commands addressed to another bot ("/name@other") are ignored once
// Identify has learned our username.
type Poller struct {
	api      *maxbot.Api
	handler  Handler
	logger   *log.Logger
	username string
}

func New(token string, h Handler, logger *log.Logger) (*Poller, error) {
	if token == "" {
		return nil, errors.New("maxchat: empty bot token")
	}
	api, err := maxbot.New(token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Poller{api: api, handler: h, logger: logger}, nil
}

// Identify asks the API who we are and remembers the bot username for
// command addressing. It returns the visible name for the startup banner.
func (p *Poller) Identify(ctx context.Context) (string, error) {
	info, err := p.api.Bots.GetBot(ctx)
	if err != nil {
		return "", err
	}
	p.username = info.Username
	return info.Name, nil
}

// ErrStreamClosed is returned by Run when updates stop arriving while ctx is
// still live.
var ErrStreamClosed = errors.New("maxchat: update stream closed")

// Run blocks until the update stream closes. It returns ctx.Err() after a
// cancellation and ErrStreamClosed otherwise.
func (p *Poller) Run(ctx context.Context) error {
	return p.consume(ctx, p.api.GetUpdates(ctx))
}

func (p *Poller) consume(ctx context.Context, updates <-chan schemes.UpdateInterface) error {
	for update := range updates {
		upd, ok := update.(*schemes.MessageCreatedUpdate)
		if !ok {
			continue
		}
		p.handleMessage(ctx, upd)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStreamClosed
}

func (p *Poller) handleMessage(ctx context.Context, upd *schemes.MessageCreatedUpdate) {
	sender := upd.Message.Sender
	req, ok := toRequest(upd.Message.Body.Text, p.username, int64(sender.UserId), sender.FirstName, sender.Username)
	if !ok {
		return
	}
	reply, ok := p.handler.Handle(ctx, req)
	if !ok {
		return
	}

	chatID := int64(upd.Message.Recipient.ChatId)
	if _, err := p.api.Messages.Send(ctx, maxbot.NewMessage().SetChat(chatID).SetText(reply)); err != nil {
		p.logger.Printf("send reply to chat %d: %v", chatID, err)
	}
}

func toRequest(text, botName string, userID int64, firstName, username string) (bot.Request, bool) {
	return bot.RequestFromText(text, botName, bot.Sender{
		ID:        strconv.FormatInt(userID, 10),
		FirstName: firstName,
		Username:  username,
	})
}
