package chat

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"basegraph.app/pulse/core/config"
	"basegraph.app/pulse/internal/dto"
	"basegraph.app/pulse/internal/formatter"
	"basegraph.app/pulse/internal/identity"
	"basegraph.app/pulse/internal/mapper"
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/transport"
)

type slackResponse interface {
	Failure() error
}

type slackService struct {
	bot       *transport.Client
	user      *transport.Client // nil without a user token
	formatter *formatter.MessageFormatter
	mapper    *mapper.SlackMapper
}

func NewSlackService(bot, user *transport.Client, f *formatter.MessageFormatter) ChatService {
	return &slackService{
		bot:       bot,
		user:      user,
		formatter: f,
		mapper:    mapper.NewSlackMapper(),
	}
}

// NewSlackClients builds the bot client and, when a user token is set, the
// user client used for search.
func NewSlackClients(cfg config.SlackConfig, opts ...transport.Option) (bot, user *transport.Client) {
	build := func(token string) *transport.Client {
		all := append([]transport.Option{
			transport.WithBearerToken(token),
			transport.WithDescriber(transport.DescribeStatus),
		}, opts...)
		return transport.New("slack", cfg.BaseURL, all...)
	}

	bot = build(cfg.BotToken)
	if cfg.UserToken != "" {
		user = build(cfg.UserToken)
	}
	return bot, user
}

func (s *slackService) call(ctx context.Context, client *transport.Client, method string, params url.Values, out slackResponse) error {
	if err := client.Do(ctx, transport.Request{Path: method, Query: params}, out); err != nil {
		return err
	}
	return out.Failure()
}

func (s *slackService) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var resp dto.SlackChannelsResponse
	err := s.call(ctx, s.bot, "conversations.list", url.Values{
		"types": {channelTypes},
		"limit": {strconv.Itoa(ChannelListLimit)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return s.mapper.Channels(resp.Channels), nil
}

func (s *slackService) FindChannelID(ctx context.Context, name string) (string, error) {
	channels, err := s.ListChannels(ctx)
	if err != nil {
		return "", err
	}
	want := strings.TrimPrefix(name, "#")
	for _, ch := range channels {
		if ch.Name == want {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrChannelNotFound, name)
}

func (s *slackService) Messages(ctx context.Context, channelID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	var resp dto.SlackMessagesResponse
	err := s.call(ctx, s.bot, "conversations.history", url.Values{
		"channel": {channelID},
		"limit":   {strconv.Itoa(limit)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching channel history: %w", err)
	}
	return s.format(ctx, resp.Messages), nil
}

func (s *slackService) Thread(ctx context.Context, channelID, threadTS string) ([]model.Message, error) {
	var resp dto.SlackMessagesResponse
	err := s.call(ctx, s.bot, "conversations.replies", url.Values{
		"channel": {channelID},
		"ts":      {threadTS},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching thread replies: %w", err)
	}
	return s.format(ctx, resp.Messages), nil
}

// format runs one formatting pass with its own identity cache.
func (s *slackService) format(ctx context.Context, raw []dto.SlackMessage) []model.Message {
	return s.formatter.FormatMessages(ctx, raw, identity.NewCache(), s.displayName)
}

func (s *slackService) displayName(ctx context.Context, userID string) (string, error) {
	user, err := s.UserInfo(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

func (s *slackService) Search(ctx context.Context, query string, count int) ([]model.SearchResult, error) {
	if s.user == nil {
		return nil, ErrSearchDisabled
	}
	if count <= 0 {
		count = DefaultSearchCount
	}
	var resp dto.SlackSearchResponse
	err := s.call(ctx, s.user, "search.messages", url.Values{
		"query": {query},
		"count": {strconv.Itoa(count)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}
	return s.formatter.FormatSearchResults(resp.Messages.Matches), nil
}

func (s *slackService) UserInfo(ctx context.Context, userID string) (*model.User, error) {
	var resp dto.SlackUserResponse
	err := s.call(ctx, s.bot, "users.info", url.Values{"user": {userID}}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	user := s.mapper.User(resp.User)
	return &user, nil
}
