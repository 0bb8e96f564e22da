package chat

import (
	"context"
	"errors"

	"basegraph.app/pulse/internal/model"
)

const (
	DefaultMessageLimit = 10
	DefaultSearchCount  = 10
	ChannelListLimit    = 100
	channelTypes        = "public_channel,private_channel"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrSearchDisabled  = errors.New("message search requires SLACK_USER_TOKEN")
)

type ChatService interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
	// FindChannelID resolves a channel name, with or without a leading '#'.
	FindChannelID(ctx context.Context, name string) (string, error)
	Messages(ctx context.Context, channelID string, limit int) ([]model.Message, error)
	Thread(ctx context.Context, channelID, threadTS string) ([]model.Message, error)
	Search(ctx context.Context, query string, count int) ([]model.SearchResult, error)
	UserInfo(ctx context.Context, userID string) (*model.User, error)
}
