package mapper

import (
	"basegraph.app/pulse/internal/dto"
	"basegraph.app/pulse/internal/model"
)

type SlackMapper struct{}

func NewSlackMapper() *SlackMapper {
	return &SlackMapper{}
}

func (m *SlackMapper) Channels(raw []dto.SlackChannel) []model.Channel {
	channels := make([]model.Channel, 0, len(raw))
	for _, c := range raw {
		channels = append(channels, model.Channel{ID: c.ID, Name: c.Name, IsPrivate: c.IsPrivate})
	}
	return channels
}

// User prefers the real name and falls back to the handle.
func (m *SlackMapper) User(raw dto.SlackUser) model.User {
	name := raw.RealName
	if name == "" {
		name = raw.Name
	}
	return model.User{
		ID:          raw.ID,
		Name:        name,
		DisplayName: raw.Profile.DisplayName,
	}
}
