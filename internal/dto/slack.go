package dto

import "fmt"

// SlackEnvelope is embedded in every Slack Web API response. Slack reports
// application errors with HTTP 200 and ok=false.
type SlackEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (e SlackEnvelope) Failure() error {
	if e.OK {
		return nil
	}
	code := e.Error
	if code == "" {
		code = "unknown error"
	}
	return fmt.Errorf("slack api error: %s", code)
}

type SlackChannel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

type SlackChannelsResponse struct {
	SlackEnvelope
	Channels []SlackChannel `json:"channels"`
}

type SlackMessage struct {
	User       string  `json:"user"`
	Text       string  `json:"text"`
	Ts         string  `json:"ts"`
	ThreadTs   *string `json:"thread_ts"`
	ReplyCount int     `json:"reply_count"`
}

type SlackMessagesResponse struct {
	SlackEnvelope
	Messages []SlackMessage `json:"messages"`
}

type SlackSearchMatch struct {
	Channel   *SlackChannel `json:"channel"`
	Username  string        `json:"username"`
	Text      string        `json:"text"`
	Ts        string        `json:"ts"`
	Permalink string        `json:"permalink"`
}

type SlackSearchResponse struct {
	SlackEnvelope
	Messages struct {
		Matches []SlackSearchMatch `json:"matches"`
	} `json:"messages"`
}

type SlackUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name"`
	Profile  struct {
		DisplayName string `json:"display_name"`
	} `json:"profile"`
}

type SlackUserResponse struct {
	SlackEnvelope
	User SlackUser `json:"user"`
}
