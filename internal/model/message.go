package model

// Message is a chat message ready for display. User is the resolved display
// name, or the raw user id when it could not be resolved.
type Message struct {
	User       string  `json:"user"`
	Text       string  `json:"text"`
	Time       string  `json:"time"`
	ThreadTS   *string `json:"thread_ts"`
	ReplyCount int     `json:"reply_count"`
}

type SearchResult struct {
	Channel   string `json:"channel"`
	User      string `json:"user"`
	Text      string `json:"text"`
	Time      string `json:"time"`
	Permalink string `json:"permalink"`
}

type Channel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type ChannelList struct {
	Channels []Channel `json:"channels"`
}

type MessageList struct {
	Messages []Message `json:"messages"`
}

type SearchResults struct {
	Results []SearchResult `json:"results"`
	Query   string         `json:"query"`
}

type ChannelMatch struct {
	ChannelID string `json:"channel_id"`
	Name      string `json:"name"`
}
