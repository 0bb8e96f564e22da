// Package formatter turns raw chat payloads into display records.
package formatter

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"basegraph.app/pulse/internal/dto"
	"basegraph.app/pulse/internal/identity"
	"basegraph.app/pulse/internal/model"
	"golang.org/x/sync/errgroup"
)

// Text limits in characters. Search results are denser than channel
// listings, so they are cut shorter.
const (
	ChannelTextLimit = 300
	SearchTextLimit  = 200

	TimeLayout = "2006-01-02 15:04"

	notAvailable = "N/A"
)

type MessageFormatter struct {
	location    *time.Location
	concurrency int
}

// NewMessageFormatter renders times in loc (time.Local when nil) and resolves
// at most concurrency user ids at a time.
func NewMessageFormatter(loc *time.Location, concurrency int) *MessageFormatter {
	if loc == nil {
		loc = time.Local
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &MessageFormatter{location: loc, concurrency: concurrency}
}

// FormatMessages keeps input order. Authors are resolved through cache with
// lookup; distinct ids are prefetched concurrently before formatting.
func (f *MessageFormatter) FormatMessages(ctx context.Context, raw []dto.SlackMessage, cache *identity.Cache, lookup identity.LookupFunc) []model.Message {
	f.prefetch(ctx, raw, cache, lookup)

	messages := make([]model.Message, 0, len(raw))
	for _, m := range raw {
		user := m.User
		if user != "" {
			user = cache.Resolve(ctx, m.User, lookup)
		}
		messages = append(messages, model.Message{
			User:       user,
			Text:       Truncate(m.Text, ChannelTextLimit),
			Time:       f.FormatTimestamp(m.Ts),
			ThreadTS:   m.ThreadTs,
			ReplyCount: max(m.ReplyCount, 0),
		})
	}
	return messages
}

func (f *MessageFormatter) prefetch(ctx context.Context, raw []dto.SlackMessage, cache *identity.Cache, lookup identity.LookupFunc) {
	seen := make(map[string]struct{}, len(raw))
	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for _, m := range raw {
		if m.User == "" {
			continue
		}
		if _, ok := seen[m.User]; ok {
			continue
		}
		seen[m.User] = struct{}{}

		userID := m.User
		g.Go(func() error {
			cache.Resolve(ctx, userID, lookup)
			return nil
		})
	}
	_ = g.Wait()
}

// FormatSearchResults maps search matches without user lookups; search
// results already carry the author's handle.
func (f *MessageFormatter) FormatSearchResults(matches []dto.SlackSearchMatch) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(matches))
	for _, m := range matches {
		channel := notAvailable
		if m.Channel != nil && m.Channel.Name != "" {
			channel = m.Channel.Name
		}
		user := m.Username
		if user == "" {
			user = notAvailable
		}
		results = append(results, model.SearchResult{
			Channel:   channel,
			User:      user,
			Text:      Truncate(m.Text, SearchTextLimit),
			Time:      f.FormatTimestamp(m.Ts),
			Permalink: m.Permalink,
		})
	}
	return results
}

// FormatTimestamp renders a Slack "<seconds>.<fraction>" timestamp as local
// "YYYY-MM-DD HH:MM". Anything that is not a usable timestamp is returned
// unchanged.
func (f *MessageFormatter) FormatTimestamp(ts string) string {
	secondsPart, _, _ := strings.Cut(ts, ".")
	seconds, err := strconv.ParseFloat(secondsPart, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ts
	}

	t := time.Unix(int64(seconds), 0).In(f.location)
	if t.Year() < 1 || t.Year() > 9999 {
		return ts
	}
	return t.Format(TimeLayout)
}

// Truncate keeps at most limit characters of s.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
