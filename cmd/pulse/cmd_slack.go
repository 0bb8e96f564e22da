package main

import (
	"strings"

	"basegraph.app/pulse/internal/formatter"
	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/service/chat"
	"basegraph.app/pulse/internal/transport"
	"github.com/spf13/cobra"
)

func (a *app) slackService(search bool) (chat.ChatService, error) {
	validate := a.cfg.Slack.Validate
	if search {
		validate = a.cfg.Slack.ValidateSearch
	}
	if err := validate(); err != nil {
		return nil, err
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	bot, user := chat.NewSlackClients(a.cfg.Slack, transport.WithTimeout(a.cfg.HTTPTimeout))
	f := formatter.NewMessageFormatter(loc, a.cfg.Slack.LookupConcurrency)
	return chat.NewSlackService(bot, user, f), nil
}

func newSlackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "slack",
		Short:            "Slack channels, messages, threads and search",
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: withService("slack"),
		RunE:             groupRunE("pulse slack <channels|messages|thread|search|find-channel|user> [args...]"),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "channels",
			Short: "List public and private channels",
			Args:  usageArgs(0, 0, "slack channels"),
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := a.slackService(false)
				if err != nil {
					return err
				}
				channels, err := svc.ListChannels(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(model.ChannelList{Channels: channels})
			},
		},
		&cobra.Command{
			Use:   "messages <channel-id-or-name> [limit]",
			Short: "Show recent channel messages",
			Args:  usageArgs(1, 2, "slack messages <channel-id-or-name> [limit]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				limit, err := optionalLimit(args, 1, chat.DefaultMessageLimit)
				if err != nil {
					return err
				}
				svc, err := a.slackService(false)
				if err != nil {
					return err
				}

				channelID := args[0]
				if !strings.HasPrefix(channelID, "C") {
					channelID, err = svc.FindChannelID(cmd.Context(), channelID)
					if err != nil {
						return err
					}
				}

				messages, err := svc.Messages(cmd.Context(), channelID, limit)
				if err != nil {
					return err
				}
				return a.print(model.MessageList{Messages: messages})
			},
		},
		&cobra.Command{
			Use:   "thread <channel-id> <thread-ts>",
			Short: "Show the replies of a thread",
			Args:  usageArgs(2, 2, "slack thread <channel-id> <thread-ts>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.slackService(false)
				if err != nil {
					return err
				}
				messages, err := svc.Thread(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.print(model.MessageList{Messages: messages})
			},
		},
		&cobra.Command{
			Use:   "search <query> [count]",
			Short: "Search messages (needs SLACK_USER_TOKEN)",
			Args:  usageArgs(1, 2, "slack search <query> [count]"),
			RunE: func(cmd *cobra.Command, args []string) error {
				count, err := optionalLimit(args, 1, chat.DefaultSearchCount)
				if err != nil {
					return err
				}
				svc, err := a.slackService(true)
				if err != nil {
					return err
				}
				results, err := svc.Search(cmd.Context(), args[0], count)
				if err != nil {
					return err
				}
				return a.print(model.SearchResults{Results: results, Query: args[0]})
			},
		},
		&cobra.Command{
			Use:   "find-channel <name>",
			Short: "Resolve a channel name to its id",
			Args:  usageArgs(1, 1, "slack find-channel <name>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.slackService(false)
				if err != nil {
					return err
				}
				channelID, err := svc.FindChannelID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(model.ChannelMatch{ChannelID: channelID, Name: args[0]})
			},
		},
		&cobra.Command{
			Use:   "user <user-id>",
			Short: "Show a user's names",
			Args:  usageArgs(1, 1, "slack user <user-id>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.slackService(false)
				if err != nil {
					return err
				}
				user, err := svc.UserInfo(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(user)
			},
		},
	)
	return cmd
}
