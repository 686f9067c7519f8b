package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
)

func newNotificationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif"},
		Short:   "View and acknowledge notifications",
	}

	cmd.AddCommand(
		newNotificationListCmd(app),
		newNotificationReadCmd(app),
	)

	return cmd
}

func newNotificationListCmd(app *App) *cobra.Command {
	var user string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications for a user, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := user
			if userID == "" {
				userID = app.Actor
			}

			notifications, err := app.Notifications.ListForUser(context.Background(), userID, limit)
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Printf("No notifications for %s.\n", userID)
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatNotificationList(notifications))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID (defaults to the current actor)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum notifications to show")

	return cmd
}

func newNotificationReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Notifications.MarkRead(context.Background(), app.Actor, args[0]); err != nil {
				return err
			}
			fmt.Printf("Marked notification [%s] read\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}
