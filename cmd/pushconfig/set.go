package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/groblegark/pushconfig/internal/model"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <task-id> <url>",
	Short: "Create or replace a push notification config for a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, url := args[0], args[1]
		configID, _ := cmd.Flags().GetString("config-id")
		token, _ := cmd.Flags().GetString("push-token")
		schemes, _ := cmd.Flags().GetStringSlice("auth-scheme")
		credentials, _ := cmd.Flags().GetString("auth-credentials")

		cfg := &model.PushConfig{
			ID:    configID,
			URL:   url,
			Token: token,
		}
		if len(schemes) > 0 || credentials != "" {
			cfg.Authentication = &model.AuthenticationInfo{
				Schemes:     schemes,
				Credentials: credentials,
			}
		}

		stored, err := apiClient.SetInfo(context.Background(), taskID, cfg)
		if err != nil {
			return err
		}

		if jsonOutput {
			printConfigJSON(stored)
		} else {
			fmt.Printf("config %q set for task %q (%s)\n", stored.ID, taskID, stored.URL)
			if stored.Authentication != nil {
				fmt.Printf("auth schemes: %s\n", strings.Join(stored.Authentication.Schemes, ", "))
			}
		}
		return nil
	},
}

func init() {
	setCmd.Flags().String("config-id", "", "config ID (defaults to the task ID)")
	setCmd.Flags().String("push-token", "", "token the receiver can use to validate callbacks")
	setCmd.Flags().StringSlice("auth-scheme", nil, "authentication scheme for the callback (repeatable)")
	setCmd.Flags().String("auth-credentials", "", "credentials for the callback")
}
