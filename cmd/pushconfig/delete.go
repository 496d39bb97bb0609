package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id> [<config-id>]",
	Short: "Delete a push notification config (config ID defaults to the task ID)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID := args[0]
		configID := ""
		if len(args) == 2 {
			configID = args[1]
		}

		if err := apiClient.DeleteInfo(context.Background(), taskID, configID); err != nil {
			return err
		}

		if configID == "" {
			configID = taskID
		}
		fmt.Printf("config %q deleted for task %q\n", configID, taskID)
		return nil
	},
}
