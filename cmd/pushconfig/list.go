package main

import (
	"context"

	"github.com/groblegark/pushconfig/internal/client"
	"github.com/groblegark/pushconfig/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <task-id>",
	Short: "List push notification configs for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID := args[0]
		pageSize, _ := cmd.Flags().GetInt("page-size")
		pageToken, _ := cmd.Flags().GetString("page-token")
		tenant, _ := cmd.Flags().GetString("tenant")
		all, _ := cmd.Flags().GetBool("all")

		var configs []*model.TaskPushConfig
		nextToken := ""
		token := pageToken
		for {
			result, err := apiClient.ListInfo(context.Background(), &client.ListInfoRequest{
				TaskID:    taskID,
				PageSize:  pageSize,
				PageToken: token,
				Tenant:    tenant,
			})
			if err != nil {
				return err
			}
			configs = append(configs, result.Configs...)
			nextToken = result.NextPageToken
			if !all || nextToken == "" {
				break
			}
			token = nextToken
		}

		if jsonOutput {
			printConfigListJSON(configs, nextToken)
		} else {
			printConfigListTable(configs, nextToken)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Int("page-size", 0, "maximum configs per page (0 = server default)")
	listCmd.Flags().String("page-token", "", "page token from a previous listing")
	listCmd.Flags().String("tenant", "", "tenant to list for")
	listCmd.Flags().Bool("all", false, "follow page tokens until the listing is exhausted")
}
