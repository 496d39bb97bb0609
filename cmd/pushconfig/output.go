package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/pushconfig/internal/model"
)

func printConfigJSON(cfg *model.PushConfig) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printConfigListJSON(configs []*model.TaskPushConfig, nextToken string) {
	out := struct {
		Configs       []*model.TaskPushConfig `json:"configs"`
		NextPageToken string                  `json:"next_page_token,omitempty"`
	}{Configs: configs, NextPageToken: nextToken}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printConfigListTable(configs []*model.TaskPushConfig, nextToken string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONFIG ID\tURL\tAUTH SCHEMES")
	for _, c := range configs {
		schemes := ""
		if c.Config.Authentication != nil {
			schemes = strings.Join(c.Config.Authentication.Schemes, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Config.ID, c.Config.URL, schemes)
	}
	w.Flush()
	fmt.Printf("\n%d config(s)\n", len(configs))
	if nextToken != "" {
		fmt.Printf("next page token: %s\n", nextToken)
	}
}
