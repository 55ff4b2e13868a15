/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/tk-dump/tavernkeeper"
)

var listCampaignsUsage = strings.TrimSpace(`
If you want to find out which campaigns an export would walk, use this command.
`)

var listCampaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Print list of campaigns",
	Long:  listCampaignsUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		api, err := listAPI()
		if err != nil {
			return err
		}

		log.Printf("Listing campaigns of user %s...\n", UserID)
		res := api.Get(ctx, tavernkeeper.UserCampaignsPath(UserID))
		if res.Outcome == tavernkeeper.Failed {
			return fmt.Errorf("list: couldn't list campaigns: %s", res.Describe())
		}

		campaigns := res.Record.Records("campaigns")
		log.Printf("Found %d campaigns.\n", len(campaigns))

		fmt.Printf("campaigns:\n")
		printRecords(campaigns)
		return nil
	},
}

var listCharactersUsage = strings.TrimSpace(`
If you want to find out which characters an export would walk, use this command.  Archived
characters are listed after active ones.
`)

var listCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Print list of characters",
	Long:  listCharactersUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		api, err := listAPI()
		if err != nil {
			return err
		}

		log.Printf("Listing characters of user %s...\n", UserID)
		path := tavernkeeper.UserCharactersPath(UserID)
		for _, archived := range []bool{false, true} {
			res := api.GetPaged(ctx, path, "characters", tavernkeeper.PageQuery{Archived: archived})
			if res.Outcome == tavernkeeper.Failed {
				return fmt.Errorf("list: couldn't list characters (archived=%v): %s", archived, res.Describe())
			}

			if archived {
				fmt.Printf("archived:\n")
			} else {
				fmt.Printf("active:\n")
			}
			printRecords(res.Items)
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listCampaignsCmd)
	listCmd.AddCommand(listCharactersCmd)
}

func listAPI() (*tavernkeeper.API, error) {
	if UserID == "" {
		return nil, fmt.Errorf("list: please provide --user-id")
	}
	api, err := newAPI(Delay)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return api, nil
}

func printRecords(records []tavernkeeper.Record) {
	for _, r := range records {
		fmt.Printf("  - %s: %s\n", r.ID(), r.Name())
	}
}
