package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/seed"
	"nexuscore-backend/internal/session"
)

func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Print the seed member registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			status, _ := cmd.Flags().GetString("status")
			asJSON, _ := cmd.Flags().GetBool("json")

			clock := flow.RealClock()
			ctrl := session.New("cli", seed.Load(clock.Now()), clock)
			members := ctrl.FilterMembers(search, status)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(members)
			}
			return printRegistry(cmd.OutOrStdout(), members)
		},
	}

	cmd.Flags().StringP("search", "s", "", "Match email or id (case-insensitive)")
	cmd.Flags().String("status", domain.StatusFilterAll, "ACTIVE, SUSPENDED, BANNED or ALL")
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func printRegistry(out io.Writer, members []*domain.Member) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tROLE\tSTATUS\tPOINTS\tJOINED")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			m.ID, m.Email, m.Role, m.Status, m.Points, m.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}
