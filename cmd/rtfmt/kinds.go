package main

import (
	"strconv"

	"github.com/bjaus/rtfmt"
	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the display kinds and the capability each one needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, k := range rtfmt.Kinds() {
				example := "{:" + k.String() + "}"
				if k == rtfmt.Display {
					example = "{}"
				}
				if err := rtfmt.Writeln(out, "{:<5} {:<8} {}", strconv.Quote(k.String()), example, k.Capability()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
