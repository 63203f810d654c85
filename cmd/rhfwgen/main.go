package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rhfwgen",
		Short: "generates rhfw enum tables from the enum registry",
	}
	cmd.AddCommand(NewGenerateCommand(ctx))
	return cmd
}

func main() {
	ctx := context.Background()
	if err := NewRootCommand(ctx).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
