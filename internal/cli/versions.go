package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/innocenzi/dependi/internal/adapters"
	"github.com/innocenzi/dependi/internal/core"
	"github.com/innocenzi/dependi/internal/types"
)

type versionsOptions struct {
	Ecosystem string
	Registry  string
	Limit     int
}

func newVersionsCommand() *cobra.Command {
	opts := versionsOptions{}
	cmd := &cobra.Command{
		Use:   "versions <dependency>",
		Short: "List known versions of a dependency, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Ecosystem, "ecosystem", "rust", "Ecosystem: rust, go, javascript, python")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Registry base URL override")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Maximum versions to list (0 for all)")

	_ = viper.BindPFlag("ecosystem", cmd.Flags().Lookup("ecosystem"))
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runVersions(ctx context.Context, cmd *cobra.Command, opts versionsOptions, name string) error {
	eco := types.Ecosystem(strings.ToLower(resolveString(cmd, opts.Ecosystem, "ecosystem", "ecosystem")))
	registry, err := adapters.RegistryForEcosystem(eco, resolveString(cmd, opts.Registry, "registry", "registry"))
	if err != nil {
		return err
	}
	versions, err := registry.Versions(ctx, name)
	if err != nil {
		return err
	}
	limit := resolveInt(cmd, opts.Limit, "limit", "limit")
	for i, version := range versions {
		if limit > 0 && i >= limit {
			fmt.Printf("... %d more\n", len(versions)-limit)
			break
		}
		line := version
		if docs := core.DocsLink(eco, name, version); docs != "" {
			line += "  " + docs
		}
		fmt.Println(line)
	}
	return nil
}
