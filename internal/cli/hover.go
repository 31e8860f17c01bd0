package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/innocenzi/dependi/internal/app"
	"github.com/innocenzi/dependi/internal/shared"
)

type hoverOptions struct {
	Registry string
	NoVulns  bool
}

func newHoverCommand() *cobra.Command {
	opts := hoverOptions{}
	cmd := &cobra.Command{
		Use:   "hover <manifest> <dependency>",
		Short: "Print the hover document for one dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHover(cmd.Context(), cmd, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Registry base URL override")
	cmd.Flags().BoolVar(&opts.NoVulns, "no-vulns", false, "Skip vulnerability lookups")
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("no_vulns", cmd.Flags().Lookup("no-vulns"))
	return cmd
}

func runHover(ctx context.Context, cmd *cobra.Command, opts hoverOptions, manifestPath string, dependency string) error {
	service := newAppService()
	result, err := service.Annotate(ctx, app.AnnotateRequest{
		ManifestPath: manifestPath,
		RegistryURL:  resolveString(cmd, opts.Registry, "registry", "registry"),
		NoVulns:      resolveBool(cmd, opts.NoVulns, "no_vulns", "no-vulns"),
	})
	if err != nil {
		return err
	}
	for _, annotated := range result.Items {
		if !strings.EqualFold(shared.TrimQuotes(annotated.Item.Key), dependency) {
			continue
		}
		fmt.Println(annotated.Decoration.Hover)
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("dependency not declared in manifest: %s", dependency))
}
