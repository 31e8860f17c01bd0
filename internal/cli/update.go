package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/innocenzi/dependi/internal/app"
)

type updateOptions struct {
	Registry string
	Prefs    string
}

func newUpdateCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "update <manifest>",
		Short: "Replace every declared constraint with the latest version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), cmd, newAppService(), opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Registry base URL override")
	cmd.Flags().StringVar(&opts.Prefs, "prefs", "", "Prefs file path (.dependi.yaml)")
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("prefs", cmd.Flags().Lookup("prefs"))
	return cmd
}

func runUpdate(ctx context.Context, cmd *cobra.Command, service app.Service, opts updateOptions, manifestPath string) error {
	result, err := service.Annotate(ctx, app.AnnotateRequest{
		ManifestPath: manifestPath,
		RegistryURL:  resolveString(cmd, opts.Registry, "registry", "registry"),
		PrefsPath:    resolveString(cmd, opts.Prefs, "prefs", "prefs"),
		NoVulns:      true,
	})
	if err != nil {
		return err
	}
	// An auto-fill save may still be in flight; the document must not be
	// re-read until it has landed, or the fill is lost to the last writer.
	service.Session.WaitSaves()
	doc, err := service.OpenDocument(manifestPath)
	if err != nil {
		return err
	}
	replaced, err := service.ReplaceAll(ctx, doc)
	if err != nil {
		return err
	}
	service.Session.WaitSaves()
	fmt.Printf("updated %d of %d dependencies\n", replaced.Applied, len(result.Items))
	return nil
}

func newAppService() app.Service {
	return app.NewService()
}
