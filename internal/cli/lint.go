package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/innocenzi/dependi/internal/app"
	"github.com/innocenzi/dependi/internal/types"
)

type lintOptions struct {
	Registry string
	Prefs    string
	NoVulns  bool
	FailOn   string
}

func newLintCommand() *cobra.Command {
	opts := lintOptions{}
	cmd := &cobra.Command{
		Use:   "lint <manifest>",
		Short: "Annotate a manifest with version compatibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Registry base URL override")
	cmd.Flags().StringVar(&opts.Prefs, "prefs", "", "Prefs file path (.dependi.yaml)")
	cmd.Flags().BoolVar(&opts.NoVulns, "no-vulns", false, "Skip vulnerability lookups")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", "incompatible", "Fail threshold: never, error, incompatible")

	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("prefs", cmd.Flags().Lookup("prefs"))
	_ = viper.BindPFlag("no_vulns", cmd.Flags().Lookup("no-vulns"))
	_ = viper.BindPFlag("fail_on", cmd.Flags().Lookup("fail-on"))

	return cmd
}

func runLint(ctx context.Context, cmd *cobra.Command, opts lintOptions, manifestPath string) error {
	service := newAppService()
	result, err := service.Annotate(ctx, app.AnnotateRequest{
		ManifestPath: manifestPath,
		RegistryURL:  resolveString(cmd, opts.Registry, "registry", "registry"),
		PrefsPath:    resolveString(cmd, opts.Prefs, "prefs", "prefs"),
		NoVulns:      resolveBool(cmd, opts.NoVulns, "no_vulns", "no-vulns"),
	})
	if err != nil {
		return err
	}
	service.Session.WaitSaves()

	base := filepath.Base(manifestPath)
	for _, annotated := range result.Items {
		fmt.Printf("%s:%d\t%s %s\t%s\n",
			base,
			annotated.Item.Line+1,
			annotated.Item.Key,
			annotated.Item.Value,
			strings.ReplaceAll(annotated.Decoration.RenderText, "\t", " "),
		)
	}
	fmt.Printf("%d compatible, %d incompatible, %d errors\n",
		result.Counts[types.ClassificationCompatible],
		result.Counts[types.ClassificationIncompatible],
		result.Counts[types.ClassificationError],
	)
	return lintFailure(resolveString(cmd, opts.FailOn, "fail_on", "fail-on"), result.Counts)
}

func lintFailure(failOn string, counts map[types.Classification]int) error {
	switch strings.ToLower(strings.TrimSpace(failOn)) {
	case "never":
		return nil
	case "error":
		if counts[types.ClassificationError] > 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("annotation errors: %d", counts[types.ClassificationError]))
		}
		return nil
	case "", "incompatible":
		if counts[types.ClassificationError] > 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("annotation errors: %d", counts[types.ClassificationError]))
		}
		if counts[types.ClassificationIncompatible] > 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("incompatible dependencies: %d", counts[types.ClassificationIncompatible]))
		}
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid fail-on value: %s", failOn))
	}
}
