package cmd

import (
	"context"
	"os"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/notion-blog/internal/social"
	"github.com/Laisky/notion-blog/library/log"
)

var socialCMD = &cobra.Command{
	Use:   "social",
	Short: "social",
	Long:  `draft social media copy for published posts`,
	Args:  gcmd.NoExtraArgs,
}

var socialGenerateCMD = &cobra.Command{
	Use:   "generate",
	Short: "generate",
	Long:  `draft social media copy with an llm`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		generator, err := social.NewLLMGenerator(social.LLMSettings{
			APIBase: gconfig.Shared.GetString("settings.llm.api_base"),
			APIKey:  gconfig.Shared.GetString("settings.llm.api_key"),
			Model:   gconfig.Shared.GetString("settings.llm.model"),
		})
		if err != nil {
			log.Logger.Panic("new llm generator", zap.Error(err))
		}

		runSocial(cmd.Context(), generator)
	},
}

var socialManualCMD = &cobra.Command{
	Use:   "manual",
	Short: "manual",
	Long:  `paste social media copy written by hand`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runSocial(cmd.Context(),
			social.NewManualGenerator(os.Stdin, os.Stdout))
	},
}

func runSocial(ctx context.Context, generator social.Generator) {
	workflow := social.NewWorkflow(log.Logger.Named("social"),
		services.blog, services.tracker, generator, os.Stdin, os.Stdout)
	if err := workflow.Run(ctx); err != nil {
		log.Logger.Error("social workflow", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	socialCMD.AddCommand(socialGenerateCMD, socialManualCMD)
	rootCMD.AddCommand(socialCMD)
}
