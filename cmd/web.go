package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/notion-blog/internal/web"
	"github.com/Laisky/notion-blog/internal/web/blog/controller"
	"github.com/Laisky/notion-blog/library/log"
)

var webCMD = &cobra.Command{
	Use:   "web",
	Short: "web",
	Long:  `serve the blog site over http`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		site := controller.New(log.Logger.Named("site"), services.blog,
			controller.Settings{
				SiteTitle:  gconfig.Shared.GetString("settings.site.title"),
				SiteURL:    gconfig.Shared.GetString("settings.site.url"),
				Revalidate: revalidateInterval(),
			})

		// serve even when warming fails, pages revalidate on demand
		if err := site.Warm(cmd.Context()); err != nil {
			log.Logger.Warn("warm page cache", zap.Error(err))
		}

		web.RunServer(gconfig.Shared.GetString("listen"), site)
	},
}

func init() {
	rootCMD.AddCommand(webCMD)
}
