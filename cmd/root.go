// Package cmd is the command line entry of notion-blog.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	blogSvc "github.com/Laisky/notion-blog/internal/web/blog/service"
	trackerSvc "github.com/Laisky/notion-blog/internal/web/tracker/service"
	"github.com/Laisky/notion-blog/library/config"
	"github.com/Laisky/notion-blog/library/db/notion"
	"github.com/Laisky/notion-blog/library/log"
)

var rootCMD = &cobra.Command{
	Use:   "notion-blog",
	Short: "notion-blog",
	Long:  `blog site and social tooling backed by Notion databases`,
	Args:  gcmd.NoExtraArgs,
}

// app holds the shared services built during initialize.
type app struct {
	blog    *blogSvc.Blog
	tracker *trackerSvc.Tracker
}

var services app

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	setupSettings(ctx)
	setupLogger(ctx)
	if err := setupServices(ctx); err != nil {
		return errors.Wrap(err, "setup services")
	}

	return nil
}

func setupSettings(ctx context.Context) {
	if gconfig.Shared.GetBool("debug") {
		fmt.Println("run in debug mode")
		gconfig.Shared.Set("log-level", "debug")
	} else {
		fmt.Println("run in prod mode")
	}

	cfgPath := gconfig.Shared.GetString("config")
	config.LoadFromFile(cfgPath)
}

func setupLogger(ctx context.Context) {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		log.Logger.Panic("change log level", zap.Error(err), zap.String("level", lvl))
	}
}

func setupServices(ctx context.Context) error {
	cli, err := notion.NewClient(log.Logger.Named("notion"), notion.DialInfo{
		Token:   gconfig.Shared.GetString("settings.notion.token"),
		APIBase: gconfig.Shared.GetString("settings.notion.api_base"),
	})
	if err != nil {
		return errors.Wrap(err, "new notion client")
	}

	services = app{
		blog: blogSvc.New(log.Logger.Named("blog"), cli, blogSvc.Settings{
			DatabaseID: gconfig.Shared.GetString("settings.notion.posts_database"),
		}),
		tracker: trackerSvc.New(log.Logger.Named("tracker"), cli, trackerSvc.Settings{
			DatabaseID: gconfig.Shared.GetString("settings.notion.tracker_database"),
		}),
	}

	return nil
}

// revalidateInterval reads the configured cache lifetime, zero when unset
// so the controller default applies.
func revalidateInterval() time.Duration {
	secs := gconfig.Shared.GetInt("settings.site.revalidate_seconds")
	return time.Duration(secs) * time.Second
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().String("listen", "localhost:8080", "like `localhost:8080`")
	rootCMD.PersistentFlags().StringP("config", "c", "/etc/notion-blog/settings.yml", "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute execute root command
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}
