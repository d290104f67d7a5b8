// Package cli implements the erepo command tree. Commands construct the
// presentation controllers and render their state; all data lives behind
// the backend API.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"erepo/internal/api"
	"erepo/internal/config"
	"erepo/internal/session"
	"erepo/internal/util"
)

// App bundles the shared dependencies of every command: config, the API
// client and the session manager. Built once per invocation.
type App struct {
	cfg     config.Config
	client  *api.Client
	session *session.Manager
}

// NewRootCmd builds the erepo command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}
	var configPath string

	root := &cobra.Command{
		Use:           "erepo",
		Short:         "Browse and administer the university e-repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
			util.InitLogger(cfg.LogLevel)

			timeout, err := cfg.Timeout()
			if err != nil {
				return err
			}
			app.client = api.New(cfg.APIURL, api.WithTimeout(timeout))

			store, err := newTokenStore(cfg)
			if err != nil {
				return err
			}
			app.session = session.NewManager(app.client, store)
			app.session.SetSignOutHook(func() {
				fmt.Fprintln(os.Stderr, "session expired, please sign in again with `erepo login`")
			})
			return app.session.Init(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRegisterCmd(app),
		newBooksCmd(app),
		newPapersCmd(app),
		newSearchCmd(app),
		newUsersCmd(app),
		newLecturersCmd(app),
		newDepartmentsCmd(app),
		newCategoriesCmd(app),
		newAuthorsCmd(app),
		newStatsCmd(app),
		newCiteCmd(app),
		newExtractCmd(app),
	)
	return root
}

func newTokenStore(cfg config.Config) (session.TokenStore, error) {
	switch cfg.TokenStore {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), nil
	default:
		path := cfg.TokenPath
		if path == "" {
			var err error
			path, err = session.DefaultTokenPath()
			if err != nil {
				return nil, err
			}
		}
		return session.NewFileStore(path)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
