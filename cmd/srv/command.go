package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "luckdraw"
	app.Usage = "Feedback draw backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the toml configuration file",
			Value: "config.toml",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Category:    "Api",
			Description: `Serves every public and admin endpoint of the draw.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Apply database migrations",
			Category:    "Database",
			Description: `Applies the versioned sql migrations against the configured database.`,
		},
	}

	s.app = app
}
