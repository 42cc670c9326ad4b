package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "rewardlab"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startGateway,
			Name:        "gateway",
			Usage:       "Start the gateway service",
			Category:    "Service",
			Description: "Public entrypoint serving auth and user routes, relaying event and reward routes.",
		},
		{
			Action:      server.startEvent,
			Name:        "event",
			Usage:       "Start the event service",
			Category:    "Service",
			Description: "Owns events, rewards, and reward requests; consumes the command topic.",
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Apply database migrations",
			Category:    "Tool",
			Description: "Runs the embedded mysql migrations against the configured database.",
		},
	}

	s.app = app
}
