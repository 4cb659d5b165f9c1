// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package supervisor provides process supervision for Otaku using suture v4.

The tree separates the recommendation engines from the HTTP surface so a
failing background rebuild never takes the API down:

	RootSupervisor ("otaku")
	├── EngineSupervisor ("engine-layer")
	│   └── RebuildService (if recommend.rebuild_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's exponential backoff. Supervisor
events are logged through sutureslog, which writes to the process-wide
zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.HTTPServerConfig{
	    Addr: cfg.Server.Addr(),
	}, logging.Component("supervisor")))
	errCh := tree.ServeBackground(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
