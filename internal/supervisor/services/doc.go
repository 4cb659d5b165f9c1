// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package services provides suture.Service wrappers for Otaku components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervisor events name it.

# Available Services

HTTPServerService binds the configured address and serves the API
*http.Server on it. A failed bind is returned to the supervisor and retried
with backoff. Cancellation triggers Shutdown bounded by the configured
timeout; a server closed from outside the tree is not restarted.

RebuildService periodically rebuilds an engine's similarity matrix. The
engine swaps the new matrix in atomically, so queries in flight keep reading
the previous one. A failed rebuild is logged and retried on the next tick;
only a canceled context stops the loop.
*/
package services
