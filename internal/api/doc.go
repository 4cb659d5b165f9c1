// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package api serves the recommendation engines over HTTP with the Chi router.

# Routes

All routes live under /api/v1 and answer with models.APIResponse:

	GET  /titles/{titleID}/similar?n=&popular=&names=   content similarity
	GET  /titles/{titleID}/neighbors?k=                 title k-NN over the title x user matrix
	GET  /titles/{titleID}/visual?n=                    character-image similarity between titles
	GET  /characters/{characterID}/similar?n=           character-image similarity
	GET  /users/{userID}/similar?metric=&start_col=     users with similar genre distributions
	POST /users/similar-by-titles                       users matching a set of titles
	POST /users/{userID}/unread                         unread titles from neighbor histories
	POST /users/{userID}/overlap                        neighbor history overlap check
	GET  /health                                        engine readiness
	GET  /metrics                                       Prometheus exposition (outside /api/v1)

# Errors

Engine errors map to HTTP status codes:

	recommend.ErrUnknownID                               404 NOT_FOUND
	recommend.ErrInvalidMetric, ErrUnsupportedMetric      400 UNSUPPORTED_METRIC
	recommend.ErrNotReady, engine not configured          503 ENGINE_NOT_READY
	anything else                                        500 INTERNAL_ERROR

Malformed parameters and bodies answer 400 VALIDATION_ERROR.

# Middleware

Request ids, real IP extraction, panic recovery, CORS (go-chi/cors), per-IP
rate limiting (go-chi/httprate), security headers and Prometheus request
metrics are applied to every API route.
*/
package api
