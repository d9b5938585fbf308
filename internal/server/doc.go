// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the development backend for the session API.
//
// Endpoints (mounted under /api):
//   - POST /auth/register - create an account (201 with the user)
//   - POST /auth/login    - exchange credentials for the access_token cookie
//   - GET  /auth/me       - the user bound to the cookie
//   - POST /auth/logout   - clear the cookie (204)
//   - GET  /health        - liveness
//
// Users live in memory and are lost on restart. Passwords are bcrypt hashes;
// the session cookie carries an HS256 JWT whose subject is the user id.
// Errors are JSON objects with a single "detail" field.
//
// Middleware (outermost first): recovery, request id, request logging,
// CORS with credentials, per-IP token bucket rate limiting.
package server
