// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router maps paths to screens and decides what the shell may render.
//
// The route table is fixed. Unknown paths resolve to the not-found route,
// which keeps the requested path for display. Every route except the three
// auth screens and not-found is wrapped in the sidebar shell.
//
// # Gating
//
// Gate turns the current session into a Decision:
//
//   - Pending while the session check is in flight
//   - Render otherwise
//   - Redirect only when Policy.EnforceAuth is set: anonymous users are sent
//     to /sign-in from shell routes, signed-in users to / from auth routes
//
// # History
//
// History is a bounded back stack that gives the terminal the same
// push/replace/back model as browser navigation.
package router
