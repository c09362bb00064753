// Package http provides HTTP handlers and middleware for the shower timer API.
//
// The router exposes the following endpoints:
//   - POST /users, GET /users, GET /users/{id}: user registration and lookup
//     endpoints exchanging the `userResponse` payload defined in
//     user_handler.go. Registration accepts {"first_name","last_name"}.
//   - GET /users/username/{name}: case-insensitive lookup of a user by last
//     name. When several users share the name, the earliest registered wins.
//   - PATCH /users/{id}/add-time: manual adjustment of a user's accumulated
//     total. Body: {"seconds"}. Returns 204 No Content, also when the user
//     does not exist.
//   - POST /showers: records a completed shower session. Body:
//     {"user_id","duration_seconds"}; the session window starts at the time
//     the request arrives. Recording re-derives the owning user's total from
//     their full session history.
//   - GET /showers, GET /showers/{id}, GET /showers/user/{userID}: session
//     lookup endpoints exchanging the `showerResponse` payload defined in
//     shower_handler.go. The per-user listing is ordered oldest first and is
//     empty for unknown users.
//   - POST /device/notify: resolves a user by name and relays the name to the
//     physical timer through the device bridge. Body: {"username"}.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
