/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is the HTTP client the smoke tests drive the portal with.
//
// # Hand Written Client
//
// The portal publishes no generated client, and the tests need to see every
// response exactly as the server sent it, so the client is hand written:
//   - W3C trace context on every request for correlation with server logs
//   - Status code, raw body and decoded JSON all available to assertions
//   - A bearer token that the runner sets after login and clears on logout
//   - A cookie jar so cookie based sessions work the same as bearer ones
//
// Transport errors are returned, HTTP errors are not: a 404 is a response
// like any other and it is up to the case to decide whether it expected one.
package client
