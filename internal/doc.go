// Package internal holds the framework core behind the awesome package.
//
// Import "github.com/aileon/awesome" instead; it re-exports this API.
//
// # Core Types
//
//   - App: router, middleware chain, health endpoints and graceful shutdown
//   - Context: request/response access, rendering, cookies and logging
//   - Router: the route-declaring interface handed to every Handler
//   - RouteTable: routes whose parameters are declared by a Signature
//   - HTTPError and APIError: transport errors and client input errors
//
// # Declared parameters
//
// An endpoint states which parameters it takes instead of reading the
// request ad hoc. The table validates the declaration once at startup:
//
//	table := awesome.NewRouteTable()
//	table.Get("/api/blogs/{id}", awesome.MustSignature(awesome.Path("id")), h.getBlog)
//	table.Post("/api/users", awesome.MustSignature(
//	    awesome.Required("email"),
//	    awesome.Required("name"),
//	    awesome.Required("passwd"),
//	), h.register)
//
// For every request the binder reads the JSON, urlencoded or multipart
// body of a POST, or the query string of a GET, keeps only the declared
// names (unless a CatchAll is declared), lets path segments win over body
// values, and answers 400 "Missing argument: name" when a required
// parameter is absent.
//
// # Results
//
// An EndpointFunc returns a value and an error. The value is written by
// Respond: strings become HTML (or a redirect with the "redirect:" prefix),
// maps and structs become JSON, a map with "__template__" renders that
// template, an int in 100..599 is a bare status, and nil is 204.
//
// # Errors
//
// Errors go to the app's ErrorHandler. DefaultErrorHandler writes APIError
// as {"error","data","message"} JSON with its status and HTTPError as plain
// text; other errors are logged and answered with 500.
package internal
