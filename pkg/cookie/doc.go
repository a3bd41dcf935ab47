// Package cookie writes and reads the session cookie with consistent
// attributes.
//
// A Manager carries the attributes every cookie it writes shares (path,
// domain, Secure, HttpOnly, SameSite). Expire replaces a cookie with a
// sentinel value and max-age 0 so that browsers drop it immediately:
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "awesession", token, 86400)
//	m.Expire(w, "awesession")
package cookie
