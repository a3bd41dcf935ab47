package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Pages struct{ blogs *orm.Table[models.Blog, *models.Blog] }
//
//	func (h *Pages) Routes(r awesome.Router) {
//	    r.GET("/", h.index)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
