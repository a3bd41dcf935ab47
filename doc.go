// Package awesome is the small web framework behind the blog.
//
// It wraps chi with a Context-based handler model, declarative handler
// parameters and result coercion, so an endpoint reads like a plain
// function of its inputs:
//
//	table := awesome.NewRouteTable()
//	table.Get("/api/blogs/{id}", awesome.MustSignature(awesome.Path("id")),
//	    func(c awesome.Context, args awesome.Args) (any, error) {
//	        blog, err := blogs.Find(c, args.String("id"))
//	        if err != nil {
//	            return nil, err
//	        }
//	        if blog == nil {
//	            return nil, awesome.ErrResourceNotFound("blog", "")
//	        }
//	        return blog, nil
//	    })
//
//	app := awesome.New(
//	    awesome.WithCustomLogger(log),
//	    awesome.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//	    awesome.WithHandlers(table),
//	)
//	if err := app.Run(cfg.Addr, awesome.ShutdownHook(db.Shutdown(pool))); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// Handlers that need full control implement [Handler] and declare plain
// [HandlerFunc] routes on the [Router].
package awesome
