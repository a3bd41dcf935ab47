// Package orm maps record types to tables.
//
// A [Schema] is declared once per record type at startup. It validates the
// field list (exactly one primary key, unique names, plain identifiers) and
// prebuilds the select, insert, update and delete statements:
//
//	var Blogs = orm.MustSchema("blogs",
//		orm.String("id", "varchar(50)").Key().Default(func() any { return id.New() }),
//		orm.String("name", "varchar(50)"),
//		orm.Text("content"),
//		orm.Float("created_at").Default(func() any { return orm.Now() }),
//	)
//
// Record types implement [Record] with explicit accessors, and a [Table]
// binds a schema, a record type and a [db.Executor]:
//
//	blogs := orm.NewTable[Blog](Blogs, pool)
//	latest, err := blogs.FindAll(ctx, orm.Query{OrderBy: "created_at desc", Limit: 4})
//
// Defaults are resolved when a record is saved, not when it is built, so
// identifiers and timestamps are generated exactly once. A field takes its
// default only when the record's Value returns nil for it; an explicit
// false, "" or 0 is saved unchanged. Writes that do not
// affect exactly one row are reported as anomalies (a warning and the
// optional anomaly hook) and do not fail the call.
package orm
