// Package surrealkit provides ergonomic builders and record mapping on top
// of the SurrealDB Go client.
//
// # Packages
//
//   - pkg/surql: SurrealQL statement AST and condition assembly
//   - pkg/builder: staged SELECT, CREATE, UPDATE, RELATE and DELETE builders
//   - pkg/table: struct-to-table mapping and a typed record repository
//   - pkg/qb: a small string query builder with a filter DSL
//   - pkg/value: JSON interop between Go values and SurrealQL values
//   - pkg/client: a Querier backed by github.com/surrealdb/surrealdb.go
//
// # Running statements
//
// Everything that executes a statement takes a Querier:
//
//	db, err := client.Connect(ctx, client.Config{
//	    URL:       "ws://localhost:8000",
//	    Namespace: "app",
//	    Database:  "app",
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close(ctx)
//
//	q, err := builder.Select().What("user").Field("*").
//	    Where(surql.Cmp("age", surql.OpMoreThan, "$age")).
//	    ToQuery()
//	if err != nil {
//	    return err
//	}
//	results, err := q.Bind("age", 18).Run(ctx, db)
//	if err != nil {
//	    return err
//	}
//	users, err := surrealkit.Take[[]User](results, 0)
//
// Statement failures reported by the database surface as *StatementError,
// which matches ErrStatement with errors.Is.
package surrealkit
