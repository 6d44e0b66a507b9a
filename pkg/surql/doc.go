// Package surql provides a typed AST for building SurrealQL statements.
//
// # Overview
//
// Rather than concatenating query strings, callers compose small typed
// values (idioms, params, literals, record ids, expressions) into statements
// that render themselves as SurrealQL text. Nothing in this package talks to
// a database: rendered text is handed to a client together with bound
// variables.
//
// # Core Interfaces
//
// All AST types implement one of two interfaces:
//
//   - Value: an expression position (idioms, params, literals, operators applied to values)
//   - Statement: a complete statement (SELECT, CREATE, UPDATE, RELATE, DELETE)
//
// Both define a SQL() method that renders the SurrealQL syntax.
//
// # Values
//
//	ParseIdiom("address.city")     // address.city
//	Param("age")                   // $age
//	Table("user")                  // user
//	Thing{Table: "user", ID: "tobie"} // user:tobie
//	Strand("it's")                 // 'it\'s'
//	Int(42), Float(1.5), Bool(true), Null{}, None{}
//	Duration(90 * time.Second)     // 1m30s
//
// Strings coming from callers are interpreted with ParseValue: "$name"
// becomes a Param, a dotted identifier path becomes an Idiom, anything else
// becomes NULL. Use ValueOf to turn arbitrary Go values into literals.
//
// # Conditions
//
// A WHERE clause is assembled from a flat, ordered token stream with
// Conds/BuildCond:
//
//	cond, err := surql.Conds(
//	    surql.Cmp("name", surql.OpEqual, "$name"),
//	    surql.OpAnd,
//	    surql.Cmp("age", surql.OpMoreThan, "$age"),
//	)
//
// Tokens fold left, so a OP1 b OP2 c becomes (a OP1 b) OP2 c regardless of
// operator precedence. Group wraps a nested condition in parentheses.
//
// # Statements
//
//	SelectStatement{
//	    Expr:  Fields{AllField()},
//	    What:  []Value{Table("user")},
//	    Cond:  cond,
//	    Limit: Int(10),
//	}
//
// renders
//
//	SELECT * FROM user WHERE name = $name AND age > $age LIMIT 10
package surql
