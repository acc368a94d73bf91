// Package dsl contains the fluent builder surface of kensa: primitive
// schemas (String, Number, Bool, Time, UUID), collection and dictionary
// schemas (Slice, MapOf), and composite object builders (Object, ObjectCtx,
// Derive) with field validators, conditional branches (When/WhenCtx) and
// type narrowing (If/As).
//
// Building a schema is pure configuration; validation happens when the built
// schema is passed to kensa.Check, kensa.CheckCtx or kensa.Resolve.
//
//	type User struct {
//		Name string
//		Age  int
//	}
//
//	s := dsl.Object[User]().
//		Fields(
//			dsl.Field("name", func(u User) string { return u.Name }, dsl.String().MinLen(3)),
//			dsl.Field("age", func(u User) int { return u.Age }, dsl.Number[int]().Min(0)),
//		).
//		MustBuild()
//
//	res := kensa.Check(ctx, s, User{Name: "Al", Age: -1})
//	// res.Issues(): min_length at name; min_value at age
package dsl
