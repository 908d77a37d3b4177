// Package aster builds AST fragments with fluent, chainable builders.
//
// Every builder is parameterized by the result type of its continuation, an
// Invoker that receives the finished node. The identity continuation returns
// the node itself; enclosing builders pass themselves (or a small sink that
// points back at them) so that finishing a nested node resumes the outer
// chain:
//
//	item := aster.NewItem("Point").Pub().
//		Struct().
//		Field("x").Pub().Ty().I32().
//		Field("y").Pub().Ty().I32().
//		Build()
//
// Builders are single use. Once a builder produced its node, any further
// call on it panics.
package aster
