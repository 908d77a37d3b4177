package aster

// Invoker is the continuation protocol shared by all builders: it receives a
// finished T and produces whatever comes next.
type Invoker[T, R any] interface {
	Invoke(T) R
}

// Identity is the continuation that hands the node back unchanged.
type Identity[T any] struct{}

func (Identity[T]) Invoke(v T) T { return v }

// InvokerFunc adapts a plain function to Invoker.
type InvokerFunc[T, R any] func(T) R

func (f InvokerFunc[T, R]) Invoke(v T) R { return f(v) }

// finished guards single-use builders.
type finished bool

func (f *finished) check(what string) {
	if *f {
		panic("aster: " + what + " used after it was built")
	}
}

func (f *finished) finish(what string) {
	f.check(what)
	*f = true
}
