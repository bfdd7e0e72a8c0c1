/*
Package result implements a type for the result of a computation that may fail.

A Result is matched in a switch statement:

	var sel pmatch.Selection
	var err error
	switch m := r.Match(); m {
	case m.Ok(&sel):
		…
	case m.Err(&err):
		…
	}
*/
package result

// Result holds either a value or an error.
type Result[T any] interface {
	Match() Matcher[T]
	Unwrap() (T, error)
}

type result[T any] struct {
	value T
	err   error
}

func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

func Err[T any](err error) Result[T] {
	return result[T]{err: err}
}

// From packs a Go-style (value, error) pair into a Result.
func From[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: r}
}

// Unwrap is the inverse of From.
func (r result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// --- Matching --------------------------------------------------------------

type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
