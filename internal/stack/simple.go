package stack

// Simple is a plain LIFO of T
type Simple[T any] []T

func (s *Simple[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop discards the top n items (1 if n is omitted)
func (s *Simple[T]) Pop(n ...int) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}
	stackPop(s, nn)
}

// Take removes the top item and returns it. The second return value is
// false if the stack was empty.
func (s *Simple[T]) Take() (T, bool) {
	var zero T
	l := s.Len()
	if l == 0 {
		return zero, false
	}
	v := (*s)[l-1]
	(*s)[l-1] = zero
	*s = (*s)[:l-1]
	return v, true
}

func (s Simple[T]) Top() (T, bool) {
	var zero T
	if l := s.Len(); l > 0 {
		return s[l-1], true
	}
	return zero, false
}

func (s *Simple[T]) Realloc() {
	*s = append(Simple[T](nil), *s...)
}

func (s *Simple[T]) PopLast() {
	l := s.Len()
	if l <= 0 {
		return
	}
	var zero T
	(*s)[l-1] = zero
	*s = (*s)[:l-1]
}

func (s Simple[T]) Len() int {
	return len(s)
}

func (s Simple[T]) Cap() int {
	return cap(s)
}
