// Package stack contains the small LIFO containers used by the tokenizer
// and the namespace resolver.
package stack

type impl interface {
	Cap() int
	Len() int
	PopLast()
	Realloc()
}

func stackPop(s impl, n int) {
	if n <= 0 {
		return
	}

	for s.Len() > 0 {
		s.PopLast()
		n--
		if n <= 0 {
			break
		}
	}

	if c := s.Cap(); c > 20 && c > s.Len()*2 {
		s.Realloc()
	}
}
