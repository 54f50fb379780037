package calculation

import "iter"

// tee shares one pulled sequence between two views. Each view owns a queue of
// values the other view pulled ahead of it, so memory stays proportional to
// how far apart the two consumers are.
type tee[T any] struct {
	next    func() (T, bool)
	pending [2][]T
	done    bool
}

// Tee splits seq into two views that each observe every element of seq exactly
// once and in order. Each view may be ranged over once. The source is read
// lazily, only when a view runs out of buffered values. stop releases the
// source and must be called once both views are no longer needed.
func Tee[T any](seq iter.Seq[T]) (first, second iter.Seq[T], stop func()) {
	t := &tee[T]{}
	t.next, stop = iter.Pull(seq)
	return t.view(0), t.view(1), stop
}

func (t *tee[T]) view(i int) iter.Seq[T] {
	other := 1 - i
	return func(yield func(T) bool) {
		for {
			var v T
			if len(t.pending[i]) > 0 {
				v = t.pending[i][0]
				t.pending[i] = t.pending[i][1:]
				if len(t.pending[i]) == 0 {
					t.pending[i] = nil
				}
			} else {
				if t.done {
					return
				}
				var ok bool
				v, ok = t.next()
				if !ok {
					t.done = true
					return
				}
				t.pending[other] = append(t.pending[other], v)
			}
			if !yield(v) {
				return
			}
		}
	}
}
