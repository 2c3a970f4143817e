package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig/algebra"
)

// reader decodes the fixed binary layouts of this package field by field.
// The first failure sticks; finish reports it, or rejects trailing bytes.
type reader struct {
	buf []byte
	err error
}

func newReader(raw []byte) *reader {
	return &reader{buf: raw}
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = errors.Errorf("%w: truncated input", algebra.ErrDecode)
		return nil
	}
	chunk := r.buf[:n]
	r.buf = r.buf[n:]
	return chunk
}

func (r *reader) element(g algebra.Group) *algebra.Element {
	chunk := r.next(g.Size())
	if r.err != nil {
		return nil
	}
	e, err := algebra.FromBytes(g, chunk)
	if err != nil {
		r.err = err
		return nil
	}
	return e
}

func (r *reader) scalar() *algebra.Scalar {
	chunk := r.next(algebra.ScalarSize())
	if r.err != nil {
		return nil
	}
	s, err := algebra.ScalarFromBytes(chunk)
	if err != nil {
		r.err = err
		return nil
	}
	return s
}

func (r *reader) byte() byte {
	chunk := r.next(1)
	if r.err != nil {
		return 0
	}
	return chunk[0]
}

func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if len(r.buf) != 0 {
		return errors.Errorf("%w: %d trailing bytes", algebra.ErrDecode, len(r.buf))
	}
	return nil
}
