package report

import (
	"io"

	"github.com/hupe1980/linkeval/codec"
)

// Encode writes r with c, or codec.Default when c is nil.
func Encode(w io.Writer, r *Report, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	b, err := c.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader, c codec.Codec) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := c.Unmarshal(b, r); err != nil {
		return nil, err
	}
	return r, nil
}
