package utils

// TailWriter keeps the last limit bytes written to it. Used to hold on
// to the end of a process's stderr, where tracebacks land, without
// buffering the whole stream.
type TailWriter struct {
	limit int
	buf   []byte
}

func NewTailWriter(limit int) *TailWriter {
	return &TailWriter{limit: limit}
}

func (w *TailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.limit {
		w.buf = append(w.buf[:0], w.buf[len(w.buf)-w.limit:]...)
	}
	return len(p), nil
}

func (w *TailWriter) Bytes() []byte {
	return w.buf
}

func (w *TailWriter) String() string {
	return string(w.buf)
}
