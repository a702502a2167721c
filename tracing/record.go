// Package tracing records hook invocations of the kernel into trace files.
package tracing

// A Record is one hook invocation.
type Record struct {
	ID     string
	Pos    string
	Domain string
	Item   string
	Detail string
	Tick   int64
}

// A TraceWriter stores records.
type TraceWriter interface {
	// Init prepares the storage. It must be called before Write.
	Init() error

	// Write buffers a record.
	Write(r Record)

	// Flush stores the buffered records.
	Flush() error
}
