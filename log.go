package tableau

import "fmt"

// Logger receives the trace of a solve. *log.Logger satisfies it.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

// message defers formatting until a logger prints it.
type message struct {
	format string
	args   []interface{}
}

func (m message) String() string {
	return fmt.Sprintf(m.format, m.args...)
}

func logf(l Logger, format string, args ...interface{}) {
	l.Print(message{format: format, args: args})
}
