package xcmd

import "fmt"

type ErrUnknownSink struct{ name string }

func (e ErrUnknownSink) Error() string { return fmt.Sprintf("unknown sink: %s", e.name) }

type ErrKindRegistered struct{ kind string }

func (e ErrKindRegistered) Error() string {
	return fmt.Sprintf("command kind %q already registered", e.kind)
}
