package xcmd

import "sync"

// Queue is the type-erased view of a Bus, for hosts that manage buses of
// many kinds behind one registry.
type Queue interface {
	Len() int
	IsEmpty() bool
	Clear()
}

// AuditTrail is the type-erased view of a Log.
type AuditTrail interface {
	Len() int
	IsEmpty() bool
	Clear()
	SaveToFile(path string) error
}

var (
	_ Queue      = (*Bus[Command])(nil)
	_ AuditTrail = (*Log[Command])(nil)
)

// Registry maps kind names to type-erased bus and log handles.
//
// It gives hosts one place to clear every queue on shutdown or flush
// every audit trail, while the typed instances stay with the systems that
// own them. A kind name can be registered at most once per table,
// preserving the one-queue-per-kind invariant.
type Registry struct {
	mu    sync.RWMutex
	buses map[string]Queue
	logs  map[string]AuditTrail
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buses: make(map[string]Queue),
		logs:  make(map[string]AuditTrail),
	}
}

// RegisterBus registers a bus under its kind name.
func (r *Registry) RegisterBus(kind string, q Queue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.buses[kind]; ok {
		return ErrKindRegistered{kind: kind}
	}
	r.buses[kind] = q
	return nil
}

// RegisterLog registers a log under its kind name.
func (r *Registry) RegisterLog(kind string, l AuditTrail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[kind]; ok {
		return ErrKindRegistered{kind: kind}
	}
	r.logs[kind] = l
	return nil
}

// Bus returns the registered bus for a kind name, if any.
func (r *Registry) Bus(kind string) (Queue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.buses[kind]
	return q, ok
}

// Log returns the registered log for a kind name, if any.
func (r *Registry) Log(kind string) (AuditTrail, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.logs[kind]
	return l, ok
}

// Kinds returns the registered bus kind names, in no particular order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.buses))
	for k := range r.buses {
		out = append(out, k)
	}
	return out
}

// ClearAll discards pending commands on every registered bus. Silent, no
// log entries; shutdown path only.
func (r *Registry) ClearAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.buses {
		q.Clear()
	}
}

// Pending sums queued commands across every registered bus.
func (r *Registry) Pending() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, q := range r.buses {
		n += q.Len()
	}
	return n
}
