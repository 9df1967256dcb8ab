package services

// Registry is an append-only table from capability to constructed
// instance, resolved once at assembly time. Registering a capability
// again replaces the instance; registration order is preserved so extra
// collaborator services start in the order they were registered.
type Registry struct {
	entries map[Capability]any
	order   []Capability
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[Capability]any)}
}

// Register stores an instance under the given capability. A later
// registration of the same capability wins.
func (r *Registry) Register(cap Capability, instance any) {
	if _, exists := r.entries[cap]; !exists {
		r.order = append(r.order, cap)
	}
	r.entries[cap] = instance
}

// Resolve returns the instance registered under cap
func (r *Registry) Resolve(cap Capability) (any, bool) {
	instance, ok := r.entries[cap]
	return instance, ok
}

// extras returns all registered services outside the built-in
// capability slots, in registration order.
func (r *Registry) extras() []Service {
	builtin := map[Capability]bool{
		CapabilityLogger:    true,
		CapabilityEngine:    true,
		CapabilityHeartbeat: true,
		CapabilityShell:     true,
	}

	var out []Service
	for _, cap := range r.order {
		if builtin[cap] {
			continue
		}
		if svc, ok := r.entries[cap].(Service); ok {
			out = append(out, svc)
		}
	}
	return out
}
