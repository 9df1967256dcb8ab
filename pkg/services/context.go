package services

import (
	"github.com/nbforge/nbkernel/pkg/connection"
	"github.com/nbforge/nbkernel/pkg/identity"
)

// RuntimeContext carries the process-wide state every service reads at
// construction time: the loaded connection descriptor and the kernel
// identity. It is populated exactly once, by Assemble, before any
// service is constructed. There are no setters; nothing mutates it once
// assembly begins.
type RuntimeContext struct {
	identity identity.KernelIdentity
	conn     connection.Descriptor
}

func newRuntimeContext(id identity.KernelIdentity, conn connection.Descriptor) *RuntimeContext {
	return &RuntimeContext{identity: id, conn: conn}
}

// Identity returns the kernel's static identity
func (c *RuntimeContext) Identity() identity.KernelIdentity {
	return c.identity
}

// Connection returns the loaded connection descriptor
func (c *RuntimeContext) Connection() connection.Descriptor {
	return c.conn
}
