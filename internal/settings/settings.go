// Package settings holds process-wide runtime toggles. A single Runtime is
// created at startup and handed to the handlers that need it.
package settings

import "sync/atomic"

type Runtime struct {
	allowRegister atomic.Bool
}

func NewRuntime(allowRegister bool) *Runtime {
	r := &Runtime{}
	r.allowRegister.Store(allowRegister)
	return r
}

func (r *Runtime) AllowRegister() bool {
	return r.allowRegister.Load()
}

func (r *Runtime) SetAllowRegister(v bool) {
	r.allowRegister.Store(v)
}
