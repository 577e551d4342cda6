// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package extension defines the pluggable extension wrappers that are
called at fixed points of the XR lifecycle, and the [Registry] that
holds them in registration order.

A wrapper implements [Wrapper] plus any subset of the hook
interfaces in this package. Embedding [Base] gives no-op defaults
for every hook, so a wrapper only defines the hooks it needs.
*/
package extension

import (
	"slices"
	"sort"

	"cogentcore.org/xr/xr"
)

// Wrapper is an extension wrapper. RequestedExtensions returns the
// runtime extensions it needs, mapped to a flag that is set to
// whether the extension is available. A nil flag marks the
// extension as mandatory: if the runtime does not support it,
// instance creation fails.
type Wrapper interface {
	RequestedExtensions() map[string]*bool
}

// InstanceHooks is called when the instance is created and right
// before it is destroyed.
type InstanceHooks interface {
	OnInstanceCreated(rt xr.Runtime, instance xr.Instance)
	OnInstanceDestroyed()
}

// SessionHooks is called when the session is created and right
// before it is destroyed.
type SessionHooks interface {
	OnSessionCreated(session xr.Session)
	OnSessionDestroyed()
}

// StateHooks is called for every session state change.
type StateHooks interface {
	OnStateIdle()
	OnStateReady()
	OnStateSynchronized()
	OnStateVisible()
	OnStateFocused()
	OnStateStopping()
	OnStateLossPending()
	OnStateExiting()
}

// EventHook sees every polled event before the core handles it.
// It returns whether it handled the event.
type EventHook interface {
	OnEvent(ev xr.Event) bool
}

// PreRenderHook is called every frame after the frame wait.
type PreRenderHook interface {
	OnPreRender()
}

// ProcessHook is called from every process tick while the session
// is running.
type ProcessHook interface {
	OnProcess()
}

// SystemPropertiesChainer adds records to the Next chain of the
// system properties query, which the runtime fills in.
type SystemPropertiesChainer interface {
	SystemPropertiesNext() []xr.Chained
}

// SessionCreateChainer adds records to the Next chain of the
// session create info.
type SessionCreateChainer interface {
	SessionCreateNext() []xr.Chained
}

// SwapchainCreateChainer adds records to the Next chain of every
// swapchain create info.
type SwapchainCreateChainer interface {
	SwapchainCreateNext() []xr.Chained
}

// Base implements every hook as a no-op.
type Base struct{}

func (Base) RequestedExtensions() map[string]*bool { return nil }
func (Base) OnInstanceCreated(rt xr.Runtime, inst xr.Instance) {}
func (Base) OnInstanceDestroyed() {}
func (Base) OnSessionCreated(session xr.Session) {}
func (Base) OnSessionDestroyed() {}
func (Base) OnStateIdle() {}
func (Base) OnStateReady() {}
func (Base) OnStateSynchronized() {}
func (Base) OnStateVisible() {}
func (Base) OnStateFocused() {}
func (Base) OnStateStopping() {}
func (Base) OnStateLossPending() {}
func (Base) OnStateExiting() {}
func (Base) OnEvent(ev xr.Event) bool { return false }
func (Base) OnPreRender() {}
func (Base) OnProcess() {}
func (Base) SystemPropertiesNext() []xr.Chained { return nil }
func (Base) SessionCreateNext() []xr.Chained { return nil }
func (Base) SwapchainCreateNext() []xr.Chained { return nil }

// Request is one runtime extension requested by the registered
// wrappers, merged over all requesters.
type Request struct {
	Name string

	// Mandatory is set if any requester marked the extension mandatory.
	Mandatory bool

	// Flags are the availability flags of the optional requesters.
	Flags []*bool
}

// Resolve writes available to every requester flag.
func (r *Request) Resolve(available bool) {
	for _, f := range r.Flags {
		*f = available
	}
}

// Registry is the ordered list of registered wrappers and
// composition layer providers. The zero value is ready to use.
type Registry struct {
	wrappers  []Wrapper
	providers []CompositionLayerProvider
}

// Register appends a wrapper. Hooks are called in registration order.
func (r *Registry) Register(w Wrapper) {
	r.wrappers = append(r.wrappers, w)
}

// RegisterCompositionLayerProvider appends a composition layer provider.
func (r *Registry) RegisterCompositionLayerProvider(p CompositionLayerProvider) {
	r.providers = append(r.providers, p)
}

// Wrappers returns the registered wrappers in order.
func (r *Registry) Wrappers() []Wrapper { return slices.Clone(r.wrappers) }

// Len returns the number of registered wrappers.
func (r *Registry) Len() int { return len(r.wrappers) }

// Clear removes every wrapper and provider. It is only done on full teardown.
func (r *Registry) Clear() {
	r.wrappers = nil
	r.providers = nil
}

// Requested merges the extensions requested by every wrapper,
// sorted by name.
func (r *Registry) Requested() []Request {
	byName := map[string]*Request{}
	for _, w := range r.wrappers {
		for name, flag := range w.RequestedExtensions() {
			req, ok := byName[name]
			if !ok {
				req = &Request{Name: name}
				byName[name] = req
			}
			if flag == nil {
				req.Mandatory = true
			} else {
				req.Flags = append(req.Flags, flag)
			}
		}
	}
	reqs := make([]Request, 0, len(byName))
	for _, req := range byName {
		reqs = append(reqs, *req)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })
	return reqs
}

func (r *Registry) InstanceCreated(rt xr.Runtime, instance xr.Instance) {
	for _, w := range r.wrappers {
		if h, ok := w.(InstanceHooks); ok {
			h.OnInstanceCreated(rt, instance)
		}
	}
}

func (r *Registry) InstanceDestroyed() {
	for _, w := range r.wrappers {
		if h, ok := w.(InstanceHooks); ok {
			h.OnInstanceDestroyed()
		}
	}
}

func (r *Registry) SessionCreated(session xr.Session) {
	for _, w := range r.wrappers {
		if h, ok := w.(SessionHooks); ok {
			h.OnSessionCreated(session)
		}
	}
}

func (r *Registry) SessionDestroyed() {
	for _, w := range r.wrappers {
		if h, ok := w.(SessionHooks); ok {
			h.OnSessionDestroyed()
		}
	}
}

// StateChanged calls the state hook matching state on every wrapper.
// Unknown states are ignored.
func (r *Registry) StateChanged(state xr.SessionState) {
	for _, w := range r.wrappers {
		h, ok := w.(StateHooks)
		if !ok {
			continue
		}
		switch state {
		case xr.SessionStateIdle:
			h.OnStateIdle()
		case xr.SessionStateReady:
			h.OnStateReady()
		case xr.SessionStateSynchronized:
			h.OnStateSynchronized()
		case xr.SessionStateVisible:
			h.OnStateVisible()
		case xr.SessionStateFocused:
			h.OnStateFocused()
		case xr.SessionStateStopping:
			h.OnStateStopping()
		case xr.SessionStateLossPending:
			h.OnStateLossPending()
		case xr.SessionStateExiting:
			h.OnStateExiting()
		}
	}
}

// Event passes ev to every event hook, and returns whether any
// of them handled it. Every hook sees the event.
func (r *Registry) Event(ev xr.Event) bool {
	handled := false
	for _, w := range r.wrappers {
		if h, ok := w.(EventHook); ok {
			handled = h.OnEvent(ev) || handled
		}
	}
	return handled
}

func (r *Registry) PreRender() {
	for _, w := range r.wrappers {
		if h, ok := w.(PreRenderHook); ok {
			h.OnPreRender()
		}
	}
}

func (r *Registry) Process() {
	for _, w := range r.wrappers {
		if h, ok := w.(ProcessHook); ok {
			h.OnProcess()
		}
	}
}

// SystemPropertiesNext collects the system properties chain of
// every wrapper, in registration order.
func (r *Registry) SystemPropertiesNext() []xr.Chained {
	var next []xr.Chained
	for _, w := range r.wrappers {
		if c, ok := w.(SystemPropertiesChainer); ok {
			next = append(next, c.SystemPropertiesNext()...)
		}
	}
	return next
}

// SessionCreateNext collects the session create chain of every wrapper.
func (r *Registry) SessionCreateNext() []xr.Chained {
	var next []xr.Chained
	for _, w := range r.wrappers {
		if c, ok := w.(SessionCreateChainer); ok {
			next = append(next, c.SessionCreateNext()...)
		}
	}
	return next
}

// SwapchainCreateNext collects the swapchain create chain of every wrapper.
func (r *Registry) SwapchainCreateNext() []xr.Chained {
	var next []xr.Chained
	for _, w := range r.wrappers {
		if c, ok := w.(SwapchainCreateChainer); ok {
			next = append(next, c.SwapchainCreateNext()...)
		}
	}
	return next
}

// CompositionLayers returns the layers of every provider that
// has one this frame, in registration order.
func (r *Registry) CompositionLayers() []xr.CompositionLayer {
	var layers []xr.CompositionLayer
	for _, p := range r.providers {
		if l := p.CompositionLayer(); l != nil {
			layers = append(layers, l)
		}
	}
	return layers
}
