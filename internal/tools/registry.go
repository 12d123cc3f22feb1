package tools

import "strings"

// Registry stores tools by name for lookup and for rendering the capability
// listing shown to the model. Registries are assembled once at agent
// construction time and are read-only afterwards, so lookups during a
// reasoning loop need no synchronization.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool under its name. Registering the same name again
// replaces the tool but keeps its original position in the listing.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Resolve retrieves a tool by name if registered.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Describe renders the capability listing injected into system prompts: one
// "- name: description" line per tool, in registration order.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for _, name := range r.order {
		t := r.tools[name]
		sb.WriteString("- ")
		sb.WriteString(t.Name())
		sb.WriteString(": ")
		sb.WriteString(t.Description())
		sb.WriteString("\n")
	}
	return sb.String()
}
