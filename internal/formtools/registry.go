package formtools

import (
	"fmt"
)

// ToolRegistry stores tools by name, rejecting duplicates, and lists them in
// the order they were added.
type ToolRegistry struct {
	tools map[string]ToolDefinition
	order []string
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]ToolDefinition)}
}

func (r *ToolRegistry) Add(def ToolDefinition) error {
	if def.Tool == nil {
		return fmt.Errorf("tool definition missing tool")
	}
	name := def.Tool.Name
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool name %q", name)
	}
	r.tools[name] = def
	r.order = append(r.order, name)
	return nil
}

func (r *ToolRegistry) AddAll(defs []ToolDefinition) error {
	for _, def := range defs {
		if err := r.Add(def); err != nil {
			return err
		}
	}
	return nil
}

func (r *ToolRegistry) Lookup(name string) (ToolDefinition, bool) {
	def, ok := r.tools[name]
	return def, ok
}

func (r *ToolRegistry) List() []ToolDefinition {
	ordered := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		ordered = append(ordered, r.tools[name])
	}
	return ordered
}
