package formtools

// NewObjectSchema builds a JSON Schema object. Unknown properties are
// tolerated; agents routinely send extra keys and the handlers ignore them.
func NewObjectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, desc string) map[string]any {
	return map[string]any{
		"type":        typ,
		"description": desc,
	}
}

func arrayProp(itemType, desc string) map[string]any {
	return arrayPropSchema(prop(itemType, "Item"), desc)
}

func arrayPropSchema(item map[string]any, desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       item,
	}
}

func arrayPropMin(itemType, desc string, minItems int) map[string]any {
	p := arrayProp(itemType, desc)
	p["minItems"] = minItems
	return p
}

func integerProp(desc string, min, max *int) map[string]any {
	p := prop("integer", desc)
	if min != nil {
		p["minimum"] = *min
	}
	if max != nil {
		p["maximum"] = *max
	}
	return p
}

func intPtr(v int) *int {
	return &v
}

func formIDProp() map[string]any {
	return prop("string", "Form ID (the long id in the form's edit URL)")
}

func requiredFlagProp() map[string]any {
	return prop("boolean", "Whether required (optional, default is false)")
}

func choiceOptionsProp() map[string]any {
	return arrayPropMin("string", "Array of choices", 1)
}

// requiredFields lists the schema's required keys.
func requiredFields(schema map[string]any) []string {
	return stringSlice(schema["required"])
}
