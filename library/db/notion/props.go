package notion

// PropertyValues is the write-side shape of a property bag, keyed by
// user-defined property names. On the wire an omitted key leaves the remote
// value untouched; clearing a value requires an explicit empty payload
// (date null, relation []), which is what the Clear setters emit.
type PropertyValues map[string]any

// SetTitle sets a title property.
func (v PropertyValues) SetTitle(name, content string) {
	v[name] = map[string]any{
		"title": []any{map[string]any{"text": map[string]any{"content": content}}},
	}
}

// SetRichText sets a rich_text property to a single run.
func (v PropertyValues) SetRichText(name, content string) {
	v[name] = map[string]any{
		"rich_text": []any{map[string]any{"text": map[string]any{"content": content}}},
	}
}

// SetSelect sets a select property by option name.
func (v PropertyValues) SetSelect(name, option string) {
	v[name] = map[string]any{
		"select": map[string]any{"name": option},
	}
}

// SetNumber sets a number property.
func (v PropertyValues) SetNumber(name string, n float64) {
	v[name] = map[string]any{"number": n}
}

// SetCheckbox sets a checkbox property.
func (v PropertyValues) SetCheckbox(name string, checked bool) {
	v[name] = map[string]any{"checkbox": checked}
}

// SetMultiSelect sets a multi_select property to the given option names.
func (v PropertyValues) SetMultiSelect(name string, options []string) {
	opts := make([]any, 0, len(options))
	for _, o := range options {
		opts = append(opts, map[string]any{"name": o})
	}
	v[name] = map[string]any{"multi_select": opts}
}

// SetDate sets a date property's start date.
func (v PropertyValues) SetDate(name, start string) {
	v[name] = map[string]any{
		"date": map[string]any{"start": start},
	}
}

// ClearDate unsets a date property.
func (v PropertyValues) ClearDate(name string) {
	v[name] = map[string]any{"date": nil}
}

// SetRelation sets a relation property to a single related page.
func (v PropertyValues) SetRelation(name, pageID string) {
	v[name] = map[string]any{
		"relation": []any{map[string]any{"id": pageID}},
	}
}

// ClearRelation unsets a relation property.
func (v PropertyValues) ClearRelation(name string) {
	v[name] = map[string]any{"relation": []any{}}
}
