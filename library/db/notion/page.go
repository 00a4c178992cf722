package notion

import "strings"

// PropertyType is the self-declared type tag carried by every page property.
type PropertyType string

// Property type tags understood by the decoder. Anything else decodes to
// "absent" rather than failing, since the remote schema is user-editable.
const (
	TypeTitle       PropertyType = "title"
	TypeRichText    PropertyType = "rich_text"
	TypeDate        PropertyType = "date"
	TypeMultiSelect PropertyType = "multi_select"
	TypeCheckbox    PropertyType = "checkbox"
	TypeSelect      PropertyType = "select"
	TypeNumber      PropertyType = "number"
	TypeRelation    PropertyType = "relation"
)

// Page is one record of a Notion database.
type Page struct {
	// Object is "page" for fully-resolved records.
	Object string `json:"object"`
	// ID unique identifier assigned by Notion
	ID string `json:"id"`
	// CreatedTime ISO-8601 creation timestamp
	CreatedTime string `json:"created_time"`
	// LastEditedTime ISO-8601 last-edit timestamp
	LastEditedTime string `json:"last_edited_time"`
	// Properties property bag keyed by user-defined property names
	Properties map[string]Property `json:"properties"`
}

// Full reports whether the page is a fully-resolved record carrying a
// property bag. Query results may contain partial objects.
func (p *Page) Full() bool {
	return p != nil && p.Object == "page" && p.Properties != nil
}

// Property is one entry of a page's property bag. Only the payload matching
// Type is populated.
type Property struct {
	Type        PropertyType   `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Relation    []Relation     `json:"relation,omitempty"`
}

// RichText is one run of formatted text.
type RichText struct {
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations,omitempty"`
}

// Annotations inline formatting flags of a rich text run.
type Annotations struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// DateValue date payload, Start is an ISO-8601 date or datetime string.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// SelectOption one option of a select or multi_select property.
type SelectOption struct {
	Name string `json:"name"`
}

// Relation reference to another page.
type Relation struct {
	ID string `json:"id"`
}

// JoinPlainText concatenates the plain-text runs in order, no separator.
// An empty or nil run list yields an empty string.
func JoinPlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}

	return b.String()
}

// Value decodes the property according to its self-declared type tag.
//
// This is the single dispatch point for every supported property type;
// adding a new type means adding an arm here. Unknown tags and empty
// payloads decode to nil ("absent") so that a half-filled user schema never
// breaks a read path.
func (p Property) Value() any {
	switch p.Type {
	case TypeTitle:
		return JoinPlainText(p.Title)
	case TypeRichText:
		return JoinPlainText(p.RichText)
	case TypeDate:
		if p.Date == nil || p.Date.Start == "" {
			return nil
		}
		return p.Date.Start
	case TypeMultiSelect:
		names := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			names = append(names, opt.Name)
		}
		return names
	case TypeCheckbox:
		if p.Checkbox == nil {
			return nil
		}
		return *p.Checkbox
	case TypeSelect:
		if p.Select == nil || p.Select.Name == "" {
			return nil
		}
		return p.Select.Name
	case TypeNumber:
		if p.Number == nil {
			return float64(0)
		}
		return *p.Number
	case TypeRelation:
		if len(p.Relation) == 0 {
			return nil
		}
		return p.Relation[0].ID
	default:
		return nil
	}
}

// Text returns the concatenated text of a title or rich_text property.
// The second return reports whether the property decoded to a text value.
func (p *Page) Text(name string) (string, bool) {
	v, ok := p.Properties[name]
	if !ok {
		return "", false
	}

	s, ok := v.Value().(string)
	return s, ok
}

// Strings returns the option names of a multi_select property, nil when
// the property is absent or of another type.
func (p *Page) Strings(name string) []string {
	v, ok := p.Properties[name]
	if !ok {
		return nil
	}

	names, _ := v.Value().([]string)
	return names
}

// Checkbox returns a checkbox property's value. The second return is
// false when the property is absent entirely, letting callers pick their
// own default.
func (p *Page) Checkbox(name string) (bool, bool) {
	v, ok := p.Properties[name]
	if !ok {
		return false, false
	}

	b, ok := v.Value().(bool)
	return b, ok
}

// Number returns a number property's value, 0 when absent.
func (p *Page) Number(name string) float64 {
	v, ok := p.Properties[name]
	if !ok {
		return 0
	}

	n, _ := v.Value().(float64)
	return n
}

// SelectName returns the selected option name, empty when unset.
func (p *Page) SelectName(name string) string {
	v, ok := p.Properties[name]
	if !ok || v.Type != TypeSelect {
		return ""
	}

	s, _ := v.Value().(string)
	return s
}

// DateStart returns the start date string of a date property, empty when
// unset.
func (p *Page) DateStart(name string) string {
	v, ok := p.Properties[name]
	if !ok || v.Type != TypeDate {
		return ""
	}

	s, _ := v.Value().(string)
	return s
}

// RelationID returns the first related page id, empty when the relation is
// empty or absent.
func (p *Page) RelationID(name string) string {
	v, ok := p.Properties[name]
	if !ok || v.Type != TypeRelation {
		return ""
	}

	s, _ := v.Value().(string)
	return s
}

// CreatedDate returns the date portion (before the time separator) of the
// page's creation timestamp.
func (p *Page) CreatedDate() string {
	date, _, _ := strings.Cut(p.CreatedTime, "T")
	return date
}
