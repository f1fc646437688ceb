package contentmanager

// Control is one rendered form element.
type Control struct {
	Element  string   `json:"element"` // input, textarea or select
	Type     string   `json:"type,omitempty"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
	Value    string   `json:"value"`
}

// RenderForm turns a schema and the current values into form controls, in
// schema order.
func RenderForm(schema Schema, values Record) []Control {
	controls := make([]Control, 0, len(schema))
	for _, f := range schema {
		ctl := Control{
			Name:     f.Key,
			Label:    f.Label,
			Required: f.Required,
			Value:    values.Text(f.Key),
		}
		switch f.Kind {
		case KindTextArea:
			ctl.Element = "textarea"
		case KindSelect:
			ctl.Element = "select"
			ctl.Options = f.Options
		case KindNumber, KindEmail, KindURL:
			ctl.Element = "input"
			ctl.Type = string(f.Kind)
		default:
			ctl.Element = "input"
			ctl.Type = "text"
		}
		controls = append(controls, ctl)
	}
	return controls
}
