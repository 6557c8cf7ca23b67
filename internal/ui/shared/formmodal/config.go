// Package formmodal is a keyboard-driven form made of text inputs, checkbox
// lists and pickers. It reports per-field validation messages and backs the
// create and edit inspection forms.
package formmodal

// FieldType selects how a field is edited and what value it yields.
type FieldType int

const (
	// FieldTypeText yields a string.
	FieldTypeText FieldType = iota
	// FieldTypeList is a checkbox list and yields []string of checked values.
	FieldTypeList
	// FieldTypeSelect opens a picker and yields the chosen value as a string.
	FieldTypeSelect
)

// ListOption is one entry of a list or select field.
type ListOption struct {
	Label    string
	Value    string
	Selected bool
}

// FieldConfig describes one field.
type FieldConfig struct {
	Key          string
	Type         FieldType
	Label        string
	Hint         string // muted text beside the label
	Placeholder  string
	MaxLength    int
	InitialValue string // text value, or the selected value of a select field
	Options      []ListOption
}

// FormConfig describes the whole form.
type FormConfig struct {
	Title       string
	Fields      []FieldConfig
	SubmitLabel string // default "Submit"
	CancelLabel string // default "Cancel"
	Width       int    // box width, default 56

	// Validate runs on submit. A returned error that also has a
	// Message(field string) string method is shown under each field.
	Validate func(values map[string]any) error
}

const defaultWidth = 56

func (c FormConfig) width() int {
	if c.Width > 0 {
		return c.Width
	}
	return defaultWidth
}

func (c FormConfig) submitLabel() string {
	if c.SubmitLabel != "" {
		return c.SubmitLabel
	}
	return "Submit"
}

func (c FormConfig) cancelLabel() string {
	if c.CancelLabel != "" {
		return c.CancelLabel
	}
	return "Cancel"
}
