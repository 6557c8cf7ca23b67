package formmodal

import "github.com/charmbracelet/bubbles/textinput"

// fieldState holds runtime state for a field.
type fieldState struct {
	config FieldConfig

	textInput textinput.Model

	listCursor int
	listItems  []listItem

	// selected option index of a select field, -1 when none
	choice int
}

type listItem struct {
	label    string
	value    string
	selected bool
}

func newFieldState(cfg FieldConfig, inputWidth int) fieldState {
	fs := fieldState{config: cfg, choice: -1}

	switch cfg.Type {
	case FieldTypeText:
		ti := textinput.New()
		ti.Placeholder = cfg.Placeholder
		ti.Prompt = ""
		if cfg.MaxLength > 0 {
			ti.CharLimit = cfg.MaxLength
		}
		ti.SetValue(cfg.InitialValue)
		ti.Width = inputWidth
		fs.textInput = ti

	case FieldTypeList:
		fs.listItems = make([]listItem, len(cfg.Options))
		for i, opt := range cfg.Options {
			fs.listItems[i] = listItem{label: opt.Label, value: opt.Value, selected: opt.Selected}
		}

	case FieldTypeSelect:
		for i, opt := range cfg.Options {
			if (cfg.InitialValue != "" && opt.Value == cfg.InitialValue) || (cfg.InitialValue == "" && opt.Selected) {
				fs.choice = i
				break
			}
		}
	}
	return fs
}

func (fs *fieldState) value() any {
	switch fs.config.Type {
	case FieldTypeText:
		return fs.textInput.Value()
	case FieldTypeList:
		selected := []string{}
		for _, item := range fs.listItems {
			if item.selected {
				selected = append(selected, item.value)
			}
		}
		return selected
	case FieldTypeSelect:
		if fs.choice >= 0 && fs.choice < len(fs.config.Options) {
			return fs.config.Options[fs.choice].Value
		}
		return ""
	}
	return nil
}

// display is the select field's current label.
func (fs *fieldState) display() string {
	if fs.choice >= 0 && fs.choice < len(fs.config.Options) {
		return fs.config.Options[fs.choice].Label
	}
	return ""
}

func (fs *fieldState) toggleCursor() {
	if fs.listCursor >= 0 && fs.listCursor < len(fs.listItems) {
		fs.listItems[fs.listCursor].selected = !fs.listItems[fs.listCursor].selected
	}
}
