package formmodal

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func tab(m Model) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	return m
}

func twoFields() FormConfig {
	return FormConfig{
		Title: "Test Form",
		Fields: []FieldConfig{
			{Key: "name", Type: FieldTypeText, Label: "Name"},
			{Key: "note", Type: FieldTypeText, Label: "Note"},
		},
	}
}

// fieldErr mimics a validation error that knows its fields.
type fieldErr map[string]string

func (e fieldErr) Error() string              { return "invalid" }
func (e fieldErr) Message(field string) string { return e[field] }

func TestFocusCycling_Forward(t *testing.T) {
	m := New(twoFields())
	if m.focusedIndex != 0 {
		t.Errorf("expected focused index 0, got %d", m.focusedIndex)
	}

	m = tab(m)
	if m.focusedIndex != 1 {
		t.Errorf("expected focused index 1, got %d", m.focusedIndex)
	}

	m = tab(m)
	if m.focusedIndex != -1 || m.focusedButton != buttonSubmit {
		t.Errorf("expected submit button, got index %d button %d", m.focusedIndex, m.focusedButton)
	}

	m = tab(m)
	if m.focusedButton != buttonCancel {
		t.Errorf("expected cancel button, got %d", m.focusedButton)
	}

	m = tab(m)
	if m.focusedIndex != 0 {
		t.Errorf("expected wrap to first field, got %d", m.focusedIndex)
	}
}

func TestFocusCycling_Reverse(t *testing.T) {
	m := New(twoFields())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedIndex != -1 || m.focusedButton != buttonCancel {
		t.Errorf("expected cancel button, got index %d button %d", m.focusedIndex, m.focusedButton)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedButton != buttonSubmit {
		t.Errorf("expected submit button, got %d", m.focusedButton)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedIndex != 1 {
		t.Errorf("expected focused index 1, got %d", m.focusedIndex)
	}
}

func TestFocusCycling_NoFields(t *testing.T) {
	m := New(FormConfig{Title: "Confirm"})
	require.Equal(t, -1, m.focusedIndex)

	m = tab(m)
	require.Equal(t, buttonCancel, m.focusedButton)
	m = tab(m)
	require.Equal(t, buttonSubmit, m.focusedButton)
}

func TestTextInput_TypingAndInitialValue(t *testing.T) {
	cfg := twoFields()
	cfg.Fields[1].InitialValue = "old note"
	m := typeText(New(cfg), "Lot A")

	values := m.Values()
	require.Equal(t, "Lot A", values["name"])
	require.Equal(t, "old note", values["note"])
}

func TestListField_ToggleAndNavigate(t *testing.T) {
	m := New(FormConfig{Fields: []FieldConfig{{
		Key:  "samplingPoint",
		Type: FieldTypeList,
		Options: []ListOption{
			{Label: "Front End", Value: "Front End"},
			{Label: "Back End", Value: "Back End", Selected: true},
			{Label: "Other", Value: "Other"},
		},
	}}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	require.Equal(t, []string{"Front End", "Back End", "Other"}, m.Values()["samplingPoint"])

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	require.Equal(t, []string{"Front End", "Other"}, m.Values()["samplingPoint"])
}

func TestListField_EmptyIsNonNil(t *testing.T) {
	m := New(FormConfig{Fields: []FieldConfig{{Key: "points", Type: FieldTypeList}}})
	require.Equal(t, []string{}, m.Values()["points"])
}

func TestSelectField_PickerFlow(t *testing.T) {
	m := New(FormConfig{Fields: []FieldConfig{{
		Key:         "standardId",
		Type:        FieldTypeSelect,
		Label:       "Standard",
		Placeholder: "Please select standard",
		Options: []ListOption{
			{Label: "Standard A", Value: "1"},
			{Label: "Standard B", Value: "2"},
		},
	}}})
	require.Equal(t, "", m.Values()["standardId"])
	require.Contains(t, m.View(), "Please select standard")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showPicker)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, picker.SelectMsg{}, msg)

	m, _ = m.Update(msg)
	require.False(t, m.showPicker)
	require.Equal(t, "2", m.Values()["standardId"])
	require.Contains(t, m.View(), "Standard B")
}

func TestSelectField_InitialValue(t *testing.T) {
	m := New(FormConfig{Fields: []FieldConfig{{
		Key:          "standardId",
		Type:         FieldTypeSelect,
		InitialValue: "2",
		Options:      []ListOption{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}},
	}}})
	require.Equal(t, "2", m.Values()["standardId"])
}

func TestSelectField_PickerCancelKeepsValue(t *testing.T) {
	m := New(FormConfig{Fields: []FieldConfig{{
		Key: "standardId", Type: FieldTypeSelect, InitialValue: "1",
		Options: []ListOption{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}},
	}}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m, _ = m.Update(cmd())

	require.False(t, m.showPicker)
	require.Equal(t, "1", m.Values()["standardId"])
}

func TestSubmit_CtrlSSendsValues(t *testing.T) {
	m := typeText(New(twoFields()), "Lot A")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	require.Equal(t, "Lot A", msg.Values["name"])
	require.Equal(t, "", msg.Values["note"])
}

func TestSubmit_EnterOnSubmitButton(t *testing.T) {
	m := tab(tab(New(twoFields())))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, SubmitMsg{}, cmd())
}

func TestSubmit_EnterOnTextAdvances(t *testing.T) {
	m, cmd := New(twoFields()).Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.focusedIndex)
	require.NotNil(t, cmd, "blink command for the next text field")
}

func TestCancel_EscAndCancelButton(t *testing.T) {
	_, cmd := New(twoFields()).Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.IsType(t, CancelMsg{}, cmd())

	m := tab(tab(tab(New(twoFields()))))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, CancelMsg{}, cmd())
}

func TestValidate_FieldErrorsShownUnderFields(t *testing.T) {
	cfg := twoFields()
	cfg.Validate = func(values map[string]any) error {
		if values["name"] == "" {
			return fieldErr{"name": "Please enter inspection name"}
		}
		return nil
	}
	m, cmd := New(cfg).Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
	require.Equal(t, "Please enter inspection name", m.FieldError("name"))
	require.Empty(t, m.FormError())
	require.Contains(t, m.View(), "Please enter inspection name")

	m = typeText(m, "x")
	require.Empty(t, m.FieldError("name"), "typing clears the field message")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.IsType(t, SubmitMsg{}, cmd())
}

func TestValidate_UnknownFieldFallsBackToFormError(t *testing.T) {
	cfg := twoFields()
	cfg.Validate = func(map[string]any) error { return fieldErr{"dateRange": "bad"} }
	m, _ := New(cfg).Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, "invalid", m.FormError())
}

func TestSetError_PlainError(t *testing.T) {
	m := New(twoFields()).SetError(errors.New("Failed to create inspection"))
	require.Equal(t, "Failed to create inspection", m.FormError())
	require.Contains(t, m.View(), "Failed to create inspection")

	m = m.SetError(nil)
	require.Empty(t, m.FormError())
}

func TestSetSubmitting_BlocksSubmit(t *testing.T) {
	m := New(twoFields()).SetSubmitting(true)
	require.True(t, m.Submitting())
	require.Contains(t, m.View(), "Saving")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
}

func TestView_CustomLabels(t *testing.T) {
	cfg := twoFields()
	cfg.SubmitLabel = "Create"
	cfg.CancelLabel = "Back"
	view := New(cfg).SetSize(100, 40).Overlay(strings.Repeat("x\n", 40))
	require.Contains(t, view, "Create")
	require.Contains(t, view, "Back")
	require.Contains(t, view, "Test Form")
}
