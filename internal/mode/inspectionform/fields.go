package inspectionform

import (
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/mode/shared"
	"github.com/zjrosen/riceinspect/internal/ui/shared/formmodal"
)

const dateTimePlaceholder = "YYYY-MM-DD HH:MM:SS"

func createConfig(standards []inspection.Standard, services mode.Services) formmodal.FormConfig {
	loc := services.Location()
	return formmodal.FormConfig{
		Title: "New inspection",
		Fields: []formmodal.FieldConfig{
			{Key: fieldName, Type: formmodal.FieldTypeText, Label: "Name", Hint: "required", MaxLength: 120},
			{Key: fieldStandard, Type: formmodal.FieldTypeSelect, Label: "Standard", Hint: "required", Options: shared.StandardOptions(standards)},
			{Key: fieldNote, Type: formmodal.FieldTypeText, Label: "Note"},
			{Key: fieldPrice, Type: formmodal.FieldTypeText, Label: "Price", Hint: "0 - 100,000", Placeholder: "0.00"},
			{Key: fieldSampling, Type: formmodal.FieldTypeList, Label: "Sampling Point", Options: shared.SamplingOptions(nil)},
			{Key: fieldDateTime, Type: formmodal.FieldTypeText, Label: "Date/Time", Placeholder: dateTimePlaceholder},
			{Key: fieldRawJSON, Type: formmodal.FieldTypeText, Label: "Raw JSON file", Hint: "path", Placeholder: "./sample.json"},
		},
		SubmitLabel: "Submit",
		Validate: func(values map[string]any) error {
			// The raw file is read on submit; only the typed fields are
			// checked here.
			f := inspection.CreateForm{
				Name:          str(values, fieldName),
				StandardID:    str(values, fieldStandard),
				Note:          str(values, fieldNote),
				Price:         str(values, fieldPrice),
				SamplingPoint: list(values, fieldSampling),
				DateTime:      str(values, fieldDateTime),
			}
			_, err := f.Payload(loc)
			return err
		},
	}
}

func editConfig(r inspection.Record, services mode.Services) formmodal.FormConfig {
	f := inspection.FormFromRecord(r)
	loc := services.Location()
	if r.SamplingDateTime != nil {
		f.DateTime = r.SamplingDateTime.In(loc).Format(inspection.DateTimeLayout)
	}
	return formmodal.FormConfig{
		Title: "Edit " + r.Name,
		Fields: []formmodal.FieldConfig{
			{Key: fieldNote, Type: formmodal.FieldTypeText, Label: "Note", InitialValue: f.Note},
			{Key: fieldPrice, Type: formmodal.FieldTypeText, Label: "Price", Hint: "0 - 100,000", InitialValue: f.Price},
			{Key: fieldDateTime, Type: formmodal.FieldTypeText, Label: "Date/Time", Placeholder: dateTimePlaceholder, InitialValue: f.DateTime},
			{Key: fieldSampling, Type: formmodal.FieldTypeList, Label: "Sampling Point", Options: shared.SamplingOptions(r.SamplingPoint)},
		},
		SubmitLabel: "Save",
		Validate: func(values map[string]any) error {
			_, err := updateForm(values).Payload(loc)
			return err
		},
	}
}
