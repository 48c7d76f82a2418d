package models

import (
	"github.com/binplot/binplot/forms"
)

// Response is the envelope of every api reply. Code 0 means success.
type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SaveBinStructResponseData is the outcome of a struct save. Errors is empty
// when the struct and its fields were stored.
type SaveBinStructResponseData struct {
	ID     int64    `json:"id,omitempty"`
	Errors []string `json:"errors"`
}

// MessagesResponseData carries the validation messages of a form submission.
type MessagesResponseData struct {
	Errors []string `json:"errors"`
}

// BinFieldFormsetResponseData is the field formset to render next.
type BinFieldFormsetResponseData struct {
	Rows   []forms.BinFieldRow `json:"rows"`
	Errors []string            `json:"errors,omitempty"`
}

// SelectorsResponseData lists select fields and, when they were given, the
// values they start at.
type SelectorsResponseData struct {
	Selectors []*forms.ChoiceForm `json:"selectors"`
	Initials  []string            `json:"initials,omitempty"`
}

type GraphTypesResponseData struct {
	Selector   *forms.ChoiceForm `json:"selector"`
	GraphTypes []forms.GraphType `json:"graph_types"`
}
