package forms

import (
	"net/url"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"

	"github.com/binplot/binplot/db"
)

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ChoiceForm is a single select field. The selected value must be one of
// the choices.
type ChoiceForm struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Choices []Choice `json:"choices"`
	Initial string   `json:"initial,omitempty"`

	raw       url.Values
	value     *string
	validated bool
	err       *errors.Validation
}

func newChoiceForm(name, label string, choices []Choice) *ChoiceForm {
	return &ChoiceForm{Name: name, Label: label, Choices: choices}
}

// Bind attaches submitted data; an unbound form is never valid.
func (f *ChoiceForm) Bind(values url.Values) *ChoiceForm {
	f.raw = values
	f.validated = false
	f.value = nil
	f.err = nil
	return f
}

func (f *ChoiceForm) full() {
	if f.validated {
		return
	}
	f.validated = true
	if f.raw == nil {
		f.err = validate.Required(f.Name, in, "")
		return
	}
	v := rawValue(f.raw, f.Name)
	if err := validate.RequiredString(f.Name, in, v); err != nil {
		f.err = err
		return
	}
	allowed := make([]string, 0, len(f.Choices))
	for _, c := range f.Choices {
		allowed = append(allowed, c.Value)
	}
	if err := validate.Enum(f.Name, in, v, allowed); err != nil {
		f.err = err
		return
	}
	f.value = &v
}

func (f *ChoiceForm) IsValid() bool {
	f.full()
	return f.err == nil
}

func (f *ChoiceForm) Value() (string, bool) {
	f.full()
	if f.value == nil {
		return "", false
	}
	return *f.value, true
}

func (f *ChoiceForm) ErrorMessages() []string {
	f.full()
	if f.err == nil {
		return ErrorMessages(nil)
	}
	return ErrorMessages(f.err)
}

// SelectBinFieldForm selects one field of a struct, or the record index.
type SelectBinFieldForm = ChoiceForm

func NewSelectBinFieldForm(choices []Choice) *SelectBinFieldForm {
	return newChoiceForm("bf", "Field", choices)
}

// BinFieldChoices lists the index pseudo field followed by the fields.
func BinFieldChoices(fields []*db.BinField) []Choice {
	choices := []Choice{{Value: db.IndexLabel, Label: db.IndexLabel}}
	for _, bf := range fields {
		choices = append(choices, Choice{Value: swag.FormatInt64(bf.Id), Label: bf.Label})
	}
	return choices
}

func NewSelectBinStructForm(structs []*db.BinStruct) *ChoiceForm {
	choices := make([]Choice, 0, len(structs))
	for _, bs := range structs {
		choices = append(choices, Choice{Value: swag.FormatInt64(bs.Id), Label: bs.Label})
	}
	return newChoiceForm("bs", "Structure", choices)
}

func NewSelectBinDataForm(bds []*db.BinData) *ChoiceForm {
	choices := make([]Choice, 0, len(bds))
	for _, bd := range bds {
		choices = append(choices, Choice{Value: swag.FormatInt64(bd.Id), Label: bd.Fname})
	}
	return newChoiceForm("bd", "Data", choices)
}

const (
	GraphScatter   = "id_scatter"
	GraphScatter3D = "id_scatter_3d"
	GraphLine      = "id_line"
	GraphLine3D    = "id_line_3d"
)

// GraphType is a plot kind and the number of fields it needs.
type GraphType struct {
	ID          string `json:"id"`
	RequiredNum int    `json:"required_num"`
	Text        string `json:"text"`
}

var GraphTypes = []GraphType{
	{ID: GraphScatter, RequiredNum: 2, Text: "scatter"},
	{ID: GraphScatter3D, RequiredNum: 3, Text: "scatter 3D"},
	{ID: GraphLine, RequiredNum: 2, Text: "line"},
	{ID: GraphLine3D, RequiredNum: 3, Text: "line 3D"},
}

func LookupGraphType(id string) (GraphType, bool) {
	for _, g := range GraphTypes {
		if g.ID == id {
			return g, true
		}
	}
	return GraphType{}, false
}

// RequiredNum is the number of fields the graph plots, 0 for unknown ids.
func RequiredNum(id string) int {
	g, _ := LookupGraphType(id)
	return g.RequiredNum
}

func NewSelectGraphForm() *ChoiceForm {
	choices := make([]Choice, 0, len(GraphTypes))
	for _, g := range GraphTypes {
		choices = append(choices, Choice{Value: g.ID, Label: g.Text})
	}
	return newChoiceForm("graph", "Graph", choices)
}

const (
	DefaultGraphWidth  = 1024
	DefaultGraphHeight = 512
	MinGraphSize       = 10
)

// GraphOption holds the plot size. Missing values fall back to the defaults.
type GraphOption struct {
	raw url.Values

	cleaned   map[string]float64
	validated bool
	errs      errorList
}

func NewGraphOption(values url.Values) *GraphOption {
	if values == nil {
		values = url.Values{}
	}
	return &GraphOption{raw: values}
}

func (o *GraphOption) full() {
	if o.validated {
		return
	}
	o.validated = true
	o.cleaned = map[string]float64{}
	defaults := map[string]float64{"width": DefaultGraphWidth, "height": DefaultGraphHeight}
	for _, name := range []string{"width", "height"} {
		if rawValue(o.raw, name) == "" {
			o.cleaned[name] = defaults[name]
			continue
		}
		v, err := cleanFloat(o.raw, name)
		if err != nil {
			o.errs.add(err)
			continue
		}
		if err := validate.Minimum(name, in, *v, MinGraphSize, false); err != nil {
			o.errs.add(err)
			continue
		}
		o.cleaned[name] = *v
	}
}

// Get returns the cleaned value of width or height.
func (o *GraphOption) Get(label string) (float64, bool) {
	o.full()
	v, ok := o.cleaned[label]
	return v, ok
}

func (o *GraphOption) IsValid() bool {
	o.full()
	return len(o.errs) == 0
}

func (o *GraphOption) ErrorMessages() []string {
	o.full()
	return ErrorMessages(o.errs.err())
}
