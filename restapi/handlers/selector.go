package handlers

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/gorilla/mux"

	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/service"
)

func routeVar(r *http.Request, name string) (string, bool) {
	v, ok := mux.Vars(r)[name]
	return v, ok
}

func HandleSelectGraph() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, &models.GraphTypesResponseData{
			Selector:   forms.NewSelectGraphForm(),
			GraphTypes: forms.GraphTypes,
		}, nil)
	}
}

func HandleSelectBinStruct(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		structs, err := svc.ListBinStructs()
		if err != nil {
			respond(w, nil, err)
			return
		}
		respond(w, &models.SelectorsResponseData{
			Selectors: []*forms.ChoiceForm{forms.NewSelectBinStructForm(structs)},
		}, nil)
	}
}

func HandleSelectBinData(svc service.BinData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bds, err := svc.ListBinData()
		if err != nil {
			respond(w, nil, err)
			return
		}
		respond(w, &models.SelectorsResponseData{
			Selectors: []*forms.ChoiceForm{forms.NewSelectBinDataForm(bds)},
		}, nil)
	}
}

// HandleSelectBinFields builds ?num= field selectors for the struct, each
// starting at the matching repeated ?initial= value.
func HandleSelectBinFields(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respond(w, nil, err)
			return
		}
		query := r.URL.Query()
		num := 1
		if raw := query.Get("num"); raw != "" {
			n, err := swag.ConvertInt32(raw)
			if err != nil || n < 0 || n > forms.MaxNumForms {
				respond(w, nil, service.BadRequestErr.Enrich("invalid num "+raw))
				return
			}
			num = int(n)
		}
		if _, err := svc.GetBinStruct(id); err != nil {
			respond(w, nil, err)
			return
		}
		selectors, initials, err := svc.SelectBinFieldForms(id, num, query["initial"])
		if err != nil {
			respond(w, nil, err)
			return
		}
		respond(w, &models.SelectorsResponseData{Selectors: selectors, Initials: initials}, nil)
	}
}
