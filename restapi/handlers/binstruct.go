package handlers

import (
	"net/http"

	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/service"
)

const (
	ActionAppend = "append"
	ActionDelete = "delete"
	ActionRaw    = "raw"
)

func HandleListBinStructs(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		structs, err := svc.ListBinStructs()
		if err != nil {
			respond(w, nil, err)
			return
		}
		data := make([]*models.BinStruct, 0, len(structs))
		for _, bs := range structs {
			data = append(data, models.NewBinStruct(bs))
		}
		respond(w, data, nil)
	}
}

func HandleDeleteBinStructs(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			respond(w, nil, err)
			return
		}
		msgs, err := svc.DeleteBinStructs(forms.BindDeleteFormset(r.PostForm))
		if err != nil {
			respond(w, nil, err)
			return
		}
		respondMessages(w, msgs, &models.MessagesResponseData{Errors: msgs})
	}
}

// HandleSaveBinStruct stores the posted label and field formset. Without an
// {id} route variable a new struct is created.
func HandleSaveBinStruct(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bsID *int64
		if _, ok := routeVar(r, "id"); ok {
			id, err := pathID(r)
			if err != nil {
				respond(w, nil, err)
				return
			}
			bsID = &id
		}
		if err := parseForm(r); err != nil {
			respond(w, nil, err)
			return
		}
		res, err := svc.SaveBinStruct(forms.NewBinStructForm(r.PostForm), bsID, service.ReconcileFromRaw(r.PostForm))
		if err != nil {
			respond(w, nil, err)
			return
		}
		respondMessages(w, res.Errors, &models.SaveBinStructResponseData{ID: res.ID, Errors: res.Errors})
	}
}

func HandleReconcileFromStruct(svc service.BinStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respond(w, nil, err)
			return
		}
		rows, err := svc.ReconcileFromStruct(id)
		if err != nil {
			respond(w, nil, err)
			return
		}
		respond(w, &models.BinFieldFormsetResponseData{Rows: rows}, nil)
	}
}

func HandleEmptyFormset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, &models.BinFieldFormsetResponseData{Rows: service.ReconcileEmpty()}, nil)
	}
}

// HandleReconcileFormset computes the rows to render after an append, delete
// or plain re-render of the posted formset.
func HandleReconcileFormset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			respond(w, nil, err)
			return
		}
		fs := service.ReconcileFromRaw(r.PostForm)
		if fs.NonFormError() != nil {
			msgs := forms.ErrorMessages(fs.NonFormError())
			respondMessages(w, msgs, &models.BinFieldFormsetResponseData{Rows: []forms.BinFieldRow{}, Errors: msgs})
			return
		}

		data := &models.BinFieldFormsetResponseData{}
		switch action := r.URL.Query().Get("action"); action {
		case ActionAppend:
			data.Rows = service.ReconcileAppend(fs)
		case ActionDelete:
			data.Rows = service.ReconcileDelete(fs)
		case ActionRaw, "":
			valid := fs.IsValid()
			data.Rows = make([]forms.BinFieldRow, 0, len(fs.Forms))
			for _, f := range fs.Forms {
				data.Rows = append(data.Rows, f.Row())
			}
			if !valid {
				data.Errors = fs.ErrorMessages()
			}
		default:
			respond(w, nil, service.BadRequestErr.Enrich("unknown action "+action))
			return
		}
		respond(w, data, nil)
	}
}
