package handlers

import (
	"net/http"

	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/service"
)

func HandleListBinData(svc service.BinData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bds, err := svc.ListBinData()
		if err != nil {
			respond(w, nil, err)
			return
		}
		data := make([]*models.BinData, 0, len(bds))
		for _, bd := range bds {
			data = append(data, models.NewBinData(bd, svc.BinDataPath(bd)))
		}
		respond(w, data, nil)
	}
}

// HandleUploadBinData stores every file of the multipart "uploads" field.
func HandleUploadBinData(svc service.BinData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respond(w, nil, service.BadRequestErr.Enrich(err.Error()))
			return
		}
		defer r.MultipartForm.RemoveAll()

		msgs, err := svc.Ingest(r.Context(), forms.FileFormFromMultipart(r.MultipartForm))
		if err != nil {
			respond(w, nil, err)
			return
		}
		respondMessages(w, msgs, &models.MessagesResponseData{Errors: msgs})
	}
}

func HandleDeleteBinData(svc service.BinData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			respond(w, nil, err)
			return
		}
		msgs, err := svc.DeleteBinData(r.Context(), forms.BindDeleteFormset(r.PostForm))
		if err != nil {
			respond(w, nil, err)
			return
		}
		respondMessages(w, msgs, &models.MessagesResponseData{Errors: msgs})
	}
}
