package handlers

import (
	"net/http"

	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/service"
)

// HandleGraph decodes ?bd= with struct ?bs= and returns the series of the
// repeated ?bf= fields for ?graph=.
func HandleGraph(svc service.Graph) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bdID, err := queryID(r, "bd")
		if err != nil {
			respond(w, nil, err)
			return
		}
		bsID, err := queryID(r, "bs")
		if err != nil {
			respond(w, nil, err)
			return
		}
		query := r.URL.Query()
		graph, msgs, err := svc.GraphSeries(r.Context(), &service.GraphRequest{
			BdID:    bdID,
			BsID:    bsID,
			GraphID: query.Get("graph"),
			BfIDs:   query["bf"],
			Option:  forms.NewGraphOption(query),
		})
		if err != nil {
			respond(w, nil, err)
			return
		}
		if len(msgs) != 0 {
			respondMessages(w, msgs, &models.MessagesResponseData{Errors: msgs})
			return
		}
		respond(w, graph, nil)
	}
}
