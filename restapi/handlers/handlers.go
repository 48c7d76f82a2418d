package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-openapi/runtime"
	"github.com/gorilla/mux"

	"github.com/binplot/binplot/logging"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/service"
	"github.com/binplot/binplot/util"
)

// maxUploadMemory is the part of a multipart body kept in memory, the rest is
// spooled to temporary files.
const maxUploadMemory = 32 << 20

const invalidInputMessage = "invalid input"

var jsonProducer = runtime.JSONProducer()

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       []byte
	header     http.Header
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK, []byte{}, http.Header{}}
}

func (rw *responseWriter) Write(body []byte) (int, error) {
	rw.body = body
	return rw.ResponseWriter.Write(body)
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.header = rw.ResponseWriter.Header()
	rw.ResponseWriter.WriteHeader(code)
}

// LogRequests logs method, path, status and latency of every request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		if rw.statusCode >= http.StatusInternalServerError {
			logging.Logger.Errorf("%s %s status=%d cost=%s body=%s", r.Method, r.URL.Path, rw.statusCode, time.Since(start), string(rw.body))
			return
		}
		logging.Logger.Debugf("%s %s status=%d cost=%s", r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}

func Error(err error) (int64, string) {
	switch e := err.(type) {
	case service.Err:
		return e.Code, e.Message
	case nil:
		return service.NoErr.Code, service.NoErr.Message
	default:
		return service.InternalErr.Code, err.Error()
	}
}

func writeResponse(w http.ResponseWriter, status int, payload *models.Response) {
	w.Header().Set(runtime.HeaderContentType, runtime.JSONMime)
	w.WriteHeader(status)
	if err := jsonProducer.Produce(w, payload); err != nil {
		logging.Logger.Errorf("failed to write response, err=%s", err.Error())
	}
}

// respond writes data on success and the mapped error otherwise.
func respond(w http.ResponseWriter, data interface{}, err error) {
	code, message := Error(err)
	if err != nil {
		writeResponse(w, int(code), &models.Response{Code: code, Message: message})
		return
	}
	writeResponse(w, http.StatusOK, &models.Response{Code: code, Message: message, Data: data})
}

// respondMessages writes data with 200 when msgs is empty, and with 400 and
// the invalid input code otherwise.
func respondMessages(w http.ResponseWriter, msgs []string, data interface{}) {
	if len(msgs) == 0 {
		respond(w, data, nil)
		return
	}
	writeResponse(w, http.StatusBadRequest, &models.Response{
		Code:    service.BadRequestErr.Code,
		Message: invalidInputMessage,
		Data:    data,
	})
}

func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return service.BadRequestErr.Enrich(err.Error())
	}
	return nil
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := util.StringToInt64(raw)
	if err != nil {
		return 0, service.BadRequestErr.Enrich(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// queryID reads a numeric query parameter.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	id, err := util.StringToInt64(raw)
	if err != nil {
		return 0, service.BadRequestErr.Enrich(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}
