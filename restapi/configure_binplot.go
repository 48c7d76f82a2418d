package restapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/go-openapi/spec"
	"github.com/gorilla/mux"

	"github.com/binplot/binplot/logging"
	"github.com/binplot/binplot/restapi/handlers"
	"github.com/binplot/binplot/service"
)

// Services are the backends the api routes to.
type Services struct {
	BinStruct service.BinStruct
	BinData   service.BinData
	Graph     service.Graph
}

// ConfigureAPI builds the api handler: the routes, /swagger.json and the
// global middlewares.
func ConfigureAPI(svcs *Services) (http.Handler, error) {
	doc, err := loads.Analyzed(SwaggerJSON, "")
	if err != nil {
		return nil, err
	}
	logAPIInfo(doc.Spec())

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.ServeError(w, r, errors.NotFound("path %s was not found", r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.ServeError(w, r, errors.MethodNotAllowed(r.Method, nil))
	})

	if err := registerOperations(router, doc, operationHandlers(svcs)); err != nil {
		return nil, err
	}

	return setupGlobalMiddleware(middleware.Spec("", doc.Raw(), setupMiddlewares(router))), nil
}

// operationHandlers maps every operationId of the embedded document to its
// handler.
func operationHandlers(svcs *Services) map[string]http.Handler {
	return map[string]http.Handler{
		"listBinStructs":      handlers.HandleListBinStructs(svcs.BinStruct),
		"createBinStruct":     handlers.HandleSaveBinStruct(svcs.BinStruct),
		"updateBinStruct":     handlers.HandleSaveBinStruct(svcs.BinStruct),
		"deleteBinStructs":    handlers.HandleDeleteBinStructs(svcs.BinStruct),
		"reconcileFromStruct": handlers.HandleReconcileFromStruct(svcs.BinStruct),
		"emptyFormset":        handlers.HandleEmptyFormset(),
		"reconcileFormset":    handlers.HandleReconcileFormset(),
		"listBinData":         handlers.HandleListBinData(svcs.BinData),
		"uploadBinData":       handlers.HandleUploadBinData(svcs.BinData),
		"deleteBinData":       handlers.HandleDeleteBinData(svcs.BinData),
		"selectGraph":         handlers.HandleSelectGraph(),
		"selectBinStruct":     handlers.HandleSelectBinStruct(svcs.BinStruct),
		"selectBinData":       handlers.HandleSelectBinData(svcs.BinData),
		"selectBinFields":     handlers.HandleSelectBinFields(svcs.BinStruct),
		"graphSeries":         handlers.HandleGraph(svcs.Graph),
	}
}

// registerOperations adds one route per operation of doc. Every operation
// needs a handler and every handler an operation.
func registerOperations(router *mux.Router, doc *loads.Document, byID map[string]http.Handler) error {
	ops := doc.Analyzer.Operations()
	methods := make([]string, 0, len(ops))
	for method := range ops {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	used := make(map[string]bool, len(byID))
	for _, method := range methods {
		paths := make([]string, 0, len(ops[method]))
		for p := range ops[method] {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			op := ops[method][p]
			h, ok := byID[op.ID]
			if !ok {
				return fmt.Errorf("no handler for operation %s %s %s", op.ID, method, p)
			}
			used[op.ID] = true
			router.Handle(routeTemplate(p, op), h).Methods(method)
		}
	}
	for id := range byID {
		if !used[id] {
			return fmt.Errorf("handler %s has no operation", id)
		}
	}
	return nil
}

// routeTemplate turns integer path parameters into numeric mux variables, so
// /binstructs/delete never matches /binstructs/{id}.
func routeTemplate(p string, op *spec.Operation) string {
	for _, param := range op.Parameters {
		if param.In == "path" && param.Type == "integer" {
			p = strings.ReplaceAll(p, "{"+param.Name+"}", "{"+param.Name+":[0-9]+}")
		}
	}
	return p
}

func logAPIInfo(sw *spec.Swagger) {
	if sw == nil || sw.Info == nil {
		return
	}
	paths := 0
	if sw.Paths != nil {
		paths = len(sw.Paths.Paths)
	}
	logging.Logger.Infof("configured api %s %s, paths=%d", sw.Info.Title, sw.Info.Version, paths)
}

// The middleware configuration is for the handler executors. These do not apply to the swagger.json document.
func setupMiddlewares(handler http.Handler) http.Handler {
	return handlers.LogRequests(handler)
}

// The middleware configuration happens before anything, this middleware also applies to serving the swagger.json document.
func setupGlobalMiddleware(handler http.Handler) http.Handler {
	return recoverPanic(handler)
}

func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logging.Logger.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, v)
				errors.ServeError(w, r, errors.New(http.StatusInternalServerError, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
