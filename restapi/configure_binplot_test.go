package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-openapi/loads"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/binplot/binplot/cache"
	"github.com/binplot/binplot/config"
	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/service"
	"github.com/binplot/binplot/storage"
)

type envelope struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestAPI(t *testing.T) http.Handler {
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.AutoMigrateDB(gdb)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	dao := db.NewBinSvcDB(gdb)
	c, err := cache.NewLocalCache(cache.DefaultCacheSize)
	require.NoError(t, err)
	mediaRoot := t.TempDir()
	bsSvc := service.NewBinStructService(dao, c)
	bdSvc := service.NewBinDataService(dao, storage.NewLocalStore(mediaRoot), &config.StorageConfig{MediaRoot: mediaRoot})

	handler, err := ConfigureAPI(&Services{
		BinStruct: bsSvc,
		BinData:   bdSvc,
		Graph:     service.NewGraphService(dao, bsSvc, bdSvc),
	})
	require.NoError(t, err)
	return handler
}

func do(t *testing.T, h http.Handler, req *http.Request) (int, envelope) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func upload(t *testing.T, files map[string][]byte, order ...string) *http.Request {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, name := range order {
		part, err := mw.CreateFormFile(forms.UploadsField, name)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/bindata", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func saveStruct(label string, rows ...forms.BinFieldRow) url.Values {
	values := forms.EncodeBinFieldRows(rows)
	values.Set("label", label)
	return values
}

func TestSwaggerJSON(t *testing.T) {
	h := newTestAPI(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/graph"`)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestAPI(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bindata", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormsetActions(t *testing.T) {
	h := newTestAPI(t)

	status, env := do(t, h, httptest.NewRequest(http.MethodGet, "/binfields/formset", nil))
	require.Equal(t, http.StatusOK, status)
	var data struct {
		Rows   []forms.BinFieldRow `json:"rows"`
		Errors []string            `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []forms.BinFieldRow{forms.BlankBinFieldRow()}, data.Rows)

	values := forms.EncodeBinFieldRows([]forms.BinFieldRow{{Label: "a", Bits: 8, TfCoef1: 1}, {Label: "b", Bits: 8, TfCoef1: 1}})
	status, env = do(t, h, postForm("/binfields/formset?action=append", values))
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Rows, 3)

	values.Set("form-0-delete", "on")
	status, env = do(t, h, postForm("/binfields/formset?action=delete", values))
	require.Equal(t, http.StatusOK, status)
	data.Rows = nil
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "b", data.Rows[0].Label)

	status, _ = do(t, h, postForm("/binfields/formset?action=bogus", values))
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, h, postForm("/binfields/formset?action=append", url.Values{}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int64(400), env.Code)
}

func TestBinStructLifecycle(t *testing.T) {
	h := newTestAPI(t)

	status, env := do(t, h, postForm("/binstructs", saveStruct("S", forms.BinFieldRow{Label: "a", Bits: 4, TfCoef1: 1})))
	require.Equal(t, http.StatusBadRequest, status)
	var saved struct {
		ID     int64    `json:"id"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Len(t, saved.Errors, 1)
	assert.Contains(t, saved.Errors[0], "multiple of 8")

	status, env = do(t, h, postForm("/binstructs", saveStruct("S", forms.BinFieldRow{Label: "a", Bits: 16, TfCoef1: 1})))
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.NotZero(t, saved.ID)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/binstructs/%d/binfields", saved.ID), nil))
	require.Equal(t, http.StatusOK, status)
	var rows struct {
		Rows []forms.BinFieldRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows.Rows, 1)
	assert.Equal(t, 16, rows.Rows[0].Bits)

	status, env = do(t, h, postForm(fmt.Sprintf("/binstructs/%d", saved.ID), saveStruct("S2", rows.Rows[0])))
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, "/binstructs", nil))
	require.Equal(t, http.StatusOK, status)
	var structs []struct {
		ID    int64  `json:"id"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &structs))
	require.Len(t, structs, 1)
	assert.Equal(t, "S2", structs[0].Label)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/selectors/binstructs/%d/binfields?num=2", saved.ID), nil))
	require.Equal(t, http.StatusOK, status)
	var sel struct {
		Selectors []forms.ChoiceForm `json:"selectors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sel))
	require.Len(t, sel.Selectors, 2)
	assert.Len(t, sel.Selectors[0].Choices, 2)

	status, _ = do(t, h, postForm("/binstructs/delete", url.Values{
		"form-TOTAL_FORMS": {"1"},
		"form-0-id":        {fmt.Sprint(saved.ID)},
		"form-0-DELETE":    {"on"},
	}))
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/binstructs/%d/binfields", saved.ID), nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int64(404), env.Code)
}

func TestUploadAndGraph(t *testing.T) {
	h := newTestAPI(t)

	status, env := do(t, h, upload(t, map[string][]byte{"empty.bin": {}, "full.bin": {1}}, "full.bin", "empty.bin"))
	require.Equal(t, http.StatusBadRequest, status)
	var msgs struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs.Errors, 1)

	status, _ = do(t, h, upload(t, map[string][]byte{"d.bin": {10, 20, 30}}, "d.bin"))
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, "/bindata", nil))
	require.Equal(t, http.StatusOK, status)
	var bds []struct {
		ID    int64  `json:"id"`
		Fname string `json:"fname"`
		Size  int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &bds))
	require.Len(t, bds, 1)
	assert.Equal(t, int64(3), bds[0].Size)

	status, env = do(t, h, postForm("/binstructs", saveStruct("byte", forms.BinFieldRow{Label: "v", Bits: 8, TfCoef1: 1})))
	require.Equal(t, http.StatusOK, status)
	var saved struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/selectors/binstructs/%d/binfields?num=1", saved.ID), nil))
	require.Equal(t, http.StatusOK, status)
	var sel struct {
		Selectors []forms.ChoiceForm `json:"selectors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sel))
	bfID := sel.Selectors[0].Choices[1].Value

	target := fmt.Sprintf("/graph?bd=%d&bs=%d&graph=%s&bf=index&bf=%s", bds[0].ID, saved.ID, forms.GraphLine, bfID)
	status, env = do(t, h, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, status, string(env.Data))
	var graph struct {
		RecordCount int `json:"record_count"`
		Series      []struct {
			Label  string    `json:"label"`
			Values []float64 `json:"values"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &graph))
	assert.Equal(t, 3, graph.RecordCount)
	require.Len(t, graph.Series, 2)
	assert.Equal(t, "v", graph.Series[1].Label)
	assert.Equal(t, []float64{10, 20, 30}, graph.Series[1].Values)

	status, _ = do(t, h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/graph?bd=%d&bs=%d&graph=%s&bf=index", bds[0].ID, saved.ID, forms.GraphLine), nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, h, httptest.NewRequest(http.MethodGet, target+"&width=NaN", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int64(400), env.Code)

	status, _ = do(t, h, httptest.NewRequest(http.MethodGet, "/graph?bd=x&bs=1", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterOperationsMatchesDocument(t *testing.T) {
	doc, err := loads.Analyzed(SwaggerJSON, "")
	require.NoError(t, err)
	byID := operationHandlers(&Services{})

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, registerOperations(mux.NewRouter(), doc, byID))

	missing := make(map[string]http.Handler, len(byID))
	for id, h := range byID {
		missing[id] = h
	}
	delete(missing, "graphSeries")
	err = registerOperations(mux.NewRouter(), doc, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphSeries")

	byID["dropTables"] = ok
	err = registerOperations(mux.NewRouter(), doc, byID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropTables")
}

func TestRouteTemplateNumericIDs(t *testing.T) {
	doc, err := loads.Analyzed(SwaggerJSON, "")
	require.NoError(t, err)
	_, _, op, found := doc.Analyzer.OperationForName("updateBinStruct")
	require.True(t, found)
	assert.Equal(t, "/binstructs/{id:[0-9]+}", routeTemplate("/binstructs/{id}", op))
}
