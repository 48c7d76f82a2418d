package restapi

import (
	"encoding/json"
)

// SwaggerJSON is the OpenAPI document of the api, served at /swagger.json.
var SwaggerJSON json.RawMessage

func init() {
	SwaggerJSON = json.RawMessage([]byte(`{
  "consumes": [
    "application/x-www-form-urlencoded",
    "multipart/form-data"
  ],
  "produces": [
    "application/json"
  ],
  "schemes": [
    "http"
  ],
  "swagger": "2.0",
  "info": {
    "description": "Define binary record layouts and plot uploaded binary data with them.",
    "title": "binplot",
    "version": "1.0.0"
  },
  "basePath": "/",
  "paths": {
    "/binstructs": {
      "get": {
        "tags": ["binstruct"],
        "summary": "List bin structs",
        "operationId": "listBinStructs",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      },
      "post": {
        "tags": ["binstruct"],
        "summary": "Create a bin struct with its field formset",
        "operationId": "createBinStruct",
        "parameters": [
          {"type": "string", "name": "label", "in": "formData", "required": true},
          {"type": "integer", "name": "form-TOTAL_FORMS", "in": "formData", "required": true}
        ],
        "responses": {
          "200": {"description": "saved", "schema": {"$ref": "#/definitions/Response"}},
          "400": {"description": "validation messages", "schema": {"$ref": "#/definitions/Response"}}
        }
      }
    },
    "/binstructs/delete": {
      "post": {
        "tags": ["binstruct"],
        "summary": "Delete the bin structs flagged DELETE",
        "operationId": "deleteBinStructs",
        "parameters": [
          {"type": "integer", "name": "form-TOTAL_FORMS", "in": "formData", "required": true}
        ],
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/binstructs/{id}": {
      "post": {
        "tags": ["binstruct"],
        "summary": "Update a bin struct with its field formset",
        "operationId": "updateBinStruct",
        "parameters": [
          {"type": "integer", "format": "int64", "name": "id", "in": "path", "required": true},
          {"type": "string", "name": "label", "in": "formData", "required": true},
          {"type": "integer", "name": "form-TOTAL_FORMS", "in": "formData", "required": true}
        ],
        "responses": {
          "200": {"description": "saved", "schema": {"$ref": "#/definitions/Response"}},
          "400": {"description": "validation messages", "schema": {"$ref": "#/definitions/Response"}},
          "404": {"description": "unknown struct", "schema": {"$ref": "#/definitions/Response"}}
        }
      }
    },
    "/binstructs/{id}/binfields": {
      "get": {
        "tags": ["binfield"],
        "summary": "Persisted field rows of a bin struct",
        "operationId": "reconcileFromStruct",
        "parameters": [
          {"type": "integer", "format": "int64", "name": "id", "in": "path", "required": true}
        ],
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/binfields/formset": {
      "get": {
        "tags": ["binfield"],
        "summary": "A formset with one blank row",
        "operationId": "emptyFormset",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      },
      "post": {
        "tags": ["binfield"],
        "summary": "Rows to render after append, delete or re-render",
        "operationId": "reconcileFormset",
        "parameters": [
          {"type": "string", "enum": ["append", "delete", "raw"], "name": "action", "in": "query"},
          {"type": "integer", "name": "form-TOTAL_FORMS", "in": "formData", "required": true}
        ],
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/bindata": {
      "get": {
        "tags": ["bindata"],
        "summary": "List uploaded bin data",
        "operationId": "listBinData",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      },
      "post": {
        "consumes": ["multipart/form-data"],
        "tags": ["bindata"],
        "summary": "Upload bin data files",
        "operationId": "uploadBinData",
        "parameters": [
          {"type": "file", "name": "uploads", "in": "formData", "required": true}
        ],
        "responses": {
          "200": {"description": "stored", "schema": {"$ref": "#/definitions/Response"}},
          "400": {"description": "validation messages", "schema": {"$ref": "#/definitions/Response"}}
        }
      }
    },
    "/bindata/delete": {
      "post": {
        "tags": ["bindata"],
        "summary": "Delete the bin data flagged DELETE",
        "operationId": "deleteBinData",
        "parameters": [
          {"type": "integer", "name": "form-TOTAL_FORMS", "in": "formData", "required": true}
        ],
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/selectors/graphs": {
      "get": {
        "tags": ["selector"],
        "operationId": "selectGraph",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/selectors/binstructs": {
      "get": {
        "tags": ["selector"],
        "operationId": "selectBinStruct",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/selectors/bindata": {
      "get": {
        "tags": ["selector"],
        "operationId": "selectBinData",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/selectors/binstructs/{id}/binfields": {
      "get": {
        "tags": ["selector"],
        "operationId": "selectBinFields",
        "parameters": [
          {"type": "integer", "format": "int64", "name": "id", "in": "path", "required": true},
          {"type": "integer", "name": "num", "in": "query"},
          {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "initial", "in": "query"}
        ],
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}}}
      }
    },
    "/graph": {
      "get": {
        "tags": ["graph"],
        "summary": "Series of the selected fields decoded from bin data",
        "operationId": "graphSeries",
        "parameters": [
          {"type": "integer", "format": "int64", "name": "bd", "in": "query", "required": true},
          {"type": "integer", "format": "int64", "name": "bs", "in": "query", "required": true},
          {"type": "string", "name": "graph", "in": "query", "required": true},
          {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "bf", "in": "query", "required": true},
          {"type": "number", "name": "width", "in": "query"},
          {"type": "number", "name": "height", "in": "query"}
        ],
        "responses": {
          "200": {"description": "ok", "schema": {"$ref": "#/definitions/Response"}},
          "400": {"description": "validation messages", "schema": {"$ref": "#/definitions/Response"}}
        }
      }
    }
  },
  "definitions": {
    "Response": {
      "type": "object",
      "properties": {
        "code": {"type": "integer", "format": "int64", "x-omitempty": false},
        "message": {"type": "string"},
        "data": {"type": "object"}
      }
    }
  }
}`))
}
