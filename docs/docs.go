// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/refresh": {
            "post": {"tags": ["auth"], "summary": "Renovar access token", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}, "503": {"description": "Service Unavailable"}}}
        },
        "/cow": {
            "get": {"tags": ["cows"], "summary": "Listar vacas", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "query"},
                    {"enum": ["healthy", "sick", "pregnant", "quarantine", "sold", "dead"], "type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "birth_date", "in": "query"},
                    {"enum": ["M", "F"], "type": "string", "name": "gender", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}},
            "post": {"tags": ["cows"], "summary": "Registrar vaca", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}}
        },
        "/cow/statuses": {
            "get": {"tags": ["cows"], "summary": "Estados con etiqueta", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/cow/{cowID}": {
            "get": {"tags": ["cows"], "summary": "Obtener vaca", "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["cows"], "summary": "Reemplazar vaca", "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["cows"], "summary": "Actualizar vaca (parcial)", "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["cows"], "summary": "Eliminar vaca", "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/cow/{cowID}/photo": {
            "get": {"tags": ["cows"], "summary": "Descargar foto", "produces": ["image/*"], "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "501": {"description": "Not Implemented"}}},
            "put": {"tags": ["cows"], "summary": "Subir foto", "consumes": ["multipart/form-data", "image/*"], "parameters": [{"type": "string", "name": "cowID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "501": {"description": "Not Implemented"}}}
        },
        "/worker": {
            "get": {"tags": ["workers"], "summary": "Listar pekerja", "parameters": [{"type": "string", "name": "name", "in": "query"}, {"enum": ["M", "F"], "type": "string", "name": "gender", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["workers"], "summary": "Registrar pekerja", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/worker/{workerID}": {
            "get": {"tags": ["workers"], "summary": "Obtener pekerja", "parameters": [{"type": "string", "name": "workerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["workers"], "summary": "Reemplazar pekerja", "parameters": [{"type": "string", "name": "workerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["workers"], "summary": "Actualizar pekerja (parcial)", "parameters": [{"type": "string", "name": "workerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["workers"], "summary": "Eliminar pekerja", "parameters": [{"type": "string", "name": "workerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/keuangan": {
            "get": {"tags": ["transactions"], "summary": "Listar transacciones", "parameters": [{"enum": ["income", "expense"], "type": "string", "name": "type", "in": "query"}, {"type": "string", "name": "category", "in": "query"}, {"type": "string", "name": "transaction_date", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["transactions"], "summary": "Registrar transacción", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/keuangan/summary": {
            "get": {"tags": ["transactions"], "summary": "Totales del panel de finanzas", "responses": {"200": {"description": "OK"}}}
        },
        "/keuangan/{transactionID}": {
            "get": {"tags": ["transactions"], "summary": "Obtener transacción", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["transactions"], "summary": "Reemplazar transacción", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["transactions"], "summary": "Actualizar transacción (parcial)", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["transactions"], "summary": "Eliminar transacción", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/profile": {
            "post": {"tags": ["profiles"], "summary": "Crear perfil", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/profile/fields": {
            "get": {"tags": ["profiles"], "summary": "Campos de perfil permitidos", "responses": {"200": {"description": "OK"}}}
        },
        "/profile/me": {
            "get": {"tags": ["profiles"], "summary": "Perfil del usuario actual", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/profile/{profileID}": {
            "get": {"tags": ["profiles"], "summary": "Obtener perfil", "parameters": [{"type": "string", "name": "profileID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["profiles"], "summary": "Actualizar perfil", "parameters": [{"type": "string", "name": "profileID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ternakku API",
	Description:      "Inventario de ganado, pekerja, keuangan y perfiles de la granja.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
