// Package docs registra la especificación OpenAPI que sirve /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o internal/docs
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
        "/dogs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Listar perros del catálogo",
                "parameters": [
                    {"type": "integer", "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "Tamaño de página (default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dogs.Response"}}},
                    "400": {"description": "skip/limit inválidos", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Crear perro",
                "parameters": [
                    {"description": "Perro", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dogs.createDogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dogs.Response"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}}
                }
            }
        },
        "/dogs/{dogID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Obtener perro",
                "parameters": [{"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.Response"}},
                    "404": {"description": "dog not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Actualizar parcialmente un perro",
                "parameters": [
                    {"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true},
                    {"description": "Campos a cambiar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dogs.updateDogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.Response"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "404": {"description": "dog not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["dogs"],
                "summary": "Borrar perro",
                "parameters": [{"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "dog not found", "schema": {"type": "string"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Listar usuarios",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/users.userResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Crear usuario",
                "parameters": [
                    {"description": "username y email", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.createUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "409": {"description": "username already taken / email already registered", "schema": {"type": "string"}}
                }
            }
        },
        "/users/{userID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Obtener usuario",
                "parameters": [{"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "404": {"description": "user not found", "schema": {"type": "string"}}
                }
            }
        },
        "/swipe/{userID}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["swipe"],
                "summary": "Registrar swipe",
                "parameters": [
                    {"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true},
                    {"description": "dog_id y direction (left|right)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/swipes.swipeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/swipes.swipeResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "user not found / dog not found", "schema": {"type": "string"}},
                    "409": {"description": "already swiped on this dog", "schema": {"type": "string"}}
                }
            }
        },
        "/swipe/{userID}/cards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["swipe"],
                "summary": "Próximas cards para swipear",
                "parameters": [
                    {"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true},
                    {"type": "integer", "description": "Máximo de cards (default 10, máx 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/swipes.cardResponse"}}},
                    "400": {"description": "limit inválido", "schema": {"type": "string"}},
                    "404": {"description": "user not found", "schema": {"type": "string"}}
                }
            }
        },
        "/swipe/{userID}/recommendations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["swipe"],
                "summary": "Recomendaciones personalizadas",
                "parameters": [
                    {"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true},
                    {"type": "integer", "description": "Máximo de perros (default 10, máx 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/swipes.recommendationResponse"}},
                    "400": {"description": "limit inválido", "schema": {"type": "string"}},
                    "404": {"description": "user not found", "schema": {"type": "string"}}
                }
            }
        },
        "/swipe/{userID}/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["swipe"],
                "summary": "Perfil de preferencias derivado",
                "parameters": [{"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/swipes.preferencesResponse"}},
                    "404": {"description": "user not found / sin preferencias todavía", "schema": {"type": "string"}}
                }
            }
        },
        "/swipe/{userID}/reset": {
            "delete": {
                "tags": ["swipe"],
                "summary": "Reiniciar historial",
                "parameters": [{"type": "string", "description": "ID del usuario", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "user not found", "schema": {"type": "string"}}
                }
            }
        },
        "/rescue/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["rescue"],
                "summary": "Subir foto de un perro rescatado",
                "parameters": [
                    {"type": "file", "description": "Imagen (jpeg, png o webp; máx 10MB)", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "description": "Nombre", "name": "name", "in": "formData"},
                    {"type": "number", "description": "Edad en años", "name": "age_years", "in": "formData"},
                    {"type": "number", "description": "Peso en lbs", "name": "weight_lbs", "in": "formData"},
                    {"type": "string", "description": "male | female", "name": "sex", "in": "formData"},
                    {"type": "boolean", "description": "Rescatado (default true)", "name": "is_rescue", "in": "formData"},
                    {"type": "boolean", "description": "Convive con gatos", "name": "good_with_cats", "in": "formData"},
                    {"type": "boolean", "description": "Convive con chicos", "name": "good_with_kids", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/rescue.uploadResponse"}},
                    "400": {"description": "imagen inválida", "schema": {"type": "string"}},
                    "502": {"description": "análisis no disponible", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "dogs.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "size": {"type": "string", "enum": ["small", "medium", "large", "extra_large"]},
                "age_years": {"type": "number"},
                "weight_lbs": {"type": "number"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "coat_length": {"type": "string", "enum": ["short", "medium", "long", "wire", "hairless"]},
                "is_rescue": {"type": "boolean"},
                "good_with_cats": {"type": "boolean"},
                "good_with_kids": {"type": "boolean"},
                "image_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dogs.createDogRequest": {
            "type": "object",
            "required": ["name", "breed", "size", "age_years", "weight_lbs", "color", "sex", "coat_length"],
            "properties": {
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "size": {"type": "string", "enum": ["small", "medium", "large", "extra_large"]},
                "age_years": {"type": "number"},
                "weight_lbs": {"type": "number"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "coat_length": {"type": "string", "enum": ["short", "medium", "long", "wire", "hairless"]},
                "is_rescue": {"type": "boolean"},
                "good_with_cats": {"type": "boolean"},
                "good_with_kids": {"type": "boolean"},
                "image_url": {"type": "string"}
            }
        },
        "dogs.updateDogRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "size": {"type": "string"},
                "age_years": {"type": "number"},
                "weight_lbs": {"type": "number"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "sex": {"type": "string"},
                "coat_length": {"type": "string"},
                "is_rescue": {"type": "boolean"},
                "good_with_cats": {"type": "boolean"},
                "good_with_kids": {"type": "boolean"},
                "image_url": {"type": "string"}
            }
        },
        "users.createUserRequest": {
            "type": "object",
            "required": ["username", "email"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "users.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "swipes.swipeRequest": {
            "type": "object",
            "required": ["dog_id", "direction"],
            "properties": {
                "dog_id": {"type": "string"},
                "direction": {"type": "string", "enum": ["left", "right"]}
            }
        },
        "swipes.swipeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "dog_id": {"type": "string"},
                "direction": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "swipes.cardResponse": {
            "type": "object",
            "properties": {
                "dog": {"$ref": "#/definitions/dogs.Response"},
                "compatibility_score": {"type": "number"}
            }
        },
        "swipes.recommendationResponse": {
            "type": "object",
            "properties": {
                "dogs": {"type": "array", "items": {"$ref": "#/definitions/dogs.Response"}},
                "message": {"type": "string"}
            }
        },
        "swipes.preferencesResponse": {
            "type": "object",
            "properties": {
                "preferred_size": {"type": "string"},
                "preferred_breed": {"type": "string"},
                "preferred_coat_length": {"type": "string"},
                "min_age": {"type": "number"},
                "max_age": {"type": "number"},
                "min_weight": {"type": "number"},
                "max_weight": {"type": "number"},
                "prefers_good_with_cats": {"type": "boolean"},
                "prefers_good_with_kids": {"type": "boolean"},
                "prefers_rescue": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "rescue.visionAnalysisResponse": {
            "type": "object",
            "properties": {
                "breed": {"type": "string"},
                "size": {"type": "string"},
                "color": {"type": "string"},
                "coat_length": {"type": "string"},
                "description": {"type": "string"},
                "confidence": {"type": "number"}
            }
        },
        "rescue.uploadResponse": {
            "type": "object",
            "properties": {
                "dog": {"$ref": "#/definitions/dogs.Response"},
                "vision_analysis": {"$ref": "#/definitions/rescue.visionAnalysisResponse"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Tingrrr API",
	Description:      "Swipe de perros en adopción con recomendaciones por compatibilidad.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
