package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Care Plan Tracker API",
        "description": "Action plans for primary-care teams: history, dashboards, exports and option management",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Delegated sign-up, sign-in and sign-out"},
        {"name": "Profile", "description": "Caller profile and privilege level"},
        {"name": "Plans", "description": "Action plan CRUD, history and exports"},
        {"name": "Dashboard", "description": "Aggregated indicators"},
        {"name": "Options", "description": "Controlled vocabularies"},
        {"name": "Observability", "description": "Metrics and probes"}
    ],
    "parameters": {
        "status": {"name": "status", "in": "query", "type": "string", "description": "PLANEJADO, EM ANDAMENTO, CONCLUÍDO, SUSPENSO or ANY"},
        "axis": {"name": "axis", "in": "query", "type": "string"},
        "careLine": {"name": "care_line", "in": "query", "type": "string"},
        "supporter": {"name": "supporter", "in": "query", "type": "string"},
        "startDate": {"name": "start_date", "in": "query", "type": "string", "format": "date"},
        "endDate": {"name": "end_date", "in": "query", "type": "string", "format": "date"},
        "search": {"name": "search", "in": "query", "type": "string"},
        "optionType": {"name": "type", "in": "path", "required": true, "type": "string", "enum": ["eixo", "linha_cuidado", "apoiador", "categoria"]},
        "optionLabel": {"name": "label", "in": "path", "required": true, "type": "string"},
        "planID": {"name": "id", "in": "path", "required": true, "type": "string"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a professional",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session, null without one",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Current profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile/role": {
            "put": {
                "tags": ["Profile"],
                "summary": "Change privilege level",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Invalid code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "Filtered, paginated plan history",
                "parameters": [
                    {"$ref": "#/parameters/status"},
                    {"$ref": "#/parameters/axis"},
                    {"$ref": "#/parameters/careLine"},
                    {"$ref": "#/parameters/supporter"},
                    {"$ref": "#/parameters/startDate"},
                    {"$ref": "#/parameters/endDate"},
                    {"$ref": "#/parameters/search"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer", "enum": [5, 10, 20, 50]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Plans"],
                "summary": "Create plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/export": {
            "get": {
                "tags": ["Plans"],
                "summary": "Export the filtered history",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]},
                    {"name": "orientation", "in": "query", "type": "string", "enum": ["portrait", "landscape"]},
                    {"$ref": "#/parameters/status"},
                    {"$ref": "#/parameters/axis"},
                    {"$ref": "#/parameters/careLine"},
                    {"$ref": "#/parameters/supporter"},
                    {"$ref": "#/parameters/startDate"},
                    {"$ref": "#/parameters/endDate"},
                    {"$ref": "#/parameters/search"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/plans/{id}": {
            "get": {
                "tags": ["Plans"],
                "summary": "Get plan",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/planID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Plans"],
                "summary": "Update plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/planID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not owner", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Plans"],
                "summary": "Delete plan",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/planID"}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary",
                "parameters": [{"$ref": "#/parameters/careLine"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/aggregate": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Group plans by one dimension",
                "parameters": [
                    {"name": "dimension", "in": "query", "required": true, "type": "string", "enum": ["status", "axis", "care_line", "supporter", "category", "month"]},
                    {"$ref": "#/parameters/status"},
                    {"$ref": "#/parameters/axis"},
                    {"$ref": "#/parameters/careLine"},
                    {"$ref": "#/parameters/supporter"},
                    {"$ref": "#/parameters/startDate"},
                    {"$ref": "#/parameters/endDate"},
                    {"$ref": "#/parameters/search"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/options": {
            "get": {
                "tags": ["Options"],
                "summary": "List options grouped by type",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Options"],
                "summary": "Add option",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddOptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "DUPLICATE_LABEL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/options/{type}/{label}": {
            "put": {
                "tags": ["Options"],
                "summary": "Rename option and rewrite referencing plans",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/optionType"},
                    {"$ref": "#/parameters/optionLabel"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenameOptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "DUPLICATE_LABEL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "PARTIAL_CASCADE_FAILURE with the cascade report in error.details", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Options"],
                "summary": "Delete option",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/optionType"},
                    {"$ref": "#/parameters/optionLabel"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "OPTION_IN_USE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Observability"],
                "summary": "Metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignUpRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"},
                "unit": {"type": "string"},
                "team": {"type": "string"},
                "micro_area": {"type": "string"}
            }
        },
        "SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ChangeRoleRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string"}
            }
        },
        "PlanRequest": {
            "type": "object",
            "required": ["axis", "care_line", "status", "supporters", "summary", "goal", "evaluation_frequency", "start_date"],
            "properties": {
                "axis": {"type": "string"},
                "care_line": {"type": "string"},
                "status": {"type": "string"},
                "supporters": {"type": "array", "items": {"type": "string"}},
                "categories": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "goal": {"type": "string"},
                "evaluation_frequency": {"type": "string"},
                "cycle": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "notes": {"type": "string"}
            }
        },
        "AddOptionRequest": {
            "type": "object",
            "required": ["type", "label"],
            "properties": {
                "type": {"type": "string", "enum": ["eixo", "linha_cuidado", "apoiador", "categoria"]},
                "label": {"type": "string"}
            }
        },
        "RenameOptionRequest": {
            "type": "object",
            "required": ["label"],
            "properties": {
                "label": {"type": "string"},
                "retry": {"type": "boolean", "description": "Only rewrite plans still carrying the old label"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "window": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
