package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CSE-AIML ERP Read API",
        "description": "Read-model API over the academic record store",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Collections", "description": "Paginated, populated collection reads"},
        {"name": "Dashboard", "description": "Headline counts"},
        {"name": "Timetable", "description": "Schedule queries"},
        {"name": "Reports", "description": "Roster exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Record store unreachable"}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Counts across the record store",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "503": {"description": "Record store unreachable", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/collections": {
            "get": {
                "tags": ["Collections"],
                "summary": "Enumerate stored collections",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/data/{collection}": {
            "get": {
                "tags": ["Collections"],
                "summary": "List one collection",
                "parameters": [
                    {"name": "collection", "in": "path", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "skip", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Unknown collection", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/{collection}": {
            "get": {
                "tags": ["Collections"],
                "summary": "List one collection (legacy path)",
                "parameters": [
                    {"name": "collection", "in": "path", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "skip", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Unknown collection", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/{collection}/{id}": {
            "get": {
                "tags": ["Collections"],
                "summary": "Fetch one record",
                "parameters": [
                    {"name": "collection", "in": "path", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/week": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Full weekly timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/day/{day}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "One weekday's timetable",
                "parameters": [
                    {"name": "day", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "No timetable for day", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/faculty/{id}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "One faculty member's weekly slots",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Faculty not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/rooms/availability": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Room bookings and free periods",
                "parameters": [
                    {"name": "room", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "startTime", "in": "query", "type": "string"},
                    {"name": "endTime", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Invalid window", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/free-periods": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Unoccupied periods",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "facultyId", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/timetable/conflicts": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Double-booked rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/reports/{collection}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a roster export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "collection", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "Unknown collection", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "count": {"type": "integer"},
                "limit": {"type": "integer"},
                "skip": {"type": "integer"},
                "error": {"type": "string"},
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
