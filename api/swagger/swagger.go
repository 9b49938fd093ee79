package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduDesk API",
        "description": "School administration dashboard backend with the substitute-teacher matching engine",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Substitutions", "description": "Substitute-teacher matching and booking"},
        {"name": "Schedule", "description": "Derived day schedules for calendar display"},
        {"name": "Availability", "description": "Synthesized availability tables"},
        {"name": "Faculty", "description": "Roster management"},
        {"name": "Decisions", "description": "Recommendation audit trail"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/substitutions/generate": {
            "post": {
                "tags": ["Substitutions"],
                "summary": "Recommend a substitute for an absent faculty member",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/GenerateSubstitutionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Ranked decision with reasoning", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Absent faculty not found"},
                    "422": {"description": "No eligible candidates"}
                }
            }
        },
        "/api/v1/substitutions/commit": {
            "post": {
                "tags": ["Substitutions"],
                "summary": "Book an accepted recommendation",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CommitAssignmentRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "Committed"},
                    "409": {"description": "Candidate at weekly capacity"}
                }
            }
        },
        "/api/v1/substitutions/slip": {
            "post": {
                "tags": ["Substitutions"],
                "summary": "Render a substitution slip PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/api/v1/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Derived teaching slots for one date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "Schedule entries", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Day schedule as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/api/v1/availability/regenerate": {
            "post": {
                "tags": ["Availability"],
                "summary": "Synthesize a fresh availability table",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RegenerateAvailabilityRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "30-day availability table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Full faculty roster",
                "responses": {
                    "200": {"description": "Roster entries", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Faculty"],
                "summary": "Add a staff member to the roster",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateFacultyRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/faculty/{id}": {
            "get": {
                "tags": ["Faculty"],
                "summary": "One roster entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Roster entry", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Faculty not found"}
                }
            }
        },
        "/api/v1/faculty/reset-week": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Zero every weekly substitution counter",
                "responses": {
                    "204": {"description": "Counters reset"}
                }
            }
        },
        "/api/v1/decisions": {
            "get": {
                "tags": ["Decisions"],
                "summary": "Latest produced recommendations",
                "parameters": [
                    {"name": "limit", "in": "query", "required": false, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Decision log entries", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateSubstitutionRequest": {
            "type": "object",
            "required": ["absentFacultyId", "date", "period"],
            "properties": {
                "absentFacultyId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "period": {"type": "integer", "minimum": 1, "maximum": 8}
            }
        },
        "CreateFacultyRequest": {
            "type": "object",
            "required": ["name", "subject", "maxSubstitutionsPerWeek"],
            "properties": {
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "specialization": {"type": "string"},
                "classes": {"type": "array", "items": {"type": "string"}},
                "experience": {"type": "integer", "minimum": 0},
                "qualifications": {"type": "array", "items": {"type": "string"}},
                "preferredPeriods": {"type": "array", "items": {"type": "integer", "minimum": 1, "maximum": 8}},
                "maxSubstitutionsPerWeek": {"type": "integer", "minimum": 1}
            }
        },
        "CommitAssignmentRequest": {
            "type": "object",
            "required": ["facultyId"],
            "properties": {
                "facultyId": {"type": "string"}
            }
        },
        "RegenerateAvailabilityRequest": {
            "type": "object",
            "required": ["rate"],
            "properties": {
                "rate": {"type": "number", "minimum": 0, "maximum": 1, "exclusiveMinimum": true, "exclusiveMaximum": true}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
