// Package docs registers the swagger document served under /swagger.
// Keep it in sync with the handler annotations.
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
        "/execute": {
            "post": {
                "description": "Verifies the signature over input_hash with the gateway key, then runs create_proposal or create_vote.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Applies a gateway-signed instruction",
                "parameters": [
                    {
                        "description": "Signed envelope",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.executeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ExecuteResult"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/polls/count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Returns the number of polls",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PollCountResponse"}}
                }
            }
        },
        "/polls/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Returns a poll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PollResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/polls/{id}/results": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Returns the tally of a poll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ResultsResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/polls/{id}/vote-count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Returns the number of votes cast on a poll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.VoteCountResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/polls/{id}/voters/{voterID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Reports whether a voter voted on a poll",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "voterID", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HasVotedResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/query": {
            "post": {
                "description": "Body is one of get_poll_count, get_vote_count, get_results, get_voted, get_poll.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Runs a read-only ledger query",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/gateway": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Returns the configured gateway",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "domain.PollCountResponse": {
            "type": "object",
            "properties": {"poll_count": {"type": "integer"}}
        },
        "domain.VoteCountResponse": {
            "type": "object",
            "properties": {"vote_count": {"type": "integer"}}
        },
        "domain.HasVotedResponse": {
            "type": "object",
            "properties": {"has_voted": {"type": "boolean"}}
        },
        "domain.ResultsResponse": {
            "type": "object",
            "properties": {"results": {"type": "object", "additionalProperties": {"type": "integer"}}}
        },
        "domain.Poll": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "uri": {"type": "string"},
                "created_at": {"type": "string"},
                "validity": {"type": "integer"},
                "tally": {"type": "object", "additionalProperties": {"type": "integer"}},
                "voted": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "vote_count": {"type": "integer"}
            }
        },
        "domain.PollResponse": {
            "type": "object",
            "properties": {"poll": {"$ref": "#/definitions/domain.Poll"}}
        },
        "domain.Attribute": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "domain.ExecuteResult": {
            "type": "object",
            "properties": {
                "attributes": {"type": "array", "items": {"$ref": "#/definitions/domain.Attribute"}},
                "instruction_id": {"type": "string"}
            }
        },
        "http.executeRequest": {
            "type": "object",
            "properties": {
                "handle": {"type": "string"},
                "input_hash": {"type": "string"},
                "input_values": {"type": "string"},
                "signature": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Pollgate API",
	Description:      "Gateway-authorized poll and vote ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
