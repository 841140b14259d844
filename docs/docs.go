// Package docs registers the OpenAPI description served by the swagger UI.
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
        "/matches/{id}/live": {
            "get": {
                "summary": "Live feed",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "503": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches": {
            "post": {
                "summary": "Create a match",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "response"
                    },
                    "400": {
                        "description": "response"
                    },
                    "500": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "summary": "List matches",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    }
                }
            }
        },
        "/matches/{id}": {
            "get": {
                "summary": "Get a match",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "404": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/summary": {
            "get": {
                "summary": "Finished match summary",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "404": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/balls": {
            "post": {
                "summary": "Record a delivery",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "400": {
                        "description": "response"
                    },
                    "403": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/striker": {
            "post": {
                "summary": "Set opening striker",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/non-striker": {
            "post": {
                "summary": "Set opening non-striker",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/new-batter": {
            "post": {
                "summary": "Bring in a new batter",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/bowler": {
            "post": {
                "summary": "Set bowler",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/change-bowler": {
            "post": {
                "summary": "Correct the current bowler",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/swap": {
            "post": {
                "summary": "Swap strike",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/replacement": {
            "post": {
                "summary": "Replace a player",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/undo": {
            "post": {
                "summary": "Undo",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/next-innings": {
            "post": {
                "summary": "Start the second innings",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/bowlers": {
            "get": {
                "summary": "Bowler picker",
                "tags": [
                    "Scoring"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/dls/resources": {
            "get": {
                "summary": "DLS resources",
                "tags": [
                    "DLS"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/dls": {
            "post": {
                "summary": "Apply a DLS revision",
                "tags": [
                    "DLS"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "400": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/mvp": {
            "get": {
                "summary": "MVP ranking",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/finish": {
            "post": {
                "summary": "Finish a match",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "400": {
                        "description": "response"
                    },
                    "409": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/matches/{id}/abandon": {
            "post": {
                "summary": "Abandon a match",
                "tags": [
                    "Matches"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/{id}/transfer": {
            "post": {
                "summary": "Issue a transfer code",
                "tags": [
                    "Handoff"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "response"
                    }
                },
                "security": [
                    {
                        "ScorerToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Match ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/matches/transfer/claim": {
            "post": {
                "summary": "Redeem a transfer code",
                "tags": [
                    "Handoff"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "response"
                    },
                    "400": {
                        "description": "response"
                    },
                    "410": {
                        "description": "response"
                    },
                    "429": {
                        "description": "response"
                    }
                },
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        }
    },
    "securityDefinitions": {
        "ScorerToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8088",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Crease scoring API",
	Description:      "Ball-by-ball scoring for limited-overs cricket.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
