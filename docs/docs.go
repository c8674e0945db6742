// Package docs registra la especificación OpenAPI de la API en swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Iniciar sesión",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/logout": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Cerrar sesión",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MessageResponse"
                        }
                    }
                }
            }
        },
        "/api/check": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Comprobar presencia de token",
                "description": "Solo verifica que el header Authorization no esté vacío.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CheckResponse"
                        }
                    }
                }
            }
        },
        "/api/calculator/forward": {
            "post": {
                "tags": [
                    "calculator"
                ],
                "summary": "Nuevo precio promedio tras una compra",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ForwardRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CalculationResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/calculator/reverse": {
            "post": {
                "tags": [
                    "calculator"
                ],
                "summary": "Cantidad a comprar para alcanzar un promedio objetivo",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReverseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CalculationResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/calculator/evaluate": {
            "post": {
                "tags": [
                    "calculator"
                ],
                "summary": "Valoración de una posición a precio actual",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.EvaluateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CalculationResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/calculator/report": {
            "post": {
                "tags": [
                    "calculator"
                ],
                "summary": "Comprobante PDF de un cálculo",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.CheckResponse": {
            "type": "object",
            "properties": {
                "authenticated": {
                    "type": "boolean"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "remember": {
                    "type": "boolean"
                }
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ForwardRequest": {
            "type": "object",
            "properties": {
                "old_price": {
                    "type": "string",
                    "example": "10000"
                },
                "old_quantity": {
                    "type": "string",
                    "example": "10000"
                },
                "new_price": {
                    "type": "string",
                    "example": "10000"
                },
                "new_quantity": {
                    "type": "string",
                    "example": "10000"
                }
            }
        },
        "dto.ReverseRequest": {
            "type": "object",
            "properties": {
                "current_avg": {
                    "type": "string",
                    "example": "10000"
                },
                "current_quantity": {
                    "type": "string",
                    "example": "10000"
                },
                "target_avg": {
                    "type": "string",
                    "example": "10000"
                },
                "buy_price": {
                    "type": "string",
                    "example": "10000"
                }
            }
        },
        "dto.EvaluateRequest": {
            "type": "object",
            "properties": {
                "avg_price": {
                    "type": "string",
                    "example": "10000"
                },
                "quantity": {
                    "type": "string",
                    "example": "10000"
                },
                "current_price": {
                    "type": "string",
                    "example": "10000"
                }
            }
        },
        "dto.ReportRequest": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string",
                    "enum": [
                        "forward",
                        "reverse",
                        "evaluate"
                    ]
                },
                "forward": {
                    "$ref": "#/definitions/dto.ForwardRequest"
                },
                "reverse": {
                    "$ref": "#/definitions/dto.ReverseRequest"
                },
                "evaluate": {
                    "$ref": "#/definitions/dto.EvaluateRequest"
                }
            }
        },
        "dto.Field": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                },
                "formatted": {
                    "type": "string",
                    "example": "180,000원"
                }
            }
        },
        "dto.CalculationResponse": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string"
                },
                "avg_price": {
                    "type": "string"
                },
                "total_quantity": {
                    "type": "string"
                },
                "total_amount": {
                    "type": "string"
                },
                "additional_quantity": {
                    "type": "string"
                },
                "additional_amount": {
                    "type": "string"
                },
                "total_investment": {
                    "type": "string"
                },
                "evaluation_amount": {
                    "type": "string"
                },
                "profit_loss": {
                    "type": "string"
                },
                "profit_loss_rate": {
                    "type": "string"
                },
                "inputs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.Field"
                    }
                },
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.Field"
                    }
                }
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

// SwaggerInfo información de la API exportada para poder modificarla en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Promedio API",
	Description:      "Calculadora de precio promedio de acciones y login.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
