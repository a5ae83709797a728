// Package docs содержит описание HTTP API в формате swag.
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Список категорий",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.CategoriesView"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Создание категории",
                "description": "Создает категорию. Описание сохраняется как передано, пустая строка тоже.",
                "parameters": [
                    {"type": "string", "description": "Ключ идемпотентности", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Категория", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createCategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/usecase.CategoriesView"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Запрос с этим ключом ещё выполняется", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Удаление категории",
                "parameters": [
                    {"type": "integer", "description": "ID категории", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.CategoriesView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Категория не найдена", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Категория используется продуктами", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Таблица склада",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.ProductsView"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Добавление продукта",
                "parameters": [
                    {"type": "string", "description": "Ключ идемпотентности", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Продукт", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/usecase.ProductsView"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Категория не найдена", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Запрос с этим ключом ещё выполняется", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products/form": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Данные формы добавления продукта",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.ProductFormView"}}
                }
            }
        },
        "/products/delete-options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Варианты удаления продукта",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.DeleteOptionsView"}}
                }
            }
        },
        "/products/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Удаление продукта",
                "parameters": [
                    {"type": "integer", "description": "ID продукта", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Подтверждение удаления", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.ProductsView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Продукт не найден", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Сводка склада",
                "parameters": [
                    {"type": "integer", "description": "Размер топа (1..100)", "name": "top", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usecase.DashboardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/dashboard/reports": {
            "post": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Выгрузка отчёта",
                "parameters": [
                    {"type": "integer", "description": "Размер топа (1..100)", "name": "top", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/usecase.ReportRes"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Хранилище отчётов не настроено", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "http.createCategoryRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "http.createProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string", "example": "10.50"},
                "category_id": {"type": "integer"}
            }
        },
        "usecase.Notice": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "enum": ["success", "info", "warning", "error"]},
                "message": {"type": "string"}
            }
        },
        "usecase.CategoryInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "usecase.CategoriesView": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/usecase.CategoryInfo"}},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/usecase.Notice"}}
            }
        },
        "analytics.Row": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "category": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "analytics.CategoryTotal": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "quantity": {"type": "integer"},
                "value": {"type": "string"}
            }
        },
        "analytics.Summary": {
            "type": "object",
            "properties": {
                "total_value": {"type": "string"},
                "total_quantity": {"type": "integer"},
                "average_price": {"type": "string"},
                "by_category": {"type": "array", "items": {"$ref": "#/definitions/analytics.CategoryTotal"}},
                "top": {"type": "array", "items": {"$ref": "#/definitions/analytics.Row"}}
            }
        },
        "usecase.ProductsView": {
            "type": "object",
            "properties": {
                "rows": {"type": "array", "items": {"$ref": "#/definitions/analytics.Row"}},
                "total_quantity": {"type": "integer"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/usecase.Notice"}}
            }
        },
        "usecase.CategoryOption": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "usecase.ProductFormView": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/usecase.CategoryOption"}},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/usecase.Notice"}}
            }
        },
        "usecase.DeleteOption": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "usecase.DeleteOptionsView": {
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"$ref": "#/definitions/usecase.DeleteOption"}},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/usecase.Notice"}}
            }
        },
        "usecase.DashboardView": {
            "type": "object",
            "properties": {
                "summary": {"$ref": "#/definitions/analytics.Summary"},
                "product_count": {"type": "integer"},
                "none_label": {"type": "string"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/usecase.Notice"}}
            }
        },
        "usecase.ReportRes": {
            "type": "object",
            "properties": {
                "object_key": {"type": "string"},
                "url": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Stock Backend API",
	Description:      "Учёт категорий и продуктов склада, сводка и выгрузка отчётов.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
