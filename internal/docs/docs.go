// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs --parseDependency
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
        "/search": {
            "get": {
                "description": "Semantic search over companies; results are normalized view models",
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search companies",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "description": "Maximum results (1-50, default 5)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Matching companies", "schema": {"type": "array", "items": {"$ref": "#/definitions/company.CompanyViewModel"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Search backend unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/advanced-search": {
            "get": {
                "description": "Filter companies by field; only records matching every provided filter are returned",
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Advanced company search",
                "parameters": [
                    {"type": "string", "description": "Name (partial match)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Exact sector", "name": "sector", "in": "query"},
                    {"type": "string", "description": "Minimum valuation, e.g. $500M; ignored without an amount", "name": "valuation", "in": "query"},
                    {"type": "string", "description": "Website (partial match)", "name": "website", "in": "query"},
                    {"type": "string", "description": "Investors (partial match)", "name": "investors", "in": "query"},
                    {"type": "string", "description": "Minimum total funding, e.g. 1.2B; ignored without an amount", "name": "total_funding", "in": "query"},
                    {"type": "string", "description": "Sinarmas interest", "name": "sinarmas_interest", "in": "query"},
                    {"type": "string", "description": "Share transfer policy (case-insensitive exact match)", "name": "share_transfer_allowed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Matching companies", "schema": {"type": "array", "items": {"$ref": "#/definitions/company.CompanyViewModel"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Search backend unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/companies": {
            "get": {
                "description": "Paginated list of companies from the last sheet sync, ordered by name",
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "List companies",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paginated companies", "schema": {"$ref": "#/definitions/pagination.PageResponse-company_CompanyViewModel"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/companies/{name}": {
            "get": {
                "description": "Get one company from the snapshot store by name (case-insensitive)",
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Get a company",
                "parameters": [
                    {"type": "string", "description": "Company name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Company", "schema": {"$ref": "#/definitions/company.CompanyViewModel"}},
                    "404": {"description": "Company not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/pipeline/sync": {
            "post": {
                "security": [{"PipelineKey": []}],
                "description": "Reads every sheet row and upserts it by company name",
                "produces": ["application/json"],
                "tags": ["pipeline"],
                "summary": "Sync companies from the sheet",
                "responses": {
                    "200": {"description": "Sync counts", "schema": {"$ref": "#/definitions/services.SyncResult"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Sync source unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "company.FundingEntry": {
            "type": "object",
            "properties": {
                "date_of_financing": {"type": "string"},
                "share_class": {"type": "string"},
                "total_financing_size": {"type": "string"},
                "liquidity_rank": {"type": "string"},
                "issue_price": {"type": "string"},
                "shares_outstanding": {"type": "string"},
                "liquidation_preference": {"type": "string"}
            }
        },
        "company.PricePoint": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "company.PriceSummary": {
            "type": "object",
            "properties": {
                "points": {"type": "integer"},
                "min": {"type": "number"},
                "max": {"type": "number"},
                "average": {"type": "number"},
                "latest": {"type": "number"},
                "change_pct": {"type": "number"}
            }
        },
        "company.YearlyAggregate": {
            "type": "object",
            "properties": {
                "year": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "company.CompanyViewModel": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "website": {"type": "string"},
                "sector": {"type": "string"},
                "valuation": {"type": "string"},
                "implied_valuation": {"type": "string"},
                "investors": {"type": "string"},
                "latest_funding": {"type": "string"},
                "latest_funding_date": {"type": "string"},
                "total_funding": {"type": "string"},
                "overview": {"type": "string"},
                "summary": {"type": "string"},
                "sinarmas_interest": {"type": "string"},
                "share_transfer_allowed": {"type": "string"},
                "liquidity_ez": {"type": "string"},
                "liquidity_forge": {"type": "string"},
                "liquidity_nasdaq": {"type": "string"},
                "sellers_ask": {"type": "string"},
                "buyers_bid": {"type": "string"},
                "total_bids": {"type": "string"},
                "total_asks": {"type": "string"},
                "highest_bid_price": {"type": "string"},
                "lowest_ask_price": {"type": "string"},
                "hiive_price": {"type": "string"},
                "ez_total_bid_volume": {"type": "string"},
                "ez_total_ask_volume": {"type": "string"},
                "price_series": {"type": "array", "items": {"$ref": "#/definitions/company.PricePoint"}},
                "price_summary": {"$ref": "#/definitions/company.PriceSummary"},
                "funding_rounds": {"type": "array", "items": {"$ref": "#/definitions/company.FundingEntry"}},
                "funding_totals": {"$ref": "#/definitions/company.FundingEntry"},
                "funding_by_year": {"type": "array", "items": {"$ref": "#/definitions/company.YearlyAggregate"}}
            }
        },
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.ErrorDetail"}
            }
        },
        "pagination.PageResponse-company_CompanyViewModel": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/company.CompanyViewModel"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"}
            }
        },
        "services.SyncResult": {
            "type": "object",
            "properties": {
                "received": {"type": "integer"},
                "upserted": {"type": "integer"},
                "skipped": {"type": "integer"},
                "invalid_json": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "PipelineKey": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Company CRM API",
	Description:      "Search and browse private companies with normalized funding and price history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
