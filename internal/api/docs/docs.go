// Package docs registers the OpenAPI description of the trading journal API.
// Regenerate with: swag init -g cmd/api-service/main.go -o internal/api/docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/trades": {
            "get": {"tags": ["trades"], "summary": "List trades"},
            "post": {"tags": ["trades"], "summary": "Log a trade"}
        },
        "/trades/import": {
            "post": {"tags": ["trades"], "summary": "Import trades from CSV", "consumes": ["multipart/form-data"]}
        },
        "/trades/reassign-account": {
            "post": {"tags": ["trades"], "summary": "Move trades to another account"}
        },
        "/trades/{id}": {
            "get": {"tags": ["trades"], "summary": "Get a trade"},
            "put": {"tags": ["trades"], "summary": "Replace a trade"},
            "delete": {"tags": ["trades"], "summary": "Delete a trade"}
        },
        "/accounts": {
            "get": {"tags": ["accounts"], "summary": "List accounts"},
            "post": {"tags": ["accounts"], "summary": "Create an account"}
        },
        "/accounts/{id}": {
            "get": {"tags": ["accounts"], "summary": "Get an account"},
            "put": {"tags": ["accounts"], "summary": "Update an account"},
            "delete": {"tags": ["accounts"], "summary": "Delete an account"}
        },
        "/setups": {
            "get": {"tags": ["setups"], "summary": "List setups with their statistics"},
            "post": {"tags": ["setups"], "summary": "Create a setup"}
        },
        "/setups/{id}": {
            "get": {"tags": ["setups"], "summary": "Get a setup with its statistics"},
            "put": {"tags": ["setups"], "summary": "Update a setup"},
            "delete": {"tags": ["setups"], "summary": "Delete a setup"}
        },
        "/journal": {
            "get": {"tags": ["journal"], "summary": "List journal entries"}
        },
        "/journal/{date}": {
            "get": {"tags": ["journal"], "summary": "Get the journal of a day"},
            "put": {"tags": ["journal"], "summary": "Write the journal of a day"},
            "delete": {"tags": ["journal"], "summary": "Delete the journal of a day"}
        },
        "/rules": {
            "get": {"tags": ["rules"], "summary": "List trading rules"},
            "post": {"tags": ["rules"], "summary": "Create a trading rule"}
        },
        "/rules/adherence": {
            "get": {"tags": ["rules"], "summary": "Rule adherence report"}
        },
        "/rules/{id}": {
            "put": {"tags": ["rules"], "summary": "Update a trading rule"},
            "delete": {"tags": ["rules"], "summary": "Delete a trading rule and its checks"}
        },
        "/rules/{id}/check": {
            "put": {"tags": ["rules"], "summary": "Record whether a rule was followed"}
        },
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Get the caller's profile"},
            "put": {"tags": ["profile"], "summary": "Create or update the caller's profile"}
        },
        "/leaderboard": {
            "get": {"tags": ["leaderboard"], "summary": "Public leaderboard"}
        },
        "/squads": {
            "get": {"tags": ["squads"], "summary": "List the caller's squads"},
            "post": {"tags": ["squads"], "summary": "Create a squad"}
        },
        "/squads/{id}": {
            "get": {"tags": ["squads"], "summary": "Get a squad"}
        },
        "/squads/{id}/join": {
            "post": {"tags": ["squads"], "summary": "Join a public squad"}
        },
        "/squads/{id}/leave": {
            "post": {"tags": ["squads"], "summary": "Leave a squad"}
        },
        "/squads/{id}/leaderboard": {
            "get": {"tags": ["squads"], "summary": "Squad leaderboard"}
        },
        "/squads/{id}/challenges": {
            "get": {"tags": ["squads"], "summary": "Squad weekly challenges"}
        },
        "/dashboard": {
            "get": {"tags": ["analytics"], "summary": "Dashboard"}
        },
        "/calendar": {
            "get": {"tags": ["analytics"], "summary": "Monthly P&L calendar"}
        },
        "/risk": {
            "get": {"tags": ["analytics"], "summary": "Risk status"}
        },
        "/risk/position-size": {
            "post": {"tags": ["analytics"], "summary": "Position size calculator"}
        },
        "/analytics": {
            "get": {"tags": ["analytics"], "summary": "Performance breakdowns"}
        },
        "/achievements": {
            "get": {"tags": ["analytics"], "summary": "Achievements with progress"}
        },
        "/challenges": {
            "get": {"tags": ["analytics"], "summary": "Daily and weekly challenges"}
        },
        "/admin/overview": {
            "get": {"tags": ["admin"], "summary": "Platform overview"}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trading Journal API",
	Description:      "Trade logging, analytics, journaling and social features for active traders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
