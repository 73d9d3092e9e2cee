package api

// Package api provides HTTP API handlers and routes
//
// @title Nazeer API
// @version 1.0.0
// @description Pakistani case law and statute retrieval API
// @description
// @description Nazeer is a two-stage dense-retrieval and cross-encoder-reranking
// @description engine over Pakistani court judgments and statutes, with an
// @description exact-match short-circuit for precise case-number and citation lookups.
// @description
// @description Features:
// @description - Legal-domain QA retrieval (semantic + exact-match + statute keyword engine)
// @description - Case law storage and search
// @description - Job queue for distributed ingestion
// @description - Prometheus metrics and observability
//
// @contact.name Nazeer API Support
// @contact.url https://github.com/faizrashid/nazeer
// @contact.email support@nazeer-api.example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for authentication. Obtain from your account dashboard.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"
//
// @tag.name Health
// @tag.description Health check and readiness endpoints
//
// @tag.name QA
// @tag.description Legal question-answering retrieval (C1-C10 pipeline)
//
// @tag.name Cases
// @tag.description Case law retrieval and search
//
// @tag.name Stats
// @tag.description System and database statistics
//
// @tag.name Search
// @tag.description Advanced search and query
