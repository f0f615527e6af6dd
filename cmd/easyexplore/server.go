package main

import (
	"database/sql"
	"net/http"

	"easyexplore/internal/app/itineraries"
	"easyexplore/internal/app/reviews"
	"easyexplore/internal/app/saved"
	"easyexplore/internal/app/users"
	"easyexplore/internal/auth"
	"easyexplore/internal/config"
	"easyexplore/internal/geoapify"
	"easyexplore/internal/http/middleware"
	"easyexplore/internal/httpapi"
	"easyexplore/internal/opentripmap"
	"easyexplore/internal/searchservice"
	"easyexplore/internal/store"
)

func newHTTPHandler(cfg *config.Config, db *sql.DB) http.Handler {
	dataStore := store.New(db)
	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	geo := geoapify.NewClient(cfg.Providers.GeoapifyKey, cfg.Providers.GeoapifyBaseURL, cfg.Providers.Timeout)
	searchSvc := searchservice.NewService(geo, searchservice.Options{
		ResultLimit:       cfg.Search.ResultLimit,
		DefaultRadius:     cfg.Search.DefaultRadius,
		DefaultCategory:   cfg.Search.DefaultCategory,
		EnrichConcurrency: cfg.Search.EnrichConcurrency,
	})
	suggestSvc := opentripmap.NewClient(cfg.Providers.OpenTripMapKey, cfg.Providers.OpenTripMapBaseURL, cfg.Providers.Timeout)

	api := httpapi.New(httpapi.Services{
		Search:      searchSvc,
		Suggest:     suggestSvc,
		Users:       users.New(dataStore, tokens),
		Saved:       saved.New(dataStore),
		Itineraries: itineraries.New(dataStore),
		Reviews:     reviews.New(dataStore),
		Tokens:      tokens,
	})

	return middleware.Chain(api.Routes(), cfg.CORS.AllowedOrigins)
}
