package handler

import (
	"net/http"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"

	_ "guesthouse/docs"
)

// Handler is the serverless entrypoint; every invocation serves one request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
