package main

import (
	"net/http"
	"time"

	"foodie-storefront/api-gateway/internal/gateway"
	"foodie-storefront/config"
	"foodie-storefront/session"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	config.SetupLogger("api-gateway")

	cfg := gateway.Config{
		MenuSvcURL:       config.GetEnv("MENU_SVC_URL", "http://localhost:8081"),
		StorefrontSvcURL: config.GetEnv("STOREFRONT_SVC_URL", "http://localhost:8082"),
		FrontendDir:      config.GetEnv("FRONTEND_DIR", "./frontend"),
	}
	sessions := session.NewManager(
		config.MustSessionSecret(),
		config.GetEnvDuration("SESSION_TTL", 12*time.Hour),
		!config.IsDevelopment(),
	)

	gw := gateway.NewGateway(cfg, &http.Client{Timeout: 30 * time.Second}, sessions)

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Cart-Session"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	port := config.GetEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("api gateway starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("api gateway stopped")
	}
}
