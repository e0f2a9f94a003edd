// Standalone GraphQL server, run with: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	graphqlApi "storefront.GO/api/graphql"
	"storefront.GO/config"
	"storefront.GO/core/storage"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	kv, err := storage.Open(cfg)
	if err != nil {
		log.Fatal("storage:", err)
	}
	logger := config.NewLogger(cfg.Debug)
	defer logger.Sync()

	e := echo.New()
	graphqlApi.RegisterGraphQLRoutes(e, api.NewDeps(cfg, kv, logger))

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("Storefront GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", cfg.Port, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
