package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"facethewall/internal/app/page"
	"facethewall/internal/config"
	"facethewall/internal/http/middleware"
	"facethewall/internal/httpapi"
	"facethewall/internal/locale"
	"facethewall/internal/musicapi"
	"facethewall/internal/store"
)

func newHTTPHandler(cfg *config.Config, catalog musicapi.Catalog, images *store.Store, bundles *locale.Bundles, resolver *locale.Resolver) http.Handler {
	pageSvc := page.New(catalog, images, bundles, resolver, cfg.Catalog.ArtistID())

	router := httpapi.NewServer(pageSvc, images, resolver).Routes(
		middleware.CacheControl(cfg.Server.CacheMaxAge),
	)
	router.Use(
		middleware.Recovery(),
		middleware.RequestLogging(),
	)

	return middleware.CORS(cfg.CORS.AllowedOrigins)(router)
}

// newCatalog builds the client for the configured provider. Both share one
// HTTP client so the catalog timeout also bounds token requests.
func newCatalog(cfg config.CatalogConfig) (musicapi.Catalog, error) {
	apiCfg := cfg.MusicAPI()
	httpClient := apiCfg.HTTPClient()

	switch cfg.Provider {
	case musicapi.ProviderSpotify:
		tokens := musicapi.NewClientCredentials(apiCfg.SpotifyClientID, apiCfg.SpotifyClientSecret, apiCfg.SpotifyTokenURL, httpClient)
		log.Info().Str("artist_id", cfg.ArtistID()).Msg("Spotify catalog initialized")
		return musicapi.NewSpotifyClient(tokens, apiCfg.SpotifyBaseURL, httpClient), nil
	case musicapi.ProviderAppleMusic:
		tokens, err := musicapi.NewDeveloperToken(apiCfg.AppleMusicKeyID, apiCfg.AppleMusicTeamID, apiCfg.AppleMusicPrivateKey)
		if err != nil {
			return nil, fmt.Errorf("apple music developer token: %w", err)
		}
		log.Info().Str("artist_id", cfg.ArtistID()).Str("storefront", apiCfg.AppleMusicStorefront).Msg("Apple Music catalog initialized")
		return musicapi.NewAppleMusicClient(tokens, apiCfg.AppleMusicStorefront, apiCfg.AppleMusicBaseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", cfg.Provider)
	}
}
