package handler

import (
	"real_estate/internal/config"
	"real_estate/internal/relay"
	"real_estate/internal/service"
	"real_estate/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Listing   *ListingHandler
	Broker    *BrokerHandler
	Chat      *ChatHandler
	Admin     *AdminHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, hub *relay.Hub, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(hub),
		Auth:      NewAuthHandler(services.Auth, cfg, log),
		User:      NewUserHandler(services.User, services.Saved, services.Preferences, log),
		Listing:   NewListingHandler(services.Listing, log),
		Broker:    NewBrokerHandler(services.Broker, log),
		Chat:      NewChatHandler(services.Chat, log),
		Admin:     NewAdminHandler(services.Admin, log),
		WebSocket: NewWebSocketHandler(hub, cfg.CORS.AllowedOrigins, log),
	}
}
