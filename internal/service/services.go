package service

import (
	"real_estate/internal/config"
	"real_estate/internal/repository"
	"real_estate/pkg/logger"
)

type Services struct {
	Auth        AuthService
	User        UserService
	Listing     ListingService
	Saved       SavedService
	Preferences PreferencesService
	Broker      BrokerService
	Chat        ChatService
	Admin       AdminService
	Audit       AuditService
	RateLimit   RateLimitService
}

func NewServices(repos *repository.Repositories, images ImageStore, cfg *config.Config, log logger.Logger) *Services {
	audit := NewAuditService(repos.Audit, log)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Token, cfg.JWT, cfg.Admin, log),
		User:        NewUserService(repos.User, images, log),
		Listing:     NewListingService(repos.Listing, repos.User, repos.SearchCache, images, log),
		Saved:       NewSavedService(repos.Saved, repos.Listing, repos.User, log),
		Preferences: NewPreferencesService(repos.Preferences, log),
		Broker:      NewBrokerService(repos.Preferences, repos.Listing, repos.Saved, repos.User, log),
		Chat:        NewChatService(repos.Chat, repos.User, log),
		Admin:       NewAdminService(repos.Listing, repos.User, repos.SearchCache, audit, log),
		Audit:       audit,
		RateLimit:   NewRateLimitService(repos.RateLimit, cfg.RateLimit, log),
	}
}
