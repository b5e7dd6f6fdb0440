package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mutual/internal/auth"
	"mutual/internal/custody"
	"mutual/internal/escrow"
	"mutual/internal/services"
	"mutual/internal/services/storage"
)

// Deps зависимости HTTP-обработчиков.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Engine   *escrow.Engine
	Ledger   *custody.Ledger
	Storage  storage.Storage
	Events   *services.EventCache
	MaxSkew  time.Duration
	AdminOTP string
	// Debug включает /debug/deposit.
	Debug bool
}

// Register регистрирует маршруты API.
func Register(r gin.IRouter, d Deps) {
	r.GET("/health", Health(d.DB, d.Redis))
	r.GET("/escrow/config", GetEscrowConfig(d.Engine))
	r.GET("/currencies", GetCurrencies(d.DB))

	api := r.Group("/")
	api.Use(auth.SignatureMiddleware(d.MaxSkew))
	api.POST("/escrow/initialize", InitializeEscrow(d.Engine))

	api.POST("/deals", CreateDeal(d.DB, d.Engine))
	api.GET("/deals", ListDeals(d.DB))
	api.GET("/deals/:id", GetDeal(d.DB, d.Engine))
	api.POST("/deals/:id/accept", AcceptDeal(d.DB, d.Engine))
	api.POST("/deals/:id/reject", RejectDeal(d.DB, d.Engine))
	api.POST("/deals/:id/claim", ClaimDeal(d.DB, d.Engine))
	api.GET("/deals/:id/claimable", GetClaimable(d.DB, d.Engine))
	api.POST("/deals/:id/dispute", OpenDispute(d.DB, d.Engine))
	api.GET("/deals/:id/actions", GetDealActions(d.Engine))
	api.GET("/deals/:id/events", GetDealEvents(d.DB, d.Engine, d.Events))
	api.POST("/deals/:id/evidence", UploadDealEvidence(d.DB, d.Engine, d.Storage))
	api.GET("/deals/:id/evidence", ListDealEvidence(d.DB, d.Engine, d.Storage))

	api.GET("/balances", ListBalances(d.DB, d.Ledger))
	api.GET("/notifications", ListNotifications(d.DB))
	api.POST("/notifications/:id/read", ReadNotification(d.DB))
	api.POST("/notifications/read-all", ReadAllNotifications(d.DB))
	api.GET("/ws/deals/:id/status", DealStatusWS(d.Engine))
	api.GET("/ws/notifications", NotificationsWS(d.DB))

	admin := api.Group("/")
	admin.Use(auth.RequireAdminOTP(d.AdminOTP))
	admin.PUT("/escrow/config/percentage", UpdateMaxClaimablePercentage(d.Engine))
	admin.POST("/deals/:id/dispute/resolve", ResolveDispute(d.DB, d.Engine))
	admin.PUT("/deals/:id/eligibility", SetEligibility(d.DB, d.Engine))

	if d.Debug {
		r.POST("/debug/deposit", DebugDeposit(d.DB, d.Ledger))
	}
}
