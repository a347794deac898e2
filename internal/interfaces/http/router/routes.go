package router

import (
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/interfaces/http/handler"
	"github.com/homefinder/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Auth     *handler.AuthHandler
	Location *handler.LocationHandler
	Listing  *handler.ListingHandler
	Invite   *handler.InviteHandler
	System   *handler.SystemHandler
}

// Guards are the access middleware applied per route group
type Guards struct {
	// Authenticate validates the bearer token and stores the session. Required.
	Authenticate gin.HandlerFunc
	// AuthRateLimit throttles the credential endpoints. Nil disables it.
	AuthRateLimit gin.HandlerFunc
	// DocsAccess protects the API docs. Nil leaves them open.
	DocsAccess gin.HandlerFunc
}

// APIGroups builds the versioned API route groups
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	agentOnly := middleware.RequireAnyRole(identity.RoleAgent, identity.RoleAdmin)

	authRoutes := NewDomainGroup("auth", "/auth").Use(g.AuthRateLimit)
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.Refresh)
	authRoutes.POST("/logout", g.Authenticate, h.Auth.Logout)
	authRoutes.GET("/me", g.Authenticate, h.Auth.Me)

	locationRoutes := NewDomainGroup("location", "")
	locationRoutes.GET("/regions", h.Location.ListRegions)
	locationRoutes.GET("/divisions", h.Location.ListDivisions)
	locationRoutes.GET("/subdivisions", h.Location.ListSubdivisions)
	locationRoutes.GET("/neighborhoods", h.Location.ListNeighborhoods)
	locationRoutes.GET("/house-types", h.Location.ListHouseTypes)

	listingRoutes := NewDomainGroup("listing", "/listings")
	listingRoutes.GET("", h.Listing.Search)
	listingRoutes.GET("/:id", h.Listing.GetDetails)

	// "/mine" is a static segment, so it wins over the public "/:id"
	agentListings := listingRoutes.Group("listing-agent", "").Use(g.Authenticate, agentOnly)
	agentListings.GET("/mine", h.Listing.ListMine)
	agentListings.GET("/:id/edit", h.Listing.GetForEdit)
	agentListings.POST("", h.Listing.Create)
	agentListings.PUT("/:id", h.Listing.Update)
	agentListings.PATCH("/:id/status", h.Listing.ChangeStatus)
	agentListings.DELETE("/:id", h.Listing.Delete)

	inviteTokenRoutes := NewDomainGroup("invite-token", "/invite-tokens").Use(g.Authenticate, agentOnly)
	inviteTokenRoutes.GET("", h.Invite.ListMine)
	inviteTokenRoutes.POST("", h.Invite.Issue)
	inviteTokenRoutes.DELETE("/:id", h.Invite.Delete)

	inviteRoutes := NewDomainGroup("invite", "/invites").Use(g.Authenticate)
	inviteRoutes.POST("/verify", h.Invite.Verify)
	inviteRoutes.POST("/accept", h.Invite.Accept)

	return []*DomainGroup{authRoutes, locationRoutes, listingRoutes, inviteTokenRoutes, inviteRoutes}
}

// Mount registers the health probe, the API docs and the versioned API on engine
func Mount(engine *gin.Engine, h Handlers, g Guards) {
	engine.GET("/health", h.System.Health)

	docs := []gin.HandlerFunc{ginSwagger.WrapHandler(swaggerFiles.Handler)}
	if g.DocsAccess != nil {
		docs = append([]gin.HandlerFunc{g.DocsAccess}, docs...)
	}
	engine.GET("/swagger/*any", docs...)

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, group := range APIGroups(h, g) {
		r.Register(group)
	}
	r.Setup()
}
