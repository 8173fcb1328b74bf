package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"vms-backend/internal/adapter/middleware"
	"vms-backend/internal/domain/account"
	domainEvent "vms-backend/internal/domain/event"
)

type Handlers struct {
	Health      *Handler
	Auth        *AuthHandler
	Accounts    *AccountHandler
	Membership  *MembershipHandler
	Events      *EventHandler
	Requirement *RequirementHandler
	Evaluation  *EvaluationHandler
	Reports     *ReportHandler
	Feedback    *FeedbackHandler
	Dashboard   *DashboardHandler
	Analytics   *AnalyticsHandler
}

type RouterConfig struct {
	Sessions middleware.SessionResolver
	// Redis enables the idempotency middleware on mutating routes.
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	UploadDir      string
	AllowOrigins   []string
}

// NewServer returns an echo instance with the validator, error envelope and
// base middleware installed.
func NewServer(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderIdempotencyKey},
	}))
	return e
}

func Register(e *echo.Echo, h Handlers, cfg RouterConfig) {
	e.GET("/health", h.Health.Health)
	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	authed := middleware.RequireSession(cfg.Sessions)
	staff := middleware.RequireRoles(account.TypeAdmin, account.TypeOfficer)
	admin := middleware.RequireRoles(account.TypeAdmin)
	var idem []echo.MiddlewareFunc
	if cfg.Redis != nil {
		ttl := cfg.IdempotencyTTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		idem = append(idem, middleware.Idempotency(cfg.Redis, ttl))
	}
	with := func(m ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append(m, idem...)
	}

	api := e.Group("/api")

	a := api.Group("/auth")
	a.POST("/register", h.Auth.Register, idem...)
	a.POST("/login", h.Auth.Login)
	a.POST("/logout", h.Auth.Logout)
	a.GET("/status", h.Auth.Status)
	a.GET("/session", h.Auth.Session)

	acc := api.Group("/accounts", with(authed, staff)...)
	acc.GET("", h.Accounts.List)
	acc.GET("/:id", h.Accounts.Get)
	acc.POST("", h.Accounts.Create)
	acc.PUT("/:id", h.Accounts.Update)
	acc.DELETE("/:id", h.Accounts.Delete)

	mem := api.Group("/membership", with(authed, staff)...)
	mem.GET("", h.Membership.List)
	mem.GET("/:id", h.Membership.Get)
	for _, action := range []string{"approve", "reject", "activate", "deactivate"} {
		mem.PATCH("/"+action+"/:id", h.Membership.Review(action))
	}

	api.GET("/events/public", h.Events.ListPublic)
	ev := api.Group("/events", with(authed)...)
	ev.GET("", h.Events.List)
	ev.GET("/:kind/:id", h.Events.Get)
	ev.POST("/:kind", h.Events.Create, staff)
	ev.PUT("/:kind/:id", h.Events.Update, staff)
	ev.DELETE("/:kind/:id", h.Events.Delete, staff)
	for _, action := range []domainEvent.Action{
		domainEvent.ActionSubmit, domainEvent.ActionAccept, domainEvent.ActionReject, domainEvent.ActionMakePublic,
	} {
		ev.PATCH("/:kind/"+string(action)+"/:id", h.Events.Transition(action), staff)
	}
	ev.GET("/:kind/signatories/:id", h.Events.GetSignatories)
	ev.PUT("/:kind/signatories/:id", h.Events.UpdateSignatories, staff)
	ev.GET("/:kind/analyze/:id", h.Events.Analyze, staff)

	req := api.Group("/requirements", with(authed)...)
	req.GET("", h.Requirement.List, staff)
	req.GET("/event/:kind/:eventId", h.Requirement.ListByEvent, staff)
	req.GET("/:id", h.Requirement.Get)
	req.POST("/:eventId", h.Requirement.Create)
	req.POST("/:kind/:eventId", h.Requirement.Create)
	req.PATCH("/accept/:id", h.Requirement.Accept, staff)
	req.PATCH("/reject/:id", h.Requirement.Reject, staff)

	eva := api.Group("/evaluation", with(authed)...)
	eva.GET("", h.Evaluation.List, staff)
	eva.GET("/event/:kind/:eventId", h.Evaluation.ListByEvent, staff)
	eva.GET("/id/:id", h.Evaluation.Get)
	eva.GET("/:requirementId", h.Evaluation.Template)
	eva.POST("/:requirementId", h.Evaluation.Submit)
	eva.PUT("/:requirementId", h.Evaluation.Submit)

	rep := api.Group("/reports", with(authed, staff)...)
	rep.GET("/analytics/:kind/:eventId", h.Reports.Analytics)
	rep.GET("/:kind/:eventId", h.Reports.GetByEvent)
	rep.POST("/:kind/:eventId", h.Reports.Create)
	rep.DELETE("/:kind/:reportId", h.Reports.Delete)

	fb := api.Group("/feedback", with(authed)...)
	fb.GET("/:kind/:eventId", h.Feedback.GetByEvent)
	fb.POST("/:kind/:eventId", h.Feedback.Create)
	fb.GET("/:feedbackId", h.Feedback.Get)
	fb.PUT("/:feedbackId", h.Feedback.Update)

	dash := api.Group("/dashboard", authed, staff)
	dash.GET("", h.Dashboard.Summary)
	dash.GET("/analytics", h.Dashboard.Analytics)
	dash.GET("/active-member", h.Dashboard.ActiveMembers)
	dash.GET("/event/:kind/:id", h.Dashboard.Event)

	an := api.Group("/analytics", with(authed, staff)...)
	an.GET("/event-success", h.Analytics.EventSuccess)
	an.GET("/volunteer-dropout", h.Analytics.Dropout)
	an.GET("/insights", h.Analytics.Insights)
	an.GET("/satisfaction", h.Analytics.Satisfaction)
	an.GET("/satisfaction/event", h.Analytics.EventSatisfaction)
	an.GET("/satisfaction/event/:eventId", h.Analytics.EventSatisfaction)
	an.GET("/participation-history", h.Analytics.ParticipationHistory)
	an.GET("/participation-summary", h.Analytics.ParticipationSummary)
	an.GET("/all", h.Analytics.All)
	an.POST("/satisfaction/rebuild", h.Analytics.RebuildSatisfaction)
	an.POST("/participation/rebuild", h.Analytics.RebuildParticipation)
	an.POST("/dev/clear", h.Analytics.Clear, admin)
	an.POST("/dev/delete-dummy-volunteers", h.Analytics.DeleteDummyVolunteers, admin)
}
