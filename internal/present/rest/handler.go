package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/present/rest/middleware"
	"github.com/totegamma/jobtrack/internal/present/rest/presenter"
	"github.com/totegamma/jobtrack/internal/service"
	"github.com/totegamma/jobtrack/internal/usecase"
)

type Handler struct {
	applications *usecase.ApplicationUsecase
	contacts     *usecase.ContactUsecase
	search       *usecase.SearchUsecase
	dashboard    *usecase.DashboardUsecase
	signal       *service.SignalService
}

func NewHandler(
	applications *usecase.ApplicationUsecase,
	contacts *usecase.ContactUsecase,
	search *usecase.SearchUsecase,
	dashboard *usecase.DashboardUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		applications: applications,
		contacts:     contacts,
		search:       search,
		dashboard:    dashboard,
		signal:       signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.GET("/healthz", h.handleHealth)

	api := e.Group("/api/v1", auth.IdentifyOwner)
	api.GET("/applications", h.handleListApplications)
	api.POST("/applications", h.handleCreateApplication)
	api.GET("/applications/:id", h.handleGetApplication)
	api.PUT("/applications/:id", h.handleUpdateApplication)
	api.DELETE("/applications/:id", h.handleDeleteApplication)
	api.GET("/applications/:id/contacts", h.handleListLinks)
	api.PUT("/applications/:id/contacts", h.handleRelink)

	api.GET("/contacts", h.handleListContacts)
	api.POST("/contacts", h.handleCreateContact)
	api.GET("/contacts/:id", h.handleGetContact)
	api.PUT("/contacts/:id", h.handleUpdateContact)
	api.DELETE("/contacts/:id", h.handleDeleteContact)

	api.GET("/search", h.handleSearch)
	api.GET("/dashboard", h.handleDashboard)

	e.GET("/realtime", h.handleRealtime, auth.IdentifyOwner)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListApplications(c echo.Context) error {
	ctx := c.Request().Context()
	owner := middleware.OwnerOf(c)

	query := c.QueryParam("q")
	expand := c.QueryParam("expand") == "contacts" || query != ""

	apps, err := h.applications.List(ctx, owner, usecase.ListOptions{ExpandContacts: expand})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, usecase.FilterApplications(apps, query))
}

func (h *Handler) handleCreateApplication(c echo.Context) error {
	ctx := c.Request().Context()
	owner := middleware.OwnerOf(c)

	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	app, err := req.toDomain("")
	if err != nil {
		return presenter.Error(c, err)
	}

	saved, err := h.applications.Synchronize(ctx, owner, usecase.SyncInput{
		Application: app,
		ContactIDs:  req.ContactIDs,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, saved)
}

func (h *Handler) handleGetApplication(c echo.Context) error {
	ctx := c.Request().Context()

	app, err := h.applications.Get(ctx, middleware.OwnerOf(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, app)
}

func (h *Handler) handleUpdateApplication(c echo.Context) error {
	ctx := c.Request().Context()
	owner := middleware.OwnerOf(c)

	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	app, err := req.toDomain(c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}

	saved, err := h.applications.Synchronize(ctx, owner, usecase.SyncInput{
		Application: app,
		ContactIDs:  req.ContactIDs,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, saved)
}

func (h *Handler) handleDeleteApplication(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.applications.Delete(ctx, middleware.OwnerOf(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListLinks(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	ids, err := h.applications.ListLinks(ctx, middleware.OwnerOf(c), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return presenter.OK(c, linksResponse{ApplicationID: id, ContactIDs: ids})
}

func (h *Handler) handleRelink(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req linksRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	linked, err := h.applications.Relink(ctx, middleware.OwnerOf(c), id, req.ContactIDs)
	if err != nil {
		return presenter.Error(c, err)
	}

	ids := make([]string, 0, len(linked))
	for _, contact := range linked {
		ids = append(ids, contact.ID)
	}
	return presenter.OK(c, linksResponse{ApplicationID: id, ContactIDs: ids, Contacts: linked})
}

func (h *Handler) handleListContacts(c echo.Context) error {
	ctx := c.Request().Context()

	contacts, err := h.contacts.List(ctx, middleware.OwnerOf(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, usecase.FilterContacts(contacts, c.QueryParam("q")))
}

func (h *Handler) handleCreateContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	contact, err := req.toDomain("")
	if err != nil {
		return presenter.Error(c, err)
	}

	saved, err := h.contacts.Save(ctx, middleware.OwnerOf(c), contact)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, saved)
}

func (h *Handler) handleGetContact(c echo.Context) error {
	ctx := c.Request().Context()

	contact, err := h.contacts.Get(ctx, middleware.OwnerOf(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, contact)
}

func (h *Handler) handleUpdateContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	contact, err := req.toDomain(c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}

	saved, err := h.contacts.Save(ctx, middleware.OwnerOf(c), contact)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, saved)
}

func (h *Handler) handleDeleteContact(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.contacts.Delete(ctx, middleware.OwnerOf(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	kind := domain.EntityKind(strings.ToLower(c.QueryParam("kind")))
	if kind == "" {
		kind = domain.KindApplication
	}

	result, err := h.search.Search(ctx, middleware.OwnerOf(c), kind, c.QueryParam("q"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.dashboard.Get(ctx, middleware.OwnerOf(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Cached(c, dashboard)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type socketRequest struct {
	Type string `json:"type"`
}

// handleRealtime streams the owner's change events so open views know when
// to refetch.
func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime is not configured"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.Event)
	go h.signal.Realtime(ctx, middleware.OwnerOf(c), output)

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			var req socketRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
