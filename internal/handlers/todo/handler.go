package todo

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"todos/config"
	"todos/infras/otel"
	"todos/internal/domains/todo/model/dto"
	"todos/internal/domains/todo/service"
	"todos/shared/constant"
	"todos/shared/failure"
	"todos/shared/validator"
	"todos/transport/http/response"
)

type Handler struct {
	service service.Todo
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Todo, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)

		routerGroup.With(handler.TodoCtx).Get("/{id:[0-9]+}", handler.GetTodoByID)
		routerGroup.With(handler.TodoCtx).Patch("/{id:[0-9]+}", handler.UpdateTodo)
		routerGroup.With(handler.TodoCtx).Delete("/{id:[0-9]+}", handler.DeleteTodo)
	})
}

// TodoCtx resolves the {id} path parameter to an existing todo before any
// method-specific or body-related processing runs, so an unknown ID yields
// 404 ahead of content-type and payload checks.
func (handler *Handler) TodoCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TodoCtx")
		defer scope.End()

		id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
		if err != nil {
			response.WithError(w, failure.NotFound("todo not found"))

			return
		}

		todo, err := handler.service.Get(ctx, id)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Int64(constant.RequestParamID, id).Msg("failed to resolve todo")

			response.WithError(w, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyTodo, todo)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CreateTodo handles the creation of a new todo item.
// @Summary Create a new todo item
// @Description Create a new todo item with the provided title.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body dto.CreateTodoRequest true "Create Todo Request"
// @Success 201 {object} dto.TodoResponse "Created todo"
// @Failure 400 {object} response.Message
// @Failure 413 {object} response.Message
// @Failure 415 {object} response.Message
// @Failure 422 {object} response.Message
// @Router /todos [post]
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := handler.decodeInto(writer, request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request body")

		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo created successfully")

	response.WithJSON(writer, http.StatusCreated, todo)
}

// GetTodos retrieves all todo items.
// @Summary Get all todo items
// @Description Retrieve all todo items, optionally filtered by done status.
// @Tags Todo
// @Produce json
// @Param done query string false "Filter by done status"
// @Success 200 {object} dto.ListTodosResponse "List of todo items"
// @Router /todos [get]
func (handler *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	filter := dto.ListTodosFilter{}
	filter.FromRequest(r)

	todos, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, todos)
}

// GetTodoByID retrieves a todo item by its ID.
// @Summary Get a todo item by ID
// @Tags Todo
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse "Todo item"
// @Failure 404 {object} response.Message
// @Router /todos/{id} [get]
func (handler *Handler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodoByID")
	defer scope.End()

	todo, _ := r.Context().Value(constant.ContextKeyTodo).(dto.TodoResponse)

	response.WithJSON(w, http.StatusOK, todo)
}

// UpdateTodo updates an existing todo item by its ID.
// @Summary Update a todo item by ID
// @Description Apply a partial update; absent fields are left unchanged.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Update Todo Request"
// @Success 200 {object} dto.TodoResponse "Updated todo"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 413 {object} response.Message
// @Failure 415 {object} response.Message
// @Failure 422 {object} response.Message
// @Router /todos/{id} [patch]
func (handler *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	current, _ := r.Context().Value(constant.ContextKeyTodo).(dto.TodoResponse)

	req := dto.UpdateTodoRequest{}
	if err := handler.decodeInto(w, r, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request body")

		response.WithError(w, err)

		return
	}

	todo, err := handler.service.Update(ctx, req, current.ID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo updated successfully")

	response.WithJSON(w, http.StatusOK, todo)
}

// DeleteTodo deletes a todo item by its ID.
// @Summary Delete a todo item by ID
// @Tags Todo
// @Param id path int true "Todo ID"
// @Success 204 "Deleted"
// @Failure 404 {object} response.Message
// @Router /todos/{id} [delete]
func (handler *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	current, _ := r.Context().Value(constant.ContextKeyTodo).(dto.TodoResponse)

	if err := handler.service.Delete(ctx, current.ID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo deleted successfully")

	response.WithNoContent(w)
}

type payloadProjector interface {
	FromPayload(payload map[string]any) error
}

// decodeInto runs the shared body pipeline: content-type gate, bounded read,
// JSON decode, then field projection and validation. Failures keep that
// order (415, 413, 400, 422).
func (handler *Handler) decodeInto(w http.ResponseWriter, r *http.Request, req payloadProjector) error {
	if err := requireJSON(r); err != nil {
		return err
	}

	body, err := validator.ReadBody(w, r, handler.cfg.App.BodyLimit.TodoMaxBytes)
	if err != nil {
		return err
	}

	payload, err := validator.DecodeBody(body)
	if err != nil {
		return err
	}

	return req.FromPayload(payload)
}

// requireJSON checks the Content-Type is application/json; parameters after
// the semicolon are ignored.
func requireJSON(r *http.Request) error {
	contentType := r.Header.Get(constant.RequestHeaderContentType)
	mediaType, _, _ := strings.Cut(contentType, ";")

	if strings.TrimSpace(mediaType) != constant.ContentTypeJSON {
		return failure.UnsupportedMediaType("Content-Type must be application/json") //nolint:wrapcheck
	}

	return nil
}
