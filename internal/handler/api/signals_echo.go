package api

import (
	"errors"
	"net/http"
	"strings"

	"CreditPull/internal/domain/models"
	"CreditPull/internal/service/ratelimit"
	"CreditPull/internal/usecase"
	xhttp "CreditPull/pkg/http"
	xlogger "CreditPull/pkg/logger"
	"CreditPull/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler serves the signal-fetch API.
type SignalsEchoHandler struct {
	logger   *xlogger.Logger
	registry *usecase.Registry
	rl       *ratelimit.Limiter
}

func NewSignalsEchoHandler(logger *xlogger.Logger, registry *usecase.Registry) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, registry: registry, rl: ratelimit.New()}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/fetch", h.Fetch)
	e.GET("/list_adapters", h.ListAdapters)
	e.GET("/health", h.Health)
}

// Fetch resolves and fetches the requested signals. Domain errors map to
// HTTP statuses: invalid input 400, entity not found 404, upstream failure
// and everything else 500.
func (h *SignalsEchoHandler) Fetch(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":fetch", 20, 10) {
		return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Type:    "rate_limited",
			Message: "too many requests",
		})
	}

	req := &models.SignalFetchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return errorResponse(c, invalidRequestError(verr))
	}
	if err := validateAddressInputs(req.AdapterInputs); err != nil {
		return errorResponse(c, err)
	}

	signals, err := h.registry.FetchSignals(c.Request().Context(), req.SignalNames, req.AdapterInputs)
	if err != nil {
		h.logger.Error("signal fetch failed",
			xlogger.Strings("signal_names", req.SignalNames),
			xlogger.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, models.SignalFetchResponse{Signals: signals})
}

// ListAdapters returns every registered adapter's descriptor.
func (h *SignalsEchoHandler) ListAdapters(c echo.Context) error {
	return c.JSON(http.StatusOK, models.ListAdaptersResponse{Adapters: h.registry.Definitions()})
}

// Health is the liveness probe.
func (h *SignalsEchoHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// validateAddressInputs rejects malformed chain addresses at the boundary so
// no adapter is invoked for a request that cannot succeed.
func validateAddressInputs(inputs map[string]any) error {
	for key, value := range inputs {
		if !strings.HasSuffix(key, "_address") {
			continue
		}
		address, ok := value.(string)
		if !ok || !util.IsHexAddress(address) {
			return models.NewInvalidInputError("input %s is not a valid address: %v", key, value)
		}
	}
	return nil
}

// invalidRequestError flattens body validation failures into the shared
// error envelope.
func invalidRequestError(verr any) error {
	if errs, ok := verr.([]xhttp.ValidationError); ok && len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			messages = append(messages, e.Message)
		}
		return models.NewInvalidInputError("invalid request: %s", strings.Join(messages, "; "))
	}
	return models.NewInvalidInputError("invalid request body")
}

func errorResponse(c echo.Context, err error) error {
	status, errType := classifyError(err)
	return c.JSON(status, models.ErrorResponse{Type: errType, Message: err.Error()})
}

func classifyError(err error) (status int, errType string) {
	var (
		invalidInput    *models.InvalidInputError
		notFound        *models.NotFoundError
		upstream        *models.UpstreamError
		adapterNotFound *models.AdapterNotFoundError
		signalNotFound  *models.SignalNotFoundError
		missingInput    *models.MissingInputError
	)
	switch {
	case errors.As(err, &invalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &adapterNotFound):
		return http.StatusBadRequest, "adapter_not_found"
	case errors.As(err, &signalNotFound):
		return http.StatusBadRequest, "signal_not_found"
	case errors.As(err, &missingInput):
		return http.StatusBadRequest, "missing_input"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_error"
}
