package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/theme"
)

// ThemeState is the body of theme answers and theme events.
type ThemeState struct {
	Mode theme.Mode `json:"mode"`
	Dark bool       `json:"dark"`
}

type setThemeRequest struct {
	Dark *bool `json:"dark"`
}

type ThemeHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	Set(w http.ResponseWriter, r *http.Request)
}

type themeHandlerImpl struct {
	store *theme.Store
}

func NewThemeHandler(store *theme.Store) ThemeHandler {
	return &themeHandlerImpl{store: store}
}

func (h *themeHandlerImpl) state() ThemeState {
	return ThemeState{Mode: h.store.Mode(), Dark: h.store.Dark()}
}

// Get handles GET /theme
func (h *themeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.state())
}

// Toggle handles POST /theme/toggle
func (h *themeHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	h.store.Toggle()
	response.Success(w, h.state())
}

// Set handles PUT /theme with {"dark": bool}
func (h *themeHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req setThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Dark == nil {
		response.ValidationError(w, map[string]string{"dark": "dark is required"})
		return
	}

	h.store.Set(*req.Dark)
	response.Success(w, h.state())
}

// PublishThemeChanges forwards every theme change to the theme topic.
func PublishThemeChanges(store *theme.Store, publisher sse.Publisher) func() {
	return store.Subscribe(func(dark bool) {
		mode := theme.ModeLight
		if dark {
			mode = theme.ModeDark
		}
		sse.Notify(publisher, sse.TopicTheme, ThemeState{Mode: mode, Dark: dark})
	})
}
