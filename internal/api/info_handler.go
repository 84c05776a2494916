package api

import (
	"net/http"
	"runtime"

	"github.com/phrazzld/cards-api/internal/api/shared"
	"github.com/phrazzld/cards-api/internal/config"
)

// InfoHandler serves the informational endpoints.
type InfoHandler struct {
	buildVersion string
	contact      config.ContactConfig
	goVersion    func() string
}

// NewInfoHandler creates an InfoHandler publishing the given build and contact details.
func NewInfoHandler(build config.BuildConfig, contact config.ContactConfig) *InfoHandler {
	return &InfoHandler{
		buildVersion: build.Version,
		contact:      contact,
		goVersion:    runtime.Version,
	}
}

// BuildInfo handles GET /api/cards/build-info
func (h *InfoHandler) BuildInfo(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.buildVersion)
}

// GoVersion handles GET /api/cards/go-version
func (h *InfoHandler) GoVersion(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.goVersion())
}

// ContactInfo handles GET /api/cards/contact-info
func (h *InfoHandler) ContactInfo(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.contact)
}
