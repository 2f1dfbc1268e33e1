// Package objects serves listings of every stored key.
package objects

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/imagehost/service/internal/response"
	"github.com/imagehost/service/internal/storage"
)

// Listing holds the full key listing of both storage locations.
type Listing struct {
	PublicKeys  []string `json:"publicKeys"  example:"public/V1StGXR8_Z5jdHi6B-myT.png"`
	PrivateKeys []string `json:"privateKeys" example:"private/3yQm1n0VbD7cE2oP9sTzK.pdf"`
}

// Handler holds the listing endpoint.
type Handler struct {
	store *storage.Client
}

// NewHandler creates a new objects Handler.
func NewHandler(store *storage.Client) *Handler {
	return &Handler{store: store}
}

// List godoc
//
//	@Summary		List stored objects
//	@Description	Walks the complete listing of both locations. Every call is a live round trip to the object store.
//	@Tags			objects
//	@Produce		json
//	@Success		200	{object}	Listing
//	@Router			/objects/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var listing Listing
	for _, loc := range []storage.Location{storage.Public, storage.Private} {
		keys, err := h.store.List(r.Context(), loc)
		if err != nil {
			log.WithError(err).WithField("location", loc).Error("list: walk location")
			response.JSON(w, http.StatusOK, response.ListError{Status: response.StatusError, Error: err.Error()})
			return
		}
		if loc == storage.Public {
			listing.PublicKeys = keys
		} else {
			listing.PrivateKeys = keys
		}
	}
	response.JSON(w, http.StatusOK, listing)
}
