package image

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/imagehost/service/internal/metrics"
	"github.com/imagehost/service/internal/response"
	"github.com/imagehost/service/internal/storage"
)

// Handler holds HTTP handlers for image upload, retrieval and deletion.
type Handler struct {
	svc            *Service
	store          *storage.Client
	maxUploadBytes int64
}

// NewHandler creates a new image Handler.
func NewHandler(svc *Service, store *storage.Client, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, store: store, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Stores the multipart field "file" under a generated identifier. Public uploads return the direct storage URL, private uploads a service-relative retrieval path.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Param			type	query		string	false	"Storage location"	Enums(public, private)
//	@Success		200		{object}	UploadResult
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload-image [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	loc := LocationFor(r.URL.Query().Get("type"))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			response.Failed(w, MessageNoFile)
			return
		}
		log.WithError(err).Warn("upload: parse multipart form")
		response.InternalError(w, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	result, err := h.svc.Upload(r.Context(), UploadInput{
		Filename: header.Filename,
		Data:     data,
		Location: loc,
	})
	if err != nil {
		var opErr *storage.OpError
		switch {
		case errors.Is(err, ErrNoFile):
			response.Failed(w, MessageNoFile)
		case errors.As(err, &opErr):
			metrics.UploadsTotal.WithLabelValues(string(loc), response.StatusError).Inc()
			log.WithError(err).WithField("location", loc).Error("upload: put failed")
			response.Failed(w, err.Error())
		default:
			response.InternalError(w, err)
		}
		return
	}

	metrics.UploadsTotal.WithLabelValues(string(loc), response.StatusSuccess).Inc()
	metrics.UploadedBytes.WithLabelValues(string(loc)).Observe(float64(result.Bytes))
	log.WithFields(log.Fields{
		"location":  loc,
		"public_id": result.PublicID,
		"format":    result.Format,
		"bytes":     result.Bytes,
	}).Info("upload: stored")
	response.JSON(w, http.StatusOK, result)
}

// Get godoc
//
//	@Summary		Fetch a private file
//	@Description	Streams the object's bytes from the private location with its stored content type.
//	@Tags			images
//	@Produce		octet-stream
//	@Param			name	path		string	true	"Stored file name, e.g. V1StGXR8_Z5jdHi6B-myT.png"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	response.Envelope
//	@Router			/image/{name} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	loc, _, err := h.store.Resolve(ctx, name, storage.GetProbeOrder)
	if err != nil {
		response.NotFound(w)
		return
	}

	obj, err := h.store.Get(ctx, loc, name)
	if err != nil {
		if storage.IsNotFound(err) {
			response.NotFound(w)
			return
		}
		log.WithError(err).WithField("name", name).Error("get: open object")
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if obj.ETag != "" {
		w.Header().Set("ETag", obj.ETag)
	}
	w.WriteHeader(http.StatusOK)

	// The backend read shares the request context, so a client disconnect
	// aborts it.
	if _, err := io.Copy(w, obj.Body); err != nil && !errors.Is(ctx.Err(), context.Canceled) {
		log.WithError(err).WithField("name", name).Warn("get: stream interrupted")
	}
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Description	Deletes the object from whichever location holds it, probing private before public.
//	@Tags			images
//	@Produce		json
//	@Param			name	path		string	true	"Stored file name"
//	@Success		200		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Router			/image/{name} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	loc, _, err := h.store.Resolve(ctx, name, storage.DeleteProbeOrder)
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := h.store.Delete(ctx, loc, name); err != nil {
		metrics.DeletesTotal.WithLabelValues(string(loc), response.StatusError).Inc()
		log.WithError(err).WithField("location", loc).Error("delete: remove object")
		response.Failed(w, err.Error())
		return
	}

	metrics.DeletesTotal.WithLabelValues(string(loc), response.StatusSuccess).Inc()
	log.WithFields(log.Fields{"location": loc, "name": name}).Info("delete: removed")
	response.JSON(w, http.StatusOK, response.Envelope{Status: response.StatusSuccess})
}
