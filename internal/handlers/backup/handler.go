package backup

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/backup"
	"yadoya/internal/export"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
	"yadoya/transport/http/response"
)

type Handler struct {
	manager  backup.Manager
	exporter export.Exporter
	otel     otel.Otel
}

func New(manager backup.Manager, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		manager:  manager,
		exporter: exporter,
		otel:     otel,
	}
}

// AdminRouter registers the backup and export routes. All of them sit
// behind authentication, there is no public surface here.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/backups", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBackups)
		routerGroup.Post("/", handler.CreateBackup)
		routerGroup.Post("/restore", handler.RestoreBackup)
		routerGroup.Get("/{filename}/download", handler.DownloadBackup)
	})
	router.Route("/export", func(routerGroup chi.Router) {
		routerGroup.Get("/bookings", handler.ExportBookings)
		routerGroup.Get("/messages", handler.ExportMessages)
	})
}

// CreateBackup snapshots every data file into a new archive.
// @Summary Create a backup
// @Tags Backup
// @Produce json
// @Success 201 {object} response.Data[backup.Info] "Backup created"
// @Failure 500 {object} response.Error
// @Router /v1/admin/backups [post]
// @Security BearerAuth
func (handler *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBackup")
	defer scope.End()

	info, err := handler.manager.Create(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create backup")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Backup created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, info)
}

// GetBackups lists the stored archives, newest first.
// @Summary Get all backups
// @Tags Backup
// @Produce json
// @Success 200 {object} response.Data[[]backup.Info] "List of backups"
// @Failure 500 {object} response.Error
// @Router /v1/admin/backups [get]
// @Security BearerAuth
func (handler *Handler) GetBackups(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBackups")
	defer scope.End()

	infos, err := handler.manager.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list backups")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Backups listed successfully")

	response.WithJSON(w, http.StatusOK, infos)
}

// DownloadBackup streams a stored archive to the caller.
// @Summary Download a backup
// @Tags Backup
// @Produce application/gzip
// @Param filename path string true "Backup filename"
// @Success 200 {file} binary "Backup archive"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/backups/{filename}/download [get]
// @Security BearerAuth
func (handler *Handler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DownloadBackup")
	defer scope.End()

	filename := chi.URLParam(r, "filename")

	file, info, err := handler.manager.Open(ctx, filename)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("filename", filename).Msg("failed to open backup")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Backup downloaded by user " + user)

	response.WithFile(w, info.Filename, constant.ContentTypeTarGzip, file)
}

// RestoreBackup replaces live data with an uploaded backup file.
// @Summary Restore a backup
// @Description Restore live data from an uploaded tar.gz archive or a single collection JSON file.
// @Tags Backup
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Backup archive or collection JSON"
// @Success 200 {object} response.Message "Backup restored successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/backups/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreBackup")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("backup file is required"))

		return
	}
	defer file.Close()

	if err := handler.manager.Restore(ctx, header.Filename, file); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("filename", header.Filename).Msg("failed to restore backup")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Backup restored successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Backup restored successfully")
}

// ExportBookings downloads every booking as a spreadsheet.
// @Summary Export bookings
// @Tags Backup
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Bookings spreadsheet"
// @Failure 500 {object} response.Error
// @Router /v1/admin/export/bookings [get]
// @Security BearerAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	filename := "bookings_" + time.Now().Format(constant.DateOnlyFormat) + ".xlsx"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", constant.ContentTypeXLSX)

	if err := handler.exporter.Bookings(ctx, w); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Bookings exported by user " + user)
}

// ExportMessages downloads every contact message as a spreadsheet.
// @Summary Export messages
// @Tags Backup
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Messages spreadsheet"
// @Failure 500 {object} response.Error
// @Router /v1/admin/export/messages [get]
// @Security BearerAuth
func (handler *Handler) ExportMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportMessages")
	defer scope.End()

	filename := "messages_" + time.Now().Format(constant.DateOnlyFormat) + ".xlsx"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", constant.ContentTypeXLSX)

	if err := handler.exporter.Messages(ctx, w); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export messages")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Messages exported by user " + user)
}
