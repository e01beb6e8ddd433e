package http

import (
	"bufio"
	"context"

	"drive-rag/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NDJSONContentType is the media type of the sync progress stream
const NDJSONContentType = "application/x-ndjson"

// ListDrive godoc
// @Summary List a Drive folder
// @Description Direct children of the folder, folders first
// @Tags DRIVE
// @Produce json
// @Param x-session-id header string true "session key"
// @Param folder_id query string false "folder id, root by default"
// @Success 200 {object} ListFilesResponse
// @Failure 400 {object} ResponseBody
// @Failure 401 {object} ResponseBody
// @Router /api/drive/list [get]
func (hdl *HTTPHandler) ListDrive(c *fiber.Ctx) error {
	var query ListFolderQuery
	if err := c.QueryParser(&query); err != nil {
		return errorResponse(c, domain.ErrInvalidRequest)
	}

	files, err := hdl.drive.ListFolder(c.UserContext(), sessionKey(c), query.FolderID)
	if err != nil {
		return errorResponse(c, err)
	}

	response := ListFilesResponse{Files: make([]FileResponse, 0, len(files))}
	for _, file := range files {
		response.Files = append(response.Files, FileResponse{
			ID:       file.ID,
			Name:     file.Name,
			MimeType: file.MimeType,
			IconLink: file.IconLink,
		})
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

// Sync godoc
// @Summary Sync files into a knowledge store
// @Description Streams one JSON progress event per line until the sync ends
// @Tags DRIVE
// @Accept application/json
// @Produce application/x-ndjson
// @Param x-session-id header string true "session key"
// @Param Sync body SyncRequest true "Sync"
// @Success 200 {object} domain.ProgressEvent
// @Failure 400 {object} ResponseBody
// @Failure 401 {object} ResponseBody
// @Failure 409 {object} ResponseBody
// @Router /api/sync [post]
func (hdl *HTTPHandler) Sync(c *fiber.Ctx) error {
	key := sessionKey(c)
	if key == "" {
		return errorResponse(c, domain.ErrSessionKeyMissing)
	}

	var request SyncRequest
	if err := hdl.bind(c, &request); err != nil {
		return errorResponse(c, err)
	}

	items := make([]domain.SyncItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, domain.SyncItem{ID: item.ID, Name: item.Name, MimeType: item.MimeType})
	}

	// The stream outlives the handler, so it gets its own context that is
	// cancelled once the client stops reading.
	ctx, cancel := context.WithCancel(context.Background())

	events, err := hdl.sync.Sync(ctx, domain.SyncRequest{SessionKey: key, Items: items})
	if err != nil {
		cancel()
		return errorResponse(c, err)
	}

	encode := c.App().Config().JSONEncoder

	c.Set(fiber.HeaderContentType, NDJSONContentType)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Status(fiber.StatusOK).Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		disconnected := false
		for event := range events {
			if disconnected {
				continue
			}

			line, err := encode(event)
			if err != nil {
				logrus.Errorf("Failed to encode progress event: %v", err)
				continue
			}

			if err := writeLine(w, line); err != nil {
				logrus.Warnf("Sync stream for %s closed by client: %v", key, err)
				disconnected = true
				cancel()
			}
		}
	})

	return nil
}

// writeLine writes one ndjson line and flushes it to the client
func writeLine(w *bufio.Writer, line []byte) error {
	if _, err := w.Write(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
