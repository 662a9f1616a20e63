package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/board"
	"github.com/fatali-fataliyev/lesson_board/internal/contextutil"
	"github.com/fatali-fataliyev/lesson_board/internal/lessons"
	"github.com/fatali-fataliyev/lesson_board/logging"
)

// Room left for multipart boundaries and the other form fields.
const MULTIPART_OVERHEAD = 1 << 20

const MAX_FORM_MEMORY = 8 << 20

type Api struct {
	Service   *board.Board
	MaxUpload int64
}

func NewApi(service *board.Board, maxUpload int64) *Api {
	return &Api{
		Service:   service,
		MaxUpload: maxUpload,
	}
}

var errNoToken = appErrors.ErrorResponse{
	Code:    appErrors.ErrAuth,
	Message: "Authorization header is required.",
}

func failure(r *iz.Request, err error) iz.Responder {
	status := httpStatusFromError(err)
	if status == 500 {
		logging.Logger.Errorf("[TraceID=%s] | %s %s failed | Error: %v", contextutil.TraceIDFromContext(r.Context()), r.Method, r.URL.Path, err)
	}
	return iz.Respond().Status(status).JSON(errorBody(err))
}

func (api *Api) CreateSessionHandler(r *iz.Request) iz.Responder {
	s, err := api.Service.CreateSession(r.Context())
	if err != nil {
		return failure(r, err)
	}
	return iz.Respond().Status(201).JSON(SessionToHttp(s))
}

func (api *Api) EndSessionHandler(r *iz.Request) iz.Responder {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		return failure(r, errNoToken)
	}

	if err := api.Service.EndSession(r.Context(), token); err != nil {
		return failure(r, err)
	}
	return iz.Respond().Status(200).JSON(MessageResponse{Message: "Session ended."})
}

func (api *Api) ListLessonsHandler(r *iz.Request) iz.Responder {
	summaries := api.Service.Lessons()
	resp := ListLessonsResponse{Lessons: make([]LessonItem, 0, len(summaries))}
	for _, s := range summaries {
		resp.Lessons = append(resp.Lessons, LessonItem{Number: s.Number, ID: string(s.ID), Config: s.Config})
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) RenderLessonHandler(r *iz.Request) iz.Responder {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		return failure(r, errNoToken)
	}

	page, err := api.Service.Render(r.Context(), token, r.PathValue("lesson"))
	if err != nil {
		return failure(r, err)
	}
	return iz.Respond().Status(200).JSON(page)
}

func (api *Api) DispatchEventHandler(r *iz.Request) iz.Responder {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		return failure(r, errNoToken)
	}

	var ev lessons.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		return failure(r, appErrors.InvalidInput("invalid request body: %s", err.Error()))
	}
	if ev.Name == "" {
		return failure(r, appErrors.InvalidInput("event name is required"))
	}

	page, err := api.Service.Dispatch(r.Context(), token, r.PathValue("lesson"), ev)
	if err != nil {
		return failure(r, err)
	}
	return iz.Respond().Status(200).JSON(page)
}

// UploadHandler takes a multipart form with a "file" and the "slot" it is
// meant for, and answers with the re-rendered lesson.
func (api *Api) UploadHandler(w http.ResponseWriter, r *http.Request) {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		writeError(w, errNoToken)
		return
	}

	data, fileName, err := api.readFormFile(w, r, "file")
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := api.Service.Upload(r.Context(), token, r.PathValue("lesson"), r.FormValue("slot"), fileName, data)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write upload response | Error: %v", contextutil.TraceIDFromContext(r.Context()), err)
	}
}

// ProcessImageHandler returns the uploaded "image" as PNG after applying the
// options sent alongside it.
func (api *Api) ProcessImageHandler(w http.ResponseWriter, r *http.Request) {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		writeError(w, errNoToken)
		return
	}

	data, _, err := api.readFormFile(w, r, "image")
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := ImageOptionsFromForm(r.MultipartForm.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := api.Service.ProcessImage(r.Context(), token, data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="processed_image.png"`)
	if _, err := w.Write(png); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write processed image | Error: %v", contextutil.TraceIDFromContext(r.Context()), err)
	}
}

func (api *Api) ExportHandler(w http.ResponseWriter, r *http.Request) {
	token := contextutil.TokenFromContext(r.Context())
	if token == "" {
		writeError(w, errNoToken)
		return
	}

	data, fileName, mime, err := api.Service.Export(r.Context(), token, r.PathValue("dataset"), r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	if _, err := w.Write(data); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write %s | Error: %v", contextutil.TraceIDFromContext(r.Context()), fileName, err)
	}
}

func (api *Api) readFormFile(w http.ResponseWriter, r *http.Request, field string) ([]byte, string, error) {
	if api.MaxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, api.MaxUpload+MULTIPART_OVERHEAD)
	}
	if err := r.ParseMultipartForm(MAX_FORM_MEMORY); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", appErrors.InvalidInput("file is larger than %d MB", api.MaxUpload>>20)
		}
		return nil, "", appErrors.InvalidInput("invalid multipart form: %v", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", appErrors.InvalidInput("form field %q with a file is required", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, header.Filename, nil
}
