package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/imagefx"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
)

// RESPONSES:

type SessionCreatedResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	ExpireAt string `json:"expire_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LessonItem struct {
	Number int               `json:"number"`
	ID     string            `json:"id"`
	Config render.PageConfig `json:"config"`
}

type ListLessonsResponse struct {
	Lessons []LessonItem `json:"lessons"`
}

func SessionToHttp(s session.Session) SessionCreatedResponse {
	return SessionCreatedResponse{
		Message:  "Session started",
		Token:    s.Token,
		ExpireAt: s.ExpireAt.Format(time.RFC3339),
	}
}

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrAuth:
		return 401 // unauthorized
	case appErrors.ErrAccessDenied:
		return 403 // access denied
	case appErrors.ErrConflict:
		return 409 // conflict
	default:
		return 500 //internal error
	}
}

// errorBody hides everything but coded errors from clients.
func errorBody(err error) appErrors.ErrorResponse {
	var appErr appErrors.ErrorResponse
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrInternal,
		Message: "Something went wrong, please try again later.",
	}
}

// writeError is the plain handler counterpart of the iz error responses.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusFromError(err))
	_ = json.NewEncoder(w).Encode(errorBody(err))
}

// bearer accepts both a bare token and "Bearer <token>".
func bearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// ImageOptionsFromForm reads processing options from multipart fields.
// Missing fields keep the defaults, which leave the image untouched.
func ImageOptionsFromForm(form url.Values) (imagefx.Options, error) {
	opts := imagefx.DefaultOptions()

	if v := form.Get("resize"); v != "" {
		resize, err := strconv.ParseBool(v)
		if err != nil {
			return opts, appErrors.InvalidInput("invalid resize flag: %s", v)
		}
		opts.Resize = resize
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"rotation", &opts.Rotation},
	}
	for _, f := range ints {
		v := form.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, appErrors.InvalidInput("invalid %s: %s", f.name, v)
		}
		*f.dst = n
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"brightness", &opts.Brightness},
		{"contrast", &opts.Contrast},
	}
	for _, f := range floats {
		v := form.Get(f.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, appErrors.InvalidInput("invalid %s: %s", f.name, v)
		}
		*f.dst = x
	}
	return opts, nil
}
