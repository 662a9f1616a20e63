package api

import (
	"net/http"

	"github.com/0xcafe-io/iz"
)

func (api *Api) Router() http.Handler {
	server := http.NewServeMux()

	// SESSION ENDPOINTS.
	server.HandleFunc("POST /api/session", iz.Bind(api.CreateSessionHandler)) // Start Session
	server.HandleFunc("DELETE /api/session", iz.Bind(api.EndSessionHandler))  // End Session

	// LESSON ENDPOINTS.
	server.HandleFunc("GET /api/lessons", iz.Bind(api.ListLessonsHandler))                    // List Lessons
	server.HandleFunc("GET /api/lessons/{lesson}", iz.Bind(api.RenderLessonHandler))          // Render Lesson
	server.HandleFunc("POST /api/lessons/{lesson}/events", iz.Bind(api.DispatchEventHandler)) // Dispatch Widget Event
	server.HandleFunc("POST /api/lessons/{lesson}/upload", api.UploadHandler)                 // Upload File into a Slot

	// FILE ENDPOINTS.
	server.HandleFunc("POST /api/images/process", api.ProcessImageHandler) // Process Image, returns PNG
	server.HandleFunc("GET /api/export/{dataset}", api.ExportHandler)      // Download Data Set

	return WithTrace(server)
}
