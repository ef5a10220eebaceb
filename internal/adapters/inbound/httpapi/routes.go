package httpapi

import "net/http"

func RegisterDiagramRoutes(mux *http.ServeMux, handler *DiagramHandler) {
	mux.HandleFunc("POST /api/uml/generate", handler.Generate)
	mux.HandleFunc("POST /api/uml/image", handler.Image)
}

func RegisterJavadocRoutes(mux *http.ServeMux, handler *JavadocHandler) {
	mux.HandleFunc("POST /api/javadoc/generate", handler.Generate)
	mux.HandleFunc("POST /api/javadoc/github", handler.Repository)
}
