package routes

import (
	"searchpaper/internal/handlers"
	"searchpaper/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	documentHandler *handlers.DocumentHandler,
	folderHandler *handlers.FolderHandler,
	searchHandler *handlers.SearchHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Документы ---
	// zip раньше /{id}, иначе mux примет "zip" за id
	api.HandleFunc("/documents/zip", documentHandler.ZipDocuments).Methods("GET")
	api.HandleFunc("/documents/zip/{folderId}", documentHandler.ZipDocuments).Methods("GET")

	api.HandleFunc("/documents", documentHandler.ListDocuments).Methods("GET")
	api.HandleFunc("/documents", documentHandler.UploadDocuments).Methods("POST")
	api.HandleFunc("/documents/{folderId}", documentHandler.UploadDocuments).Methods("POST")
	api.HandleFunc("/documents/{id}", documentHandler.DownloadDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", documentHandler.DeleteDocument).Methods("DELETE")

	// --- Папки ---
	api.HandleFunc("/folders/count", folderHandler.CountFolders).Methods("GET")
	api.HandleFunc("/folders", folderHandler.ListFolders).Methods("GET")
	api.HandleFunc("/folders", folderHandler.CreateFolder).Methods("POST")
	api.HandleFunc("/folders/{id}", folderHandler.GetFolder).Methods("GET")
	api.HandleFunc("/folders/{id}", folderHandler.UpdateFolder).Methods("PUT")
	api.HandleFunc("/folders/{id}", folderHandler.DeleteFolder).Methods("DELETE")

	// --- Поиск ---
	api.HandleFunc("/search", searchHandler.Search).Methods("GET")
}
