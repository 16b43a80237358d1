package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/LabTrack/LT-Backend/internal/auth"
	"github.com/LabTrack/LT-Backend/internal/db"
	"github.com/LabTrack/LT-Backend/internal/directory"
	"github.com/LabTrack/LT-Backend/internal/insights"
	"github.com/LabTrack/LT-Backend/internal/labs"
	"github.com/LabTrack/LT-Backend/internal/middleware"
	"github.com/LabTrack/LT-Backend/internal/reports"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	labs.Init()
	insights.Init()
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/directory", directory.SetupRoutes())
	r.Mount("/labs", labs.SetupRoutes())
	r.Mount("/reports", reports.SetupRoutes())
	r.Mount("/insights", insights.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
