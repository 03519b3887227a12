package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/fuyu-hub/EduSolo-app/internal/auth"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/atterberg"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/compaction"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/consolidation"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/geostatic"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/hydraulic"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/phaseindex"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/autodesign"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/batch"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/importer"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/premium/recommend"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/report"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/stressinc"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/uscs"
	"github.com/fuyu-hub/EduSolo-app/internal/log"
	"github.com/fuyu-hub/EduSolo-app/internal/profile"
	"github.com/fuyu-hub/EduSolo-app/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/upload-avatar", profileH.UploadAvatar).Methods("POST")

	phaseindexH := &phaseindex.Handler{}
	atterbergH := &atterberg.Handler{}
	compactionH := &compaction.Handler{}
	geostaticH := &geostatic.Handler{}
	stressincH := &stressinc.Handler{}
	settlementH := &settlement.Handler{}
	consolidationH := &consolidation.Handler{}
	hydraulicH := &hydraulic.Handler{}
	uscsH := &uscs.Handler{}
	reportH := &report.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	autodesignH := &autodesign.Handler{}
	recommendH := &recommend.Handler{}

	secureApi.HandleFunc("/tools/phase-index/calc", phaseindexH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/atterberg/calc", atterbergH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/compaction/calc", compactionH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/geostatic/calc", geostaticH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/stress-increment/calc", stressincH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/settlement/calc", settlementH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/consolidation-time/calc", consolidationH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydraulic-flow/calc", hydraulicH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/uscs/calc", uscsH.Calc).Methods("POST")

	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/settlement/batch", batchH.Settlement).Methods("POST")
	secureApi.HandleFunc("/tools/settlement/import", importerH.Settlement).Methods("POST")
	secureApi.HandleFunc("/tools/settlement/max-surcharge", autodesignH.Surcharge).Methods("POST")
	secureApi.HandleFunc("/tools/consolidation-time/drainage", recommendH.Drainage).Methods("POST")

	secureApi.HandleFunc("/docs/list", func(w http.ResponseWriter, r *http.Request) {
		type Doc struct {
			Name string `json:"name"`
			Path string `json:"path"`
		}
		var docs []Doc
		fs.WalkDir(os.DirFS("./docs"), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			docs = append(docs, Doc{Name: d.Name(), Path: path})
			return nil
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs)
	}).Methods("GET")

	mux.PathPrefix("/uploads/").
		Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./static/uploads/"))))

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	profileFileServer := http.FileServer(http.Dir("./static/profile"))
	mux.Handle("/profile/{id:[0-9]+}", authEnv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/profile/index.html")
	})))
	mux.PathPrefix("/profile/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/profile", profileFileServer)))
	mux.PathPrefix("/docs/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/docs", http.FileServer(http.Dir("./docs")))))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A missing .env is fine in containers where the vars come from the runtime.
	_ = godotenv.Load()
	if err := log.Init(os.Getenv("DEBUG") == "1"); err != nil {
		panic(err)
	}
	defer log.Sync()

	db := auth.InitDB()
	defer db.Close()

	router := mux.NewRouter()
	HandleList(router, db)
	handler := CORS(router)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	certFile := os.Getenv("TLS_CERT")
	keyFile := os.Getenv("TLS_KEY")

	log.Infow("starting server", "addr", addr, "tls", certFile != "")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if certFile != "" && keyFile != "" {
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Errorf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
	log.Info("server stopped")

	wg.Wait()
}
