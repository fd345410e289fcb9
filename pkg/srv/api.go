/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"oma.be/seismo/go-evt/pkg/catalog"
	"oma.be/seismo/go-evt/pkg/config"
	"oma.be/seismo/go-evt/pkg/log"
)

// ApiServer serves the recording catalog over HTTP.
type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	catalog *catalog.Catalog
}

func NewApiServer(ctx context.Context, cfg *config.Config) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.ApiAddress, cfg.ApiPort)
	c, err := catalog.NewCatalog(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		catalog: c,
	}
	return s, nil
}

// Run configures the routes and blocks serving requests.
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.ApiAddress, s.Config.ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.ApiAddress, s.Config.ApiPort),
	}
	defer s.catalog.Close()
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/recordings", s.handleList()).Methods("GET")
	subRouter.HandleFunc("/recordings/{id}", s.handleGet()).Methods("GET")
}

func (s *ApiServer) handleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.catalog.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func (s *ApiServer) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling catalog get request: id: %s", vars["id"])
		entry, err := s.catalog.Get(vars["id"])
		if err != nil {
			var notFound catalog.ErrEntryNotFound
			if errors.As(err, &notFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entry)
	}
}
