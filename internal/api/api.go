package api

import (
	"github.com/elijahkato/booklab-backend/internal/config"
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

type API struct {
	Db      *mongodb.DB
	Catalog *googlebooks.Client
	Cfg     config.Config
}

func NewAPI(db *mongodb.DB, catalog *googlebooks.Client, cfg config.Config) *API {
	return &API{Db: db, Catalog: catalog, Cfg: cfg}
}
