package storage

import "github.com/Veraticus/gilded-rose/internal/service"

var _ service.Storage = (*SQLiteStorage)(nil)
