package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"hotel-service/domain"
)

// FileStore keeps the whole catalog and reservation set in one JSON
// snapshot on local disk.
type FileStore struct {
	path   string
	logger *logrus.Logger
}

type snapshot struct {
	Rooms        domain.Rooms                   `json:"rooms"`
	Reservations map[string]*domain.Reservation `json:"reservations"`
}

func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Load reads the snapshot file. A missing or corrupt file is not fatal,
// the engine starts from an empty state instead.
func (fs *FileStore) Load(ctx context.Context) (domain.Rooms, map[string]*domain.Reservation, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.logger.WithFields(logrus.Fields{"path": "repository/fileStore"}).Info("No existing data found. Starting with a fresh system.")
			return domain.Rooms{}, map[string]*domain.Reservation{}, nil
		}
		fs.logger.WithFields(logrus.Fields{"path": "repository/fileStore"}).Error("Error loading data: ", err)
		return domain.Rooms{}, map[string]*domain.Reservation{}, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fs.logger.WithFields(logrus.Fields{"path": "repository/fileStore"}).Error("Error loading data, starting fresh: ", err)
		return domain.Rooms{}, map[string]*domain.Reservation{}, nil
	}

	if snap.Rooms == nil {
		snap.Rooms = domain.Rooms{}
	}
	if snap.Reservations == nil {
		snap.Reservations = map[string]*domain.Reservation{}
	}
	return snap.Rooms, snap.Reservations, nil
}

// Save writes the snapshot through a temp file and rename so a failed
// write never truncates the previous state.
func (fs *FileStore) Save(ctx context.Context, rooms domain.Rooms, reservations map[string]*domain.Reservation) error {
	snap := snapshot{
		Rooms:        rooms,
		Reservations: reservations,
	}
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), "reservations-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fs.path)
}
