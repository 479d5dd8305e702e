package alerthist

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"alertd/internal/alerthist/interfaces"
	"alertd/internal/models"
	"alertd/internal/providers"
)

type FileManagerInterface interface {
	SaveToFile(fileName string) error
	LoadFromFile(fileName string) error
	Close()
}

// FileManager writes the full {history, counters} snapshot on every save
// and restores it on load. Saves are atomic: tmp file, fsync, rename.
// saveMu serializes writers: the service persists on every mutation and the
// scheduler runs its own periodic save, and both share one tmp path.
type FileManager struct {
	store      *models.AlertStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	saveMu     sync.Mutex
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.AlertStore, logger providers.Logger) FileManagerInterface {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	snapshot := f.store.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		// Snapshots written before compression was introduced are plain
		// JSON on disk.
		decompressedData = data
	}

	// Current format: versioned envelope.
	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err == nil && snapshot.Records != nil {
		if snapshot.Counters == nil {
			snapshot.Counters = make(map[string]int)
		}
		f.store.Restore(&snapshot)
		return nil
	}

	// Legacy format: bare record array, no counters.
	f.logger.Warnf(providers.TypeApp, "Inconsistent snapshot found, try to migrate from old data format")
	var records []models.AlertRecord
	if err := json.Unmarshal(decompressedData, &records); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	f.store.Restore(&models.Snapshot{
		Version:  models.SnapshotVersion,
		Records:  records,
		Counters: make(map[string]int),
	})
	return nil
}
