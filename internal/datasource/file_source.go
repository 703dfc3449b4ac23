package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/models"
)

// FileSource reads football and tennis tables from local CSV files
type FileSource struct {
	footballPath string
	tennisPath   string
	reader       tableReader
}

// NewFileSource creates a source over the given paths. Either may be empty.
func NewFileSource(footballPath, tennisPath string, log *logrus.Logger) *FileSource {
	return &FileSource{
		footballPath: footballPath,
		tennisPath:   tennisPath,
		reader:       newTableReader("file", log),
	}
}

// Name returns the name of the data source
func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) open(path, sport string) (*os.File, error) {
	if path == "" {
		return nil, NewDataSourceError(s.Name(), ErrCodeNotConfigured, sport+" path is empty", ErrNotConfigured)
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, fmt.Sprintf("%s does not exist", path), err)
	}
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, fmt.Sprintf("failed to open %s", path), err)
	}
	return file, nil
}

// LoadFootball reads the football table
func (s *FileSource) LoadFootball(ctx context.Context) ([]models.FootballMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := s.open(s.footballPath, SportFootball)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return s.reader.football(file, s.footballPath)
}

// LoadTennis reads the tennis table
func (s *FileSource) LoadTennis(ctx context.Context) ([]models.TennisMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := s.open(s.tennisPath, SportTennis)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return s.reader.tennis(file, s.tennisPath)
}
