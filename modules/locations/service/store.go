package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"scheduling-gateway/core/config"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CityTypes maps account branch ("main"/"parents") to locationKey ->
// appointment-type id. Values are kept raw and funneled through
// ParseIdentifier because the documents mix strings and numbers.
type CityTypes map[string]map[string]any

// LocationConfig is one entry of the location-metadata document.
type LocationConfig struct {
	Name              string   `json:"name"`
	Account           string   `json:"account"`
	AppointmentTypeID any      `json:"appointmentTypeId"`
	Zips              []string `json:"zips"`
	Calendars         []any    `json:"calendars"`
}

// DocumentLoader fetches one named configuration document.
type DocumentLoader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// ConfigStore holds the two static configuration documents, loaded lazily on
// first use and kept for the process lifetime until an explicit reload.
type ConfigStore struct {
	static config.StaticConfig
	loader DocumentLoader

	mu        sync.RWMutex
	loaded    bool
	cityTypes CityTypes
	locations map[string]LocationConfig
	zipIndex  map[string]string
}

func NewConfigStore(static config.StaticConfig) *ConfigStore {
	var loader DocumentLoader
	if static.Bucket != "" {
		loader = newS3Loader(static)
	} else {
		loader = fileLoader{}
	}
	return &ConfigStore{static: static, loader: loader}
}

// NewConfigStoreWithLoader wires a custom loader. Test seam.
func NewConfigStoreWithLoader(static config.StaticConfig, loader DocumentLoader) *ConfigStore {
	return &ConfigStore{static: static, loader: loader}
}

// CityTypes returns the city-types document, loading it if needed.
func (s *ConfigStore) CityTypes(ctx context.Context) (CityTypes, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cityTypes, nil
}

// Locations returns the location-metadata document keyed by location key.
func (s *ConfigStore) Locations(ctx context.Context) (map[string]LocationConfig, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locations, nil
}

// LookupLocation finds a location entry trying the spaced, compact and slug
// key forms in that order. The returned key is the form that matched.
func (s *ConfigStore) LookupLocation(ctx context.Context, location string) (LocationConfig, string, bool, error) {
	locations, err := s.Locations(ctx)
	if err != nil {
		return LocationConfig{}, "", false, err
	}
	for _, form := range KeyForms(location) {
		if entry, ok := locations[form]; ok {
			return entry, form, true, nil
		}
	}
	return LocationConfig{}, "", false, nil
}

// LocationForZip maps a 5-digit ZIP onto its configured location key.
func (s *ConfigStore) LocationForZip(ctx context.Context, zip string) (string, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.zipIndex[zip]
	return key, ok, nil
}

// Reload re-reads both documents. The previous tables stay in place if
// either read fails.
func (s *ConfigStore) Reload(ctx context.Context) error {
	cityTypesName, locationsName := s.documentNames()

	rawCityTypes, err := s.loader.Load(ctx, cityTypesName)
	if err != nil {
		return errors.NewAppError(errors.ErrConfigMissing,
			fmt.Sprintf("Failed to load city-types document %q", cityTypesName), err)
	}
	rawLocations, err := s.loader.Load(ctx, locationsName)
	if err != nil {
		return errors.NewAppError(errors.ErrConfigMissing,
			fmt.Sprintf("Failed to load locations document %q", locationsName), err)
	}

	var cityTypes CityTypes
	if err := json.Unmarshal(rawCityTypes, &cityTypes); err != nil {
		return errors.NewAppError(errors.ErrConfigMissing, "Malformed city-types document", err)
	}
	var locations map[string]LocationConfig
	if err := json.Unmarshal(rawLocations, &locations); err != nil {
		return errors.NewAppError(errors.ErrConfigMissing, "Malformed locations document", err)
	}

	// ZIPs claimed by several locations go to the lexicographically first
	// key, so a reload never flips the mapping.
	keys := make([]string, 0, len(locations))
	for key := range locations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	zipIndex := make(map[string]string)
	for _, key := range keys {
		for _, zip := range locations[key].Zips {
			if _, ok := zipIndex[zip]; !ok {
				zipIndex[zip] = key
			}
		}
	}

	s.mu.Lock()
	s.cityTypes = cityTypes
	s.locations = locations
	s.zipIndex = zipIndex
	s.loaded = true
	s.mu.Unlock()

	logger.Info("ConfigStore:Reloaded",
		"locations", len(locations),
		"zips", len(zipIndex))
	return nil
}

func (s *ConfigStore) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

func (s *ConfigStore) documentNames() (string, string) {
	if s.static.Bucket != "" {
		return s.static.CityTypesKey, s.static.LocationsKey
	}
	return s.static.CityTypesPath, s.static.LocationsPath
}

// fileLoader reads documents from the local filesystem.
type fileLoader struct{}

func (fileLoader) Load(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

// s3Loader reads documents from a configured bucket with static credentials.
type s3Loader struct {
	bucket string
	client *s3.Client
}

func newS3Loader(static config.StaticConfig) *s3Loader {
	client := s3.New(s3.Options{
		Region:      static.Region,
		Credentials: credentials.NewStaticCredentialsProvider(static.AccessKey, static.SecretKey, ""),
	})
	return &s3Loader{bucket: static.Bucket, client: client}
}

func (l *s3Loader) Load(ctx context.Context, name string) ([]byte, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", l.bucket, name, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
