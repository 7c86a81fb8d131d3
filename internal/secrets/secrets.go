// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files or
// from a dotenv file. In the directory form each file is one secret: the
// filename is the key name and the trimmed contents are the value.
//
// Supported key files: youtube-api-key, google-books-api-key.
// Supported dotenv keys: YOUTUBE_API_KEY, GOOGLE_BOOKS_API_KEY.
package secrets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Key names as they appear in .secrets/ and (lower-cased) in .env.
const (
	YouTubeKeyFile = "youtube-api-key"
	BooksKeyFile   = "google-books-api-key"
	YouTubeEnvKey  = "youtube_api_key"
	BooksEnvKey    = "google_books_api_key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged at warn level but do not abort.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "reading secrets directory %s", dir)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv parses a KEY=value file and returns its entries with
// lower-cased keys. A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "reading dotenv file %s", path)
	}

	out := make(map[string]string)
	for _, key := range v.AllKeys() {
		if value := strings.TrimSpace(v.GetString(key)); value != "" {
			out[key] = value
		}
	}
	return out, nil
}

// Set is the merged view of the .secrets/ directory and the .env file.
type Set struct {
	files  map[string]string
	dotenv map[string]string
}

// NewSet combines the two sources. Either map may be nil.
func NewSet(files, dotenv map[string]string) Set {
	return Set{files: files, dotenv: dotenv}
}

// Lookup returns the secret stored under fileKey in the directory, falling
// back to envKey in the dotenv file.
func (s Set) Lookup(fileKey, envKey string) (string, bool) {
	if v, ok := s.files[fileKey]; ok && v != "" {
		return v, true
	}
	if v, ok := s.dotenv[envKey]; ok && v != "" {
		return v, true
	}
	return "", false
}

// Names returns the source-qualified names of every loaded secret, without
// values, for diagnostics.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.files)+len(s.dotenv))
	for k := range s.files {
		names = append(names, ".secrets/"+k)
	}
	for k := range s.dotenv {
		names = append(names, ".env:"+strings.ToUpper(k))
	}
	return names
}
