package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/cockroachdb/errors"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// yaml files are decoded with yaml.v3, everything else goes through json5
// (which is a superset of json).
func unmarshal(ext string, contents []byte, out any) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(contents, out)
	default:
		return json5.Unmarshal(contents, out)
	}
}

// readLayer decodes the file at `path` into a fresh T. found is false when
// the file does not exist or is empty.
func readLayer[T any](path string) (layer T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(contents) == 0 {
		return layer, false, nil
	}
	err = unmarshal(filepath.Ext(path), contents, &layer)
	if err != nil {
		return layer, false, errors.Wrapf(err, "decode %s", path)
	}
	return layer, true, nil
}

// LocalPath returns the override file read alongside `name`,
// "config.yaml" becomes "config.local.yaml".
func LocalPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadConfig reads the configuration file `name` (which must carry its
// extension) and merges LocalPath(name) over it when that exists.
// os.ErrNotExist is returned as is when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	out, foundBase, err := readLayer[T](name)
	if err != nil {
		return out, err
	}

	localPath := LocalPath(name)
	override, foundLocal, err := readLayer[T](localPath)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, errors.Wrapf(err, "merge %s", localPath)
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !foundBase && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig, but it walks up from the working directory
// to the filesystem root and reads the first directory containing `name`.
func ReadRecursively[T any](name string) (T, error) {
	var empty T

	current, err := os.Getwd()
	if err != nil {
		return empty, err
	}
	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if err == nil || !os.IsNotExist(err) {
			return config, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return empty, os.ErrNotExist
		}
		current = parent
	}
}
