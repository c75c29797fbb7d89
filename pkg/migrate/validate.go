package migrate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/multierr"
)

var fileNameRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

// ValidateDir lints every SQL migration in dir and collects all problems
// instead of stopping at the first one. Goose must also be able to load the
// directory.
func ValidateDir(dir string) error {
	if dir == "" {
		return errors.New("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var errs error
	byVersion := make(map[int64]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" {
			continue
		}
		if !fileNameRe.MatchString(name) {
			errs = multierr.Append(errs, fmt.Errorf("%s: name must look like YYYYMMDDHHMMSS_snake_name.sql", name))
			continue
		}
		version, err := goose.NumericComponent(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if prev, dup := byVersion[version]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: version %d already used by %s", name, version, prev))
			continue
		}
		byVersion[version] = name
		errs = multierr.Append(errs, checkAnnotations(filepath.Join(dir, name)))
	}
	if errs != nil {
		return errs
	}

	goose.SetBaseFS(nil)
	if _, err := goose.CollectMigrations(dir, 0, goose.MaxVersion); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	return nil
}

// checkAnnotations requires an Up section followed by a Down section, with
// every StatementBegin closed before the next section starts.
func checkAnnotations(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	var sawUp, sawDown, inStatement bool
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		annotation, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "-- +goose ")
		if !ok {
			continue
		}
		switch strings.Fields(annotation)[0] {
		case "Up":
			if sawUp || sawDown {
				return fmt.Errorf("%s:%d: unexpected Up section", name, line)
			}
			sawUp = true
		case "Down":
			if !sawUp || sawDown {
				return fmt.Errorf("%s:%d: Down section must follow a single Up section", name, line)
			}
			if inStatement {
				return fmt.Errorf("%s:%d: StatementBegin not closed before Down", name, line)
			}
			sawDown = true
		case "StatementBegin":
			if inStatement {
				return fmt.Errorf("%s:%d: nested StatementBegin", name, line)
			}
			inStatement = true
		case "StatementEnd":
			if !inStatement {
				return fmt.Errorf("%s:%d: StatementEnd without StatementBegin", name, line)
			}
			inStatement = false
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	switch {
	case !sawUp:
		return fmt.Errorf("%s: missing -- +goose Up", name)
	case !sawDown:
		return fmt.Errorf("%s: missing -- +goose Down", name)
	case inStatement:
		return fmt.Errorf("%s: unterminated StatementBegin", name)
	}
	return nil
}
