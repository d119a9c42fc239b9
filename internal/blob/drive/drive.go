// Package drive stores the ledger document as a single file in Google
// Drive, looked up by name the way the original document lived at a fixed
// path. Uses Service Account credentials.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"

	"gastos/internal/blob"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Store struct {
	svc  *gdrive.Service
	name string

	mu     sync.Mutex
	fileID string // cached after first lookup or create
}

// NewFromEnv creates a Drive-backed blob store for the named file using
// Service Account credentials. Uses GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context, fileName string) (*Store, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, errors.New("missing ledger file name")
	}

	credentialsJSON, err := resolveCredentials(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gdrive.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gdrive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Store{svc: svc, name: fileName}, nil
}

func resolveCredentials(ctx context.Context) ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (s *Store) Fetch(ctx context.Context) ([]byte, error) {
	id, err := s.lookupFileID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			// The file vanished between lookup and download; treat as
			// absent and drop the stale ID.
			s.mu.Lock()
			s.fileID = ""
			s.mu.Unlock()
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("download drive file %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read drive file %s: %w", s.name, err)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, data []byte) error {
	s.mu.Lock()
	id := s.fileID
	s.mu.Unlock()

	if id == "" {
		if found, err := s.findByName(ctx); err == nil {
			id = found
		} else if !errors.Is(err, blob.ErrNotFound) {
			return err
		}
	}

	if id == "" {
		created, err := s.svc.Files.Create(&gdrive.File{Name: s.name, MimeType: xlsxMIME}).
			Media(bytes.NewReader(data)).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("create drive file %s: %w", s.name, err)
		}
		s.mu.Lock()
		s.fileID = created.Id
		s.mu.Unlock()
		return nil
	}

	if _, err := s.svc.Files.Update(id, &gdrive.File{}).
		Media(bytes.NewReader(data)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update drive file %s: %w", s.name, err)
	}
	return nil
}

func (s *Store) lookupFileID(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.fileID != "" {
		id := s.fileID
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()
	return s.findByName(ctx)
}

func (s *Store) findByName(ctx context.Context) (string, error) {
	query := fmt.Sprintf("name = '%s' and trashed = false", strings.ReplaceAll(s.name, "'", "\\'"))
	list, err := s.svc.Files.List().Q(query).PageSize(1).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list drive files: %w", err)
	}
	if len(list.Files) == 0 {
		return "", blob.ErrNotFound
	}
	id := list.Files[0].Id
	s.mu.Lock()
	s.fileID = id
	s.mu.Unlock()
	return id, nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

var _ blob.Store = (*Store)(nil)
