package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/infras/s3"
	"yadoya/internal/domains/sitecontent/service"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
	"yadoya/shared/metrics"
)

const (
	archivePrefix = "json_data_backup_"
	archiveSuffix = ".tar.gz"

	timestampLayout = "20060102_150405"
)

// collectionMembers are the archive member names taken from the data
// directory. The credentials file and homepage copy document live
// elsewhere and are added separately.
var collectionMembers = []string{
	constant.FileRooms,
	constant.FileBookings,
	constant.FileMessages,
	constant.FileAdmins,
	constant.FileNews,
	constant.FileSiteContent,
}

type Info struct {
	Filename      string `json:"filename"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"size_formatted"`
	CreatedAt     string `json:"created"`
}

type Manager interface {
	Create(ctx context.Context) (Info, error)
	List(ctx context.Context) ([]Info, error)
	Open(ctx context.Context, filename string) (io.ReadCloser, Info, error)
	Restore(ctx context.Context, filename string, upload io.Reader) error
	Prune(ctx context.Context) error
}

type managerImpl struct {
	cfg  *config.Config
	s3   s3.S3
	otel otel.Otel
}

func New(cfg *config.Config, s3 s3.S3, otel otel.Otel) Manager {
	return &managerImpl{
		cfg:  cfg,
		s3:   s3,
		otel: otel,
	}
}

// Create archives every live data file into a fresh tar.gz below the
// backup directory. The archive is assembled in a temp file and
// renamed into place so a crash never leaves a half-written backup
// behind. Old archives beyond the retention limit are pruned.
func (m *managerImpl) Create(ctx context.Context) (info Info, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)
	defer func() { metrics.ObserveBackup("create", err) }()

	if _, err = os.Stat(m.cfg.Data.Dir); err != nil {
		return info, failure.InternalError(fmt.Errorf("data directory is not accessible: %w", err)) //nolint:wrapcheck
	}

	if err = os.MkdirAll(m.cfg.Backup.Dir, 0o755); err != nil {
		return info, failure.InternalError(err) //nolint:wrapcheck
	}

	filename := archivePrefix + time.Now().Format(timestampLayout) + archiveSuffix
	target := filepath.Join(m.cfg.Backup.Dir, filename)

	tmp, err := os.CreateTemp(m.cfg.Backup.Dir, filename+".*")
	if err != nil {
		return info, failure.InternalError(err) //nolint:wrapcheck
	}
	defer os.Remove(tmp.Name())

	if err = m.writeArchive(tmp); err != nil {
		tmp.Close()

		return info, failure.InternalError(err) //nolint:wrapcheck
	}

	if err = tmp.Close(); err != nil {
		return info, failure.InternalError(err) //nolint:wrapcheck
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return info, failure.InternalError(err) //nolint:wrapcheck
	}

	if err = m.Prune(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to prune old backups")
		err = nil
	}

	stat, statErr := os.Stat(target)
	if statErr != nil {
		return info, failure.InternalError(statErr) //nolint:wrapcheck
	}

	info = Info{
		Filename:      filename,
		Size:          stat.Size(),
		SizeFormatted: FormatFileSize(stat.Size()),
		CreatedAt:     stat.ModTime().Format(constant.DateFormat),
	}

	m.uploadOffsite(ctx, filename, target)

	return info, nil
}

// writeArchive streams the data files into a gzip-compressed tar.
// Missing source files are skipped, an empty deployment still backs up.
func (m *managerImpl) writeArchive(w io.Writer) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	add := func(path, member string) error {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", member, err)
		}

		header := &tar.Header{
			Name:    member,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: time.Now(),
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write archive header for %s: %w", member, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("failed to write archive member %s: %w", member, err)
		}

		return nil
	}

	for _, member := range collectionMembers {
		if err := add(filepath.Join(m.cfg.Data.Dir, member), member); err != nil {
			return err
		}
	}

	if err := add(m.cfg.Data.UsersFile, constant.FileUsers); err != nil {
		return err
	}

	if err := add(service.HomeContentPath(m.cfg), constant.FileHomeContent); err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize compression: %w", err)
	}

	return nil
}

// uploadOffsite pushes a copy of the archive to object storage when
// configured. Failures are logged, a backup that only exists locally
// is still a backup.
func (m *managerImpl) uploadOffsite(ctx context.Context, filename, path string) {
	if !m.cfg.External.S3.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("filename", filename).Msg("failed to read backup for offsite upload")

			return
		}

		url, err := m.s3.UploadFileBytes(c, m.cfg.External.S3.BucketName, "backups", filename, constant.ContentTypeTarGzip, data)
		if err != nil {
			log.Error().Err(err).Str("filename", filename).Msg("failed to upload backup offsite")

			return
		}

		log.Info().Str("url", url).Msg("backup uploaded offsite")
	}()
}

// List returns the archives newest first.
func (m *managerImpl) List(ctx context.Context) (infos []Info, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := os.ReadDir(m.cfg.Backup.Dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, failure.InternalError(err) //nolint:wrapcheck
	}

	type listed struct {
		info    Info
		modTime time.Time
	}

	archives := []listed{}
	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			continue
		}

		archives = append(archives, listed{
			info: Info{
				Filename:      entry.Name(),
				Size:          fileInfo.Size(),
				SizeFormatted: FormatFileSize(fileInfo.Size()),
				CreatedAt:     fileInfo.ModTime().Format(constant.DateFormat),
			},
			modTime: fileInfo.ModTime(),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].modTime.After(archives[j].modTime)
	})

	infos = make([]Info, 0, len(archives))
	for _, archive := range archives {
		infos = append(infos, archive.info)
	}

	return infos, nil
}

// Open hands out a reader over a stored archive. The filename must
// resolve to a direct child of the backup directory.
func (m *managerImpl) Open(ctx context.Context, filename string) (rc io.ReadCloser, info Info, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Open")
	defer scope.End()
	defer scope.TraceIfError(err)

	path, err := m.resolve(filename)
	if err != nil {
		return nil, info, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, info, failure.NotFound("backup not found") //nolint:wrapcheck
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, info, failure.InternalError(err) //nolint:wrapcheck
	}

	info = Info{
		Filename:      filename,
		Size:          stat.Size(),
		SizeFormatted: FormatFileSize(stat.Size()),
		CreatedAt:     stat.ModTime().Format(constant.DateFormat),
	}

	return file, info, nil
}

// resolve guards against path traversal: the requested name must be a
// bare archive filename, never a path.
func (m *managerImpl) resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", failure.BadRequestFromString("invalid backup filename") //nolint:wrapcheck
	}

	if !isArchiveName(filename) {
		return "", failure.BadRequestFromString("invalid backup filename") //nolint:wrapcheck
	}

	return filepath.Join(m.cfg.Backup.Dir, filename), nil
}

func isArchiveName(name string) bool {
	return strings.HasPrefix(name, archivePrefix) && strings.HasSuffix(name, archiveSuffix)
}

// Restore replaces live data files with the uploaded backup content.
// Archives replace every member they contain; a lone JSON file
// replaces just that collection. Uploads are parsed and unpacked in a
// temp directory first so a malformed file never touches live state.
func (m *managerImpl) Restore(ctx context.Context, filename string, upload io.Reader) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Restore")
	defer scope.End()
	defer scope.TraceIfError(err)
	defer func() { metrics.ObserveBackup("restore", err) }()

	name := filepath.Base(strings.TrimSpace(filename))
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, archiveSuffix):
		return m.restoreArchive(upload)
	case strings.HasSuffix(lower, ".json"):
		return m.restoreSingle(name, upload)
	default:
		return failure.BadRequestFromString("only tar.gz or JSON files can be restored") //nolint:wrapcheck
	}
}

func (m *managerImpl) restoreArchive(upload io.Reader) error {
	tempDir, err := os.MkdirTemp("", "restore")
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}
	defer os.RemoveAll(tempDir)

	gz, err := gzip.NewReader(upload)
	if err != nil {
		return failure.BadRequest(fmt.Errorf("invalid backup archive: %w", err)) //nolint:wrapcheck
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return failure.BadRequest(fmt.Errorf("invalid backup archive: %w", err)) //nolint:wrapcheck
		}

		member := filepath.Base(header.Name)
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(member, ".json") {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return failure.BadRequest(fmt.Errorf("invalid backup archive: %w", err)) //nolint:wrapcheck
		}

		if err := os.WriteFile(filepath.Join(tempDir, member), data, 0o644); err != nil {
			return failure.InternalError(err) //nolint:wrapcheck
		}
	}

	restore := func(member, target string) error {
		source := filepath.Join(tempDir, member)
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return nil
		}

		data, err := os.ReadFile(source)
		if err != nil {
			return failure.InternalError(err) //nolint:wrapcheck
		}

		if err := jsonstore.AtomicWrite(target, data); err != nil {
			return failure.InternalError(err) //nolint:wrapcheck
		}

		return nil
	}

	for _, member := range collectionMembers {
		if err := restore(member, filepath.Join(m.cfg.Data.Dir, member)); err != nil {
			return err
		}
	}

	if err := restore(constant.FileUsers, m.cfg.Data.UsersFile); err != nil {
		return err
	}

	return restore(constant.FileHomeContent, service.HomeContentPath(m.cfg))
}

// restoreSingle routes a standalone JSON upload by filename: the
// homepage copy document goes below the static root, everything else
// into the data directory.
func (m *managerImpl) restoreSingle(name string, upload io.Reader) error {
	data, err := io.ReadAll(upload)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return failure.BadRequest(fmt.Errorf("invalid JSON upload: %w", err)) //nolint:wrapcheck
	}

	target := filepath.Join(m.cfg.Data.Dir, name)
	if strings.Contains(name, "home_content") {
		target = service.HomeContentPath(m.cfg)
	}

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if err := jsonstore.AtomicWrite(target, append(pretty, '\n')); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}

// Prune deletes the oldest archives beyond the retention limit.
func (m *managerImpl) Prune(ctx context.Context) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Prune")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := os.ReadDir(m.cfg.Backup.Dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	candidates := []candidate{}
	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			continue
		}

		candidates = append(candidates, candidate{
			path:    filepath.Join(m.cfg.Backup.Dir, entry.Name()),
			modTime: fileInfo.ModTime(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	if len(candidates) <= m.cfg.Backup.Retention {
		return nil
	}

	for _, old := range candidates[m.cfg.Backup.Retention:] {
		if err := os.Remove(old.path); err != nil {
			log.Warn().Err(err).Str("path", old.path).Msg("failed to delete old backup")

			continue
		}

		log.Info().Str("path", old.path).Msg("deleted old backup")
	}

	return nil
}

// FormatFileSize renders a byte count for the admin screens.
func FormatFileSize(size int64) string {
	const unit = 1024

	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMG"[exp])
}
