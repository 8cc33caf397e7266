package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"numiviz_backend/internal/config"
	"numiviz_backend/internal/util"
	"numiviz_backend/pkg/logger"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const manimCatalogCacheTTL = 10 * time.Minute

// ManimVideo une vidéo pré-rendue du catalogue Manim
type ManimVideo struct {
	Name     string `json:"name"`     // nom du fichier sans extension
	Category string `json:"category"` // dossier de scène
	Path     string `json:"path"`     // chemin servi au client
	Duration string `json:"duration"` // "m:ss", vide si ffprobe indisponible
}

// MediaService catalogue des animations Manim et upload des médias de
// leçon vers le stockage configuré
type MediaService struct {
	Config  *config.Config
	Storage *StorageService
	Redis   *redis.Client
}

func NewMediaService(cfg *config.Config, storage *StorageService, rdb *redis.Client) *MediaService {
	return &MediaService{Config: cfg, Storage: storage, Redis: rdb}
}

// ManimCatalog parcourt manim_root/<catégorie>/1080p60/*.mp4 et renvoie
// les vidéos trouvées, durées incluses. Le résultat est mis en cache.
func (s *MediaService) ManimCatalog() ([]ManimVideo, error) {
	ctx := context.Background()
	const cacheKey = "numiviz:manim:catalog"

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var videos []ManimVideo
			if err := json.Unmarshal([]byte(cached), &videos); err == nil {
				return videos, nil
			}
		}
	}

	root := s.Config.Media.ManimRoot
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("catalogue manim inaccessible: %w", err)
	}

	var videos []ManimVideo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		dir := filepath.Join(root, category, "1080p60")
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".mp4") {
				continue
			}
			video := ManimVideo{
				Name:     strings.TrimSuffix(f.Name(), filepath.Ext(f.Name())),
				Category: category,
				Path:     "/media/videos/" + category + "/1080p60/" + f.Name(),
			}
			if info, err := util.GetVideoInfo(filepath.Join(dir, f.Name())); err == nil {
				video.Duration = util.FormatDuration(info.Duration)
			} else {
				logger.Log.Debug("durée vidéo manim indisponible",
					zap.String("file", f.Name()), zap.Error(err))
			}
			videos = append(videos, video)
		}
	}

	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Category != videos[j].Category {
			return videos[i].Category < videos[j].Category
		}
		return videos[i].Name < videos[j].Name
	})

	if s.Redis != nil {
		if data, err := json.Marshal(videos); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, manimCatalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("cache catalogue manim inaccessible", zap.Error(err))
			}
		}
	}

	return videos, nil
}

// UploadResult réponse après upload d'un média
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// mime autorisé par catégorie d'upload
func allowedMimeTypes(kind string) []string {
	switch kind {
	case "image":
		return []string{util.MimeImage}
	case "video":
		return []string{util.MimeVideo, "application/x-mpegURL"}
	case "file":
		return []string{util.MimePDF, "application/zip", "text/", util.MimeOctetStream}
	}
	return []string{util.MimeImage, util.MimeVideo, util.MimePDF, "text/"}
}

// allowedVideoExt extension acceptée pour un upload vidéo
func allowedVideoExt(ext string) bool {
	for _, allowed := range util.AllowedVideoExtensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// Upload enregistre un fichier téléversé sous un nom unique, après
// vérification du type MIME réel du contenu
func (s *MediaService) Upload(ctx context.Context, header *multipart.FileHeader, kind string) (*UploadResult, error) {
	if kind == "video" && !allowedVideoExt(filepath.Ext(header.Filename)) {
		return nil, fmt.Errorf("extension vidéo non autorisée: %q", filepath.Ext(header.Filename))
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, allowedMimeTypes(kind))
	if err != nil {
		return nil, fmt.Errorf("type de fichier non autorisé: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)

	url, err := s.Storage.Upload(ctx, filename, src, header.Size, contentType)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:      url,
		Filename: filename,
		Size:     header.Size,
		MimeType: contentType,
	}, nil
}

func (s *MediaService) Delete(ctx context.Context, filename string) error {
	return s.Storage.Delete(ctx, filename)
}
