// Package match pairs video files with their contact-sheet images by
// filename convention: the image for clip.mp4 is named clip.mp4.jpg (the full
// video filename plus an image suffix). Extension comparison is
// case-insensitive; the rest of the filename must match exactly.
package match

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair couples a video with its single representative image. Immutable once
// built; identity is VideoPath.
type Pair struct {
	VideoPath string
	ImagePath string
}

// ErrScreensDirNotFound reports that the screens folder is absent from the
// root's subtree.
var ErrScreensDirNotFound = errors.New("screens folder not found")

// FindScreensDir walks root looking for a directory named exactly name and
// returns the first one in walk order.
func FindScreensDir(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walk %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: no %q under %s", ErrScreensDirNotFound, name, root)
	}
	return found, nil
}

// Pairs scans videosDir for video files and imagesDir for their companions.
// imageExts is the priority order: the first suffix with an existing image
// wins. Videos without any companion are logged as warnings and excluded.
// The result is sorted by video path and contains no duplicates.
func Pairs(videosDir, imagesDir string, videoExts, imageExts []string, log *slog.Logger) ([]Pair, error) {
	videos, err := listFiles(videosDir, videoExts)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	index, err := imageIndex(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	pairs := make([]Pair, 0, len(videos))
	for _, video := range videos {
		imageName, ok := lookupImage(index, video, imageExts)
		if !ok {
			log.Warn("video has no contact sheet, skipping", "video", video)
			continue
		}
		pairs = append(pairs, Pair{
			VideoPath: filepath.Join(videosDir, video),
			ImagePath: filepath.Join(imagesDir, imageName),
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].VideoPath < pairs[j].VideoPath })
	return pairs, nil
}

// ImageMatchesVideo reports whether imagePath follows the naming convention
// for videoPath: image basename == video basename + one of imageExts, with
// the suffix compared case-insensitively.
func ImageMatchesVideo(videoPath, imagePath string, imageExts []string) bool {
	videoName := filepath.Base(videoPath)
	imageName := filepath.Base(imagePath)
	for _, ext := range imageExts {
		if len(imageName) != len(videoName)+len(ext) {
			continue
		}
		if imageName[:len(videoName)] != videoName {
			continue
		}
		if strings.EqualFold(imageName[len(videoName):], ext) {
			return true
		}
	}
	return false
}

// listFiles returns the names of regular files in dir whose extension is in
// exts (case-insensitive), sorted.
func listFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasExtension(entry.Name(), exts) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// imageIndex maps each image filename with its trailing extension lowercased
// back to the on-disk name, so lookups are case-insensitive on the suffix
// only.
func imageIndex(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	index := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		key := foldExtension(name)
		if _, exists := index[key]; !exists {
			index[key] = name
		}
	}
	return index, nil
}

func lookupImage(index map[string]string, videoName string, imageExts []string) (string, bool) {
	for _, ext := range imageExts {
		if name, ok := index[videoName+strings.ToLower(ext)]; ok {
			return name, true
		}
	}
	return "", false
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func foldExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return name
	}
	return name[:len(name)-len(ext)] + strings.ToLower(ext)
}
