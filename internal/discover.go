package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverConversationsDir locates the app's conversations directory under
// a backup root (<root>/Library/Application Support/conversations-v3-*).
// When several candidates exist it prefers non-default folders, then the
// one holding the most documents; the GUID suffix varies per install.
func DiscoverConversationsDir(root string) (string, error) {
	appSupport := filepath.Join(root, "Library", "Application Support")
	candidates, err := filepath.Glob(filepath.Join(appSupport, "conversations-v3-*"))
	if err != nil || len(candidates) == 0 {
		return "", fmt.Errorf("no conversations-v3-* directory under %s", appSupport)
	}

	type candidate struct {
		path     string
		files    int
		fallback bool // "default" folders are usually empty placeholders
	}
	var withContent []candidate
	for _, dir := range candidates {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		docs, _ := filepath.Glob(filepath.Join(dir, "*.json"))
		if len(docs) == 0 {
			continue
		}
		withContent = append(withContent, candidate{
			path:     dir,
			files:    len(docs),
			fallback: strings.Contains(strings.ToLower(filepath.Base(dir)), "default"),
		})
	}

	if len(withContent) == 0 {
		// All candidates are empty; let the extractor report that.
		sort.Strings(candidates)
		return candidates[0], nil
	}

	sort.SliceStable(withContent, func(i, j int) bool {
		if withContent[i].fallback != withContent[j].fallback {
			return !withContent[i].fallback
		}
		return withContent[i].files > withContent[j].files
	})
	if len(candidates) > 1 {
		LogInfo("Found %d conversation folders, using: %s", len(candidates), filepath.Base(withContent[0].path))
	}
	return withContent[0].path, nil
}
