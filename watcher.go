package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"anpr/models"
	"anpr/pkg/anpr"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

var inboxExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

func isSupportedImage(name string) bool {
	return inboxExts[strings.ToLower(filepath.Ext(name))]
}

// watchInbox processes images dropped into dir: each new file runs through
// the pipeline and is recorded as a FineLog with the default category.
// Events are debounced because uploads arrive as several partial writes.
func watchInbox(dir string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watcher init: %v", err)
		return
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		log.Printf("watch %s: %v", dir, err)
		return
	}
	log.Printf("Watching %s (debounced) ...", dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 && isSupportedImage(ev.Name) {
				pending[ev.Name] = time.Now()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		case <-ticker.C:
			for path, seen := range pending {
				if time.Since(seen) < 500*time.Millisecond {
					continue
				}
				delete(pending, path)
				processInboxFile(path)
			}
		}
	}
}

func processInboxFile(path string) {
	img, err := imaging.Open(path)
	if err != nil {
		log.Printf("inbox decode %s: %v", path, err)
		return
	}
	reading, err := pipeline.Process(img)
	if err != nil {
		log.Printf("inbox pipeline %s: %v", path, err)
		return
	}
	if reading.Text == "" {
		log.Printf("inbox %s: no plate text, skipped", filepath.Base(path))
		return
	}
	decision := pipeline.ResolveFine(anpr.DefaultViolation)
	fl := models.FineLog{
		Plate:         reading.Text,
		ViolationType: anpr.DefaultViolation,
		FineAmount:    decision.Amount,
		IsFined:       decision.IsFined,
		OCRText:       reading.Text,
		OCRConf:       reading.Confidence,
	}
	if err := db.Create(&fl).Error; err != nil {
		log.Printf("inbox log %s: %v", path, err)
		return
	}
	log.Printf("inbox processed %s plate=%s", filepath.Base(path), reading.Text)
}
