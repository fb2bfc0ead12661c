package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/uploader"
)

func main() {
	var (
		server string
		kind   string
	)

	flag.StringVar(&server, "server", "http://localhost:8080", "Base URL of the media server")
	flag.StringVar(&kind, "kind", "image", "Media kind of the files: image or video")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: upload [-server URL] [-kind image|video] FILE...")
		os.Exit(2)
	}

	mediaKind := domain.ParseMediaKind(kind)
	if mediaKind == domain.MediaKindUnknown {
		fmt.Fprintf(os.Stderr, "invalid -kind %q: must be image or video\n", kind)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	coordinator := uploader.NewCoordinator(uploader.Config{
		BaseURL:    server + "/api/v1/media",
		Kind:       mediaKind,
		OnProgress: printProgress,
		Logger:     logger,
	})

	if err := coordinator.UploadAll(ctx, files); err != nil {
		logger.Error("upload failed", "error", err)
		os.Exit(1)
	}
}

func printProgress(p uploader.Progress) {
	switch p.State {
	case uploader.StateUploading:
		fmt.Printf("%s: %d/%d chunks\n", p.Filename, p.ChunksUploaded, p.TotalChunks)
	case uploader.StateWaiting:
		fmt.Printf("%s: waiting for connectivity\n", p.Filename)
	case uploader.StateRetrying:
		fmt.Printf("%s: retrying (attempt %d): %v\n", p.Filename, p.Attempt, p.Err)
	case uploader.StateDone:
		fmt.Printf("%s: done\n", p.Filename)
	case uploader.StateFailed:
		fmt.Printf("%s: failed: %v\n", p.Filename, p.Err)
	}
}
